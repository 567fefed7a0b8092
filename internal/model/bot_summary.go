package model

// BotListItem is a bot with its persisted trade count
type BotListItem struct {
	Bot
	Count BotCount `json:"_count"`
}

// BotCount mirrors the relation counters of a bot
type BotCount struct {
	Trades int64 `json:"trades"`
}

// BotRef is the compact bot projection embedded in alerts
type BotRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
