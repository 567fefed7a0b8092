package util

// Listing and aggregation limits

const (
	// RecentTradesLimit is the number of trades shown on the dashboard
	RecentTradesLimit = 10

	// BotDetailTradesLimit is the number of latest trades embedded in a bot detail
	BotDetailTradesLimit = 20

	// AlertHistoryLimit caps the triggered alert history
	AlertHistoryLimit = 50

	// DefaultPageLimit and MaxPageLimit bound paginated listings
	DefaultPageLimit = 50
	MaxPageLimit     = 100

	// DustBalanceThreshold is the amount below which an asset balance is treated as zero
	DustBalanceThreshold = 0.00000001
)
