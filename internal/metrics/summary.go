package metrics

import (
	"github.com/shopspring/decimal"

	"dexboard/backend/internal/model"
)

// BotSummary aggregates the stored counters of a user's bots
type BotSummary struct {
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	TotalProfit float64 `json:"totalProfit"`
	TotalTrades int     `json:"totalTrades"`
}

// AlertSummary counts enabled alerts and how many of them have fired
type AlertSummary struct {
	Active    int `json:"active"`
	Triggered int `json:"triggered"`
}

// SummarizeBots counts running bots and sums stored profit and trade counters
func SummarizeBots(bots []model.Bot) BotSummary {
	profit := decimal.Zero
	summary := BotSummary{Total: len(bots)}

	for _, b := range bots {
		if b.Status == model.BotStatusRunning {
			summary.Active++
		}
		profit = profit.Add(decimal.NewFromFloat(b.Profit))
		summary.TotalTrades += b.TradesCount
	}

	summary.TotalProfit = profit.InexactFloat64()
	return summary
}

// SummarizeAlerts expects the enabled alerts only
func SummarizeAlerts(enabled []model.Alert) AlertSummary {
	summary := AlertSummary{Active: len(enabled)}
	for _, a := range enabled {
		if a.IsTriggered() {
			summary.Triggered++
		}
	}
	return summary
}
