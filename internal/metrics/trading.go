package metrics

import (
	"github.com/shopspring/decimal"

	"dexboard/backend/internal/model"
)

// TradingStats summarizes realized results over a window of trades.
//
// ProfitFactor is totalProfit/totalLoss. With no losses it is reported as null with
// ProfitFactorUnbounded set when there were gains, and as 0 when there were none.
type TradingStats struct {
	TotalTrades           int      `json:"totalTrades"`
	WinningTrades         int      `json:"winningTrades"`
	LosingTrades          int      `json:"losingTrades"`
	WinRate               float64  `json:"winRate"`
	TotalProfit           float64  `json:"totalProfit"`
	TotalLoss             float64  `json:"totalLoss"`
	NetProfit             float64  `json:"netProfit"`
	AvgWin                float64  `json:"avgWin"`
	AvgLoss               float64  `json:"avgLoss"`
	LargestWin            float64  `json:"largestWin"`
	LargestLoss           float64  `json:"largestLoss"`
	ProfitFactor          *float64 `json:"profitFactor"`
	ProfitFactorUnbounded bool     `json:"profitFactorUnbounded"`
}

// BotTradeStats is the per bot summary shown on the bot detail page
type BotTradeStats struct {
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	WinRate       float64 `json:"winRate"`
	TotalProfit   float64 `json:"totalProfit"`
	AvgProfit     float64 `json:"avgProfit"`
}

// ComputeTradingStats classifies trades by realized profit. A zero or missing profit is neither a win nor a loss.
func ComputeTradingStats(trades []model.Trade) TradingStats {
	stats := TradingStats{TotalTrades: len(trades)}

	gains := decimal.Zero
	losses := decimal.Zero
	largestWin := decimal.Zero
	largestLoss := decimal.Zero

	for i := range trades {
		if trades[i].Profit == nil {
			continue
		}
		p := decimal.NewFromFloat(*trades[i].Profit)
		switch p.Sign() {
		case 1:
			stats.WinningTrades++
			gains = gains.Add(p)
			if p.GreaterThan(largestWin) {
				largestWin = p
			}
		case -1:
			stats.LosingTrades++
			loss := p.Abs()
			losses = losses.Add(loss)
			if loss.GreaterThan(largestLoss) {
				largestLoss = loss
			}
		}
	}

	stats.WinRate = ratePercent(stats.WinningTrades, stats.TotalTrades)
	stats.TotalProfit = gains.InexactFloat64()
	stats.TotalLoss = losses.InexactFloat64()
	stats.NetProfit = gains.Sub(losses).InexactFloat64()
	stats.AvgWin = average(gains, stats.WinningTrades)
	stats.AvgLoss = average(losses, stats.LosingTrades)
	stats.LargestWin = largestWin.InexactFloat64()
	stats.LargestLoss = largestLoss.InexactFloat64()

	switch {
	case losses.IsPositive():
		pf := gains.Div(losses).InexactFloat64()
		stats.ProfitFactor = &pf
	case gains.IsPositive():
		stats.ProfitFactorUnbounded = true
	default:
		zero := 0.0
		stats.ProfitFactor = &zero
	}

	return stats
}

// BotStats sums signed profit over all trades of one bot; missing profit counts as zero
func BotStats(trades []model.Trade) BotTradeStats {
	stats := BotTradeStats{TotalTrades: len(trades)}

	total := decimal.Zero
	for i := range trades {
		p := trades[i].ProfitOrZero()
		if p > 0 {
			stats.WinningTrades++
		}
		total = total.Add(decimal.NewFromFloat(p))
	}

	stats.WinRate = ratePercent(stats.WinningTrades, stats.TotalTrades)
	stats.TotalProfit = total.InexactFloat64()
	stats.AvgProfit = average(total, stats.TotalTrades)
	return stats
}

func ratePercent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(whole))).
		Mul(hundred).
		InexactFloat64()
}

func average(sum decimal.Decimal, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum.Div(decimal.NewFromInt(int64(n))).InexactFloat64()
}
