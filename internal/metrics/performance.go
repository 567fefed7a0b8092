package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"dexboard/backend/internal/model"
)

// DayLayout is the UTC calendar day key used by every daily series
const DayLayout = "2006-01-02"

// DailyPerformance is the activity of one calendar day
type DailyPerformance struct {
	Date   string  `json:"date"`
	Trades int     `json:"trades"`
	Profit float64 `json:"profit"`
	Volume float64 `json:"volume"`
}

// CumulativePoint is one step of the running profit curve
type CumulativePoint struct {
	Date       string  `json:"date"`
	Profit     float64 `json:"profit"`
	Cumulative float64 `json:"cumulative"`
}

// BotComparison ranks bots by their stored profit
type BotComparison struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
	Trades        int     `json:"trades"`
	WinRate       float64 `json:"winRate"`
}

// BotPerformance is the windowed result of one bot
type BotPerformance struct {
	BotID         string  `json:"botId"`
	BotName       string  `json:"botName"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
	Trades        int     `json:"trades"`
	Wins          int     `json:"wins"`
	WinRate       float64 `json:"winRate"`
}

// PairPerformance is the windowed result of one trading pair
type PairPerformance struct {
	Pair    string  `json:"pair"`
	Profit  float64 `json:"profit"`
	Trades  int     `json:"trades"`
	Wins    int     `json:"wins"`
	Volume  float64 `json:"volume"`
	WinRate float64 `json:"winRate"`
}

type bucket struct {
	trades int
	wins   int
	profit decimal.Decimal
	volume decimal.Decimal
}

func (b *bucket) add(t *model.Trade) {
	p := t.ProfitOrZero()
	b.trades++
	if p > 0 {
		b.wins++
	}
	b.profit = b.profit.Add(decimal.NewFromFloat(p))
	b.volume = b.volume.Add(decimal.NewFromFloat(t.Total))
}

// BucketByDay groups trades by UTC calendar day. Only days with trades appear, in ascending order.
func BucketByDay(trades []model.Trade) []DailyPerformance {
	days := make(map[string]*bucket)
	for i := range trades {
		day := trades[i].Timestamp.UTC().Format(DayLayout)
		b, ok := days[day]
		if !ok {
			b = &bucket{}
			days[day] = b
		}
		b.add(&trades[i])
	}

	out := make([]DailyPerformance, 0, len(days))
	for day, b := range days {
		out = append(out, DailyPerformance{
			Date:   day,
			Trades: b.trades,
			Profit: b.profit.InexactFloat64(),
			Volume: b.volume.InexactFloat64(),
		})
	}

	// DayLayout sorts lexically in date order
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// CumulativeProfit folds daily profit into a running total. days must be in ascending order.
func CumulativeProfit(days []DailyPerformance) []CumulativePoint {
	out := make([]CumulativePoint, 0, len(days))
	running := decimal.Zero
	for _, d := range days {
		running = running.Add(decimal.NewFromFloat(d.Profit))
		out = append(out, CumulativePoint{
			Date:       d.Date,
			Profit:     d.Profit,
			Cumulative: running.InexactFloat64(),
		})
	}
	return out
}

// CompareBots ranks bots by stored profit. tradesByBot holds each bot's trades with a realized profit;
// the win rate is computed over those.
func CompareBots(bots []model.Bot, tradesByBot map[string][]model.Trade) []BotComparison {
	out := make([]BotComparison, 0, len(bots))
	for _, b := range bots {
		realized := 0
		wins := 0
		for _, t := range tradesByBot[b.ID] {
			if t.Profit == nil {
				continue
			}
			realized++
			if *t.Profit > 0 {
				wins++
			}
		}
		out = append(out, BotComparison{
			ID:            b.ID,
			Name:          b.Name,
			Type:          b.Type,
			Status:        b.Status,
			Profit:        b.Profit,
			ProfitPercent: b.ProfitPercent,
			Trades:        b.TradesCount,
			WinRate:       ratePercent(wins, realized),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profit > out[j].Profit
	})
	return out
}

// PerformanceByBot attributes windowed trades to their bots. Every bot appears, also without trades;
// trades of unknown or no bot are ignored.
func PerformanceByBot(bots []model.Bot, trades []model.Trade) []BotPerformance {
	byBot := make(map[string]*bucket, len(bots))
	for _, b := range bots {
		byBot[b.ID] = &bucket{}
	}
	for i := range trades {
		if trades[i].BotID == nil {
			continue
		}
		if b, ok := byBot[*trades[i].BotID]; ok {
			b.add(&trades[i])
		}
	}

	out := make([]BotPerformance, 0, len(bots))
	for _, bot := range bots {
		b := byBot[bot.ID]
		out = append(out, BotPerformance{
			BotID:         bot.ID,
			BotName:       bot.Name,
			Profit:        b.profit.InexactFloat64(),
			ProfitPercent: bot.ProfitPercent,
			Trades:        b.trades,
			Wins:          b.wins,
			WinRate:       ratePercent(b.wins, b.trades),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profit > out[j].Profit
	})
	return out
}

// PerformanceByPair groups windowed trades by pair, sorted by profit descending
func PerformanceByPair(trades []model.Trade) []PairPerformance {
	order := make([]string, 0)
	byPair := make(map[string]*bucket)
	for i := range trades {
		pair := trades[i].Pair
		b, ok := byPair[pair]
		if !ok {
			b = &bucket{}
			byPair[pair] = b
			order = append(order, pair)
		}
		b.add(&trades[i])
	}

	out := make([]PairPerformance, 0, len(order))
	for _, pair := range order {
		b := byPair[pair]
		out = append(out, PairPerformance{
			Pair:    pair,
			Profit:  b.profit.InexactFloat64(),
			Trades:  b.trades,
			Wins:    b.wins,
			Volume:  b.volume.InexactFloat64(),
			WinRate: ratePercent(b.wins, b.trades),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profit > out[j].Profit
	})
	return out
}

// HistoryPoint is one charted portfolio snapshot
type HistoryPoint struct {
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
	Profit float64 `json:"profit"`
}

// SnapshotSeries projects snapshots, already sorted by time, onto chart points keyed by UTC day
func SnapshotSeries(snapshots []model.PortfolioSnapshot) []HistoryPoint {
	out := make([]HistoryPoint, 0, len(snapshots))
	for _, s := range snapshots {
		out = append(out, HistoryPoint{
			Date:   s.Timestamp.UTC().Format(DayLayout),
			Value:  s.TotalValue,
			Profit: s.Profit,
		})
	}
	return out
}
