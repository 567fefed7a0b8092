package metrics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dexboard/backend/internal/model"
)

const delta = 1e-9

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func asset(symbol string, balance, price, change float64) model.Asset {
	return model.Asset{
		Symbol:    symbol,
		Name:      symbol + " token",
		Balance:   balance,
		Price:     price,
		Value:     balance * price,
		Change24h: change,
	}
}

func trade(at time.Time, pair string, total float64, profit *float64) model.Trade {
	return model.Trade{Pair: pair, Total: total, Profit: profit, Timestamp: at, Type: model.TradeTypeSell}
}

func TestValuate(t *testing.T) {
	wallets := []model.Wallet{
		{Name: "hot", Assets: []model.Asset{asset("ETH", 1, 3000, 10)}},
		{Name: "cold", Assets: []model.Asset{asset("BTC", 0.1, 60000, -5)}},
	}

	v := Valuate(wallets)

	assert.InDelta(t, 9000, v.TotalValue, delta)
	// 3000*10% - 6000*5% = 300 - 300
	assert.InDelta(t, 0, v.Change24h, delta)
	assert.InDelta(t, 0, v.Change24hPercent, delta)
}

func TestValuate_PercentAgainstPriorValue(t *testing.T) {
	v := Valuate([]model.Wallet{{Assets: []model.Asset{asset("ETH", 1, 1100, 10)}}})

	assert.InDelta(t, 1100, v.TotalValue, delta)
	assert.InDelta(t, 110, v.Change24h, delta)
	assert.InDelta(t, 110.0/990.0*100, v.Change24hPercent, 1e-9)
}

func TestValuate_Empty(t *testing.T) {
	assert.Equal(t, PortfolioValuation{}, Valuate(nil))
}

func TestValuate_ValueEqualsChange(t *testing.T) {
	// change24h of 100% makes the prior value zero
	v := Valuate([]model.Wallet{{Assets: []model.Asset{asset("X", 1, 50, 100)}}})

	assert.InDelta(t, 50, v.Change24h, delta)
	assert.Zero(t, v.Change24hPercent)
}

func TestMergeAssets(t *testing.T) {
	wallets := []model.Wallet{
		{Name: "A", Assets: []model.Asset{asset("ETH", 1, 3000, 2), asset("USDC", 100, 1, 0)}},
		{Name: "B", Assets: []model.Asset{asset("ETH", 0.5, 3100, 9)}},
	}

	merged := MergeAssets(wallets)

	require.Len(t, merged, 2)
	eth := merged[0]
	assert.Equal(t, "ETH", eth.Symbol)
	assert.InDelta(t, 1.5, eth.Balance, delta)
	assert.InDelta(t, 3000+1550, eth.Value, delta)
	// first seen wins for quote fields
	assert.Equal(t, 3000.0, eth.Price)
	assert.Equal(t, 2.0, eth.Change24h)
	assert.Equal(t, []string{"A", "B"}, eth.Wallets)
	assert.Equal(t, "USDC", merged[1].Symbol)
}

func TestMergeAssets_SortedDescendingStable(t *testing.T) {
	wallets := []model.Wallet{{Assets: []model.Asset{
		asset("A", 1, 10, 0),
		asset("B", 1, 30, 0),
		asset("C", 1, 10, 0),
		asset("D", 1, 20, 0),
	}}}

	merged := MergeAssets(wallets)

	symbols := make([]string, 0, len(merged))
	for _, m := range merged {
		symbols = append(symbols, m.Symbol)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, symbols)
	for i := 1; i < len(merged); i++ {
		assert.GreaterOrEqual(t, merged[i-1].Value, merged[i].Value)
	}
}

func TestMergeAssets_ConservesTotals(t *testing.T) {
	wallets := []model.Wallet{
		{Name: "A", Assets: []model.Asset{asset("ETH", 0.1, 3000, 0), asset("SOL", 3, 150, 0)}},
		{Name: "B", Assets: []model.Asset{asset("ETH", 0.2, 3000, 0), asset("SOL", 7, 150, 0)}},
		{Name: "C", Assets: []model.Asset{asset("ETH", 0.3, 3000, 0)}},
	}

	var sum float64
	for _, m := range MergeAssets(wallets) {
		sum += m.Value
	}

	assert.InDelta(t, Valuate(wallets).TotalValue, sum, 1e-6)
	assert.Equal(t, 5, CountAssets(wallets))
	assert.InDelta(t, 750, WalletValue(wallets[0]), 1e-6)
}

func TestSummarizeBots(t *testing.T) {
	bots := []model.Bot{
		{Status: model.BotStatusRunning, Profit: 10.5, TradesCount: 3},
		{Status: model.BotStatusStopped, Profit: -2.5, TradesCount: 1},
		{Status: model.BotStatusError, Profit: 0, TradesCount: 0},
		{Status: model.BotStatusRunning, Profit: 1, TradesCount: 6},
	}

	summary := SummarizeBots(bots)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Active)
	assert.InDelta(t, 9, summary.TotalProfit, delta)
	assert.Equal(t, 10, summary.TotalTrades)
	assert.Equal(t, BotSummary{}, SummarizeBots(nil))
}

func TestSummarizeAlerts(t *testing.T) {
	now := time.Now()
	summary := SummarizeAlerts([]model.Alert{{TriggeredAt: &now}, {}, {TriggeredAt: &now}})

	assert.Equal(t, AlertSummary{Active: 3, Triggered: 2}, summary)
	assert.Equal(t, AlertSummary{Active: 1}, SummarizeAlerts([]model.Alert{{TriggeredCount: 3}}))
}

func TestComputeTradingStats(t *testing.T) {
	now := time.Now()
	trades := []model.Trade{
		trade(now, "ETH/USDT", 100, f(10)),
		trade(now, "ETH/USDT", 100, f(30)),
		trade(now, "BTC/USDT", 100, f(-5)),
		trade(now, "BTC/USDT", 100, f(-15)),
		trade(now, "BTC/USDT", 100, f(0)),
		trade(now, "SOL/USDT", 100, nil),
	}

	stats := ComputeTradingStats(trades)

	assert.Equal(t, 6, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 2, stats.LosingTrades)
	assert.InDelta(t, 100.0/3, stats.WinRate, 1e-9)
	assert.InDelta(t, 40, stats.TotalProfit, delta)
	assert.InDelta(t, 20, stats.TotalLoss, delta)
	assert.InDelta(t, 20, stats.NetProfit, delta)
	assert.InDelta(t, 20, stats.AvgWin, delta)
	assert.InDelta(t, 10, stats.AvgLoss, delta)
	assert.InDelta(t, 30, stats.LargestWin, delta)
	assert.InDelta(t, 15, stats.LargestLoss, delta)
	require.NotNil(t, stats.ProfitFactor)
	assert.InDelta(t, 2, *stats.ProfitFactor, delta)
	assert.False(t, stats.ProfitFactorUnbounded)

	assert.Equal(t, stats.WinningTrades+stats.LosingTrades+2, stats.TotalTrades)
	assert.InDelta(t, stats.TotalProfit-stats.TotalLoss, stats.NetProfit, delta)
}

func TestComputeTradingStats_ProfitFactorSentinels(t *testing.T) {
	now := time.Now()

	t.Run("no losses", func(t *testing.T) {
		stats := ComputeTradingStats([]model.Trade{trade(now, "X", 1, f(5))})
		assert.Nil(t, stats.ProfitFactor)
		assert.True(t, stats.ProfitFactorUnbounded)
		assert.Zero(t, stats.AvgLoss)
		assert.Zero(t, stats.LargestLoss)
	})

	t.Run("nothing realized", func(t *testing.T) {
		stats := ComputeTradingStats([]model.Trade{trade(now, "X", 1, nil), trade(now, "X", 1, f(0))})
		require.NotNil(t, stats.ProfitFactor)
		assert.Zero(t, *stats.ProfitFactor)
		assert.False(t, stats.ProfitFactorUnbounded)
		assert.Zero(t, stats.WinRate)
	})

	t.Run("empty", func(t *testing.T) {
		stats := ComputeTradingStats(nil)
		assert.Zero(t, stats.TotalTrades)
		assert.Zero(t, stats.WinRate)
		assert.Zero(t, stats.AvgWin)
		require.NotNil(t, stats.ProfitFactor)
		assert.Zero(t, *stats.ProfitFactor)
	})
}

func TestComputeTradingStats_OrderIndependent(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(7))

	trades := make([]model.Trade, 0, 50)
	for i := 0; i < 50; i++ {
		var profit *float64
		if i%7 != 0 {
			profit = f(float64(rng.Intn(41) - 20))
		}
		trades = append(trades, trade(start.Add(time.Duration(i)*time.Hour), "ETH/USDT", 100, profit))
	}

	want := ComputeTradingStats(trades)

	shuffled := append([]model.Trade(nil), trades...)
	for round := 0; round < 5; round++ {
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		got := ComputeTradingStats(shuffled)

		assert.InDelta(t, want.WinRate, got.WinRate, delta)
		assert.InDelta(t, want.NetProfit, got.NetProfit, delta)
		assert.Equal(t, want.ProfitFactorUnbounded, got.ProfitFactorUnbounded)
		if want.ProfitFactor == nil {
			assert.Nil(t, got.ProfitFactor)
		} else {
			require.NotNil(t, got.ProfitFactor)
			assert.InDelta(t, *want.ProfitFactor, *got.ProfitFactor, delta)
		}
	}
}

func TestBucketByDay(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	day3 := time.Date(2024, 1, 3, 0, 15, 0, 0, time.UTC)
	// 2024-01-02 in UTC even though the local offset puts it on the 1st
	tz := time.FixedZone("UTC-5", -5*3600)
	day2Local := time.Date(2024, 1, 1, 20, 0, 0, 0, tz)

	trades := []model.Trade{
		trade(day3, "X", 50, f(-1)),
		trade(day1, "X", 100, f(10)),
		trade(day2Local, "X", 25, nil),
		trade(day1.Add(10*time.Minute), "X", 200, f(5)),
	}

	days := BucketByDay(trades)

	require.Len(t, days, 3)
	assert.Equal(t, DailyPerformance{Date: "2024-01-01", Trades: 2, Profit: 15, Volume: 300}, days[0])
	assert.Equal(t, DailyPerformance{Date: "2024-01-02", Trades: 1, Profit: 0, Volume: 25}, days[1])
	assert.Equal(t, DailyPerformance{Date: "2024-01-03", Trades: 1, Profit: -1, Volume: 50}, days[2])

	var total int
	for _, d := range days {
		total += d.Trades
	}
	assert.Equal(t, len(trades), total)
	assert.Empty(t, BucketByDay(nil))
}

func TestCumulativeProfit(t *testing.T) {
	days := []DailyPerformance{
		{Date: "2024-01-01", Profit: 10},
		{Date: "2024-01-02", Profit: -4},
		{Date: "2024-01-05", Profit: 2.5},
	}

	points := CumulativeProfit(days)

	require.Len(t, points, 3)
	assert.InDelta(t, 10, points[0].Cumulative, delta)
	assert.InDelta(t, 6, points[1].Cumulative, delta)
	assert.InDelta(t, 8.5, points[2].Cumulative, delta)
	for i := 1; i < len(points); i++ {
		assert.InDelta(t, points[i-1].Cumulative+days[i].Profit, points[i].Cumulative, delta)
	}

	// restartable: folding again gives the same series
	assert.Equal(t, points, CumulativeProfit(days))
	assert.Empty(t, CumulativeProfit(nil))
}

func TestCumulativeProfit_EndsAtNetProfit(t *testing.T) {
	day := time.Date(2024, 2, 10, 9, 0, 0, 0, time.UTC)
	trades := []model.Trade{
		trade(day, "ETH/USDT", 100, f(12.5)),
		trade(day.Add(2*time.Hour), "ETH/USDT", 100, nil),
		trade(day.AddDate(0, 0, 1), "BTC/USDT", 100, f(-7.25)),
		trade(day.AddDate(0, 0, 1), "BTC/USDT", 100, f(0)),
		trade(day.AddDate(0, 0, 3), "SOL/USDT", 100, f(4)),
		trade(day.AddDate(0, 0, 4), "SOL/USDT", 100, f(-20)),
		trade(day.AddDate(0, 0, 4), "ETH/USDT", 100, nil),
	}

	points := CumulativeProfit(BucketByDay(trades))
	stats := ComputeTradingStats(trades)

	require.Len(t, points, 4)
	assert.InDelta(t, -10.75, stats.NetProfit, delta)
	assert.InDelta(t, stats.NetProfit, points[len(points)-1].Cumulative, delta)
}

func TestBotStats(t *testing.T) {
	now := time.Now()
	stats := BotStats([]model.Trade{
		trade(now, "X", 1, f(10)),
		trade(now, "X", 1, f(-4)),
		trade(now, "X", 1, nil),
		trade(now, "X", 1, f(6)),
	})

	assert.Equal(t, 4, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.InDelta(t, 50, stats.WinRate, delta)
	assert.InDelta(t, 12, stats.TotalProfit, delta)
	assert.InDelta(t, 3, stats.AvgProfit, delta)

	assert.Equal(t, BotTradeStats{}, BotStats(nil))
}

func TestCompareBots(t *testing.T) {
	bots := []model.Bot{
		{ID: "a", Name: "Grid", Profit: 5, TradesCount: 3},
		{ID: "b", Name: "DCA", Profit: 50, TradesCount: 2},
		{ID: "c", Name: "Idle", Profit: 5},
	}
	now := time.Now()
	byBot := map[string][]model.Trade{
		"a": {trade(now, "X", 1, f(1)), trade(now, "X", 1, f(-1)), trade(now, "X", 1, nil)},
		"b": {trade(now, "X", 1, f(3)), trade(now, "X", 1, f(2))},
	}

	cmp := CompareBots(bots, byBot)

	require.Len(t, cmp, 3)
	assert.Equal(t, "b", cmp[0].ID)
	assert.InDelta(t, 100, cmp[0].WinRate, delta)
	assert.Equal(t, "a", cmp[1].ID)
	assert.InDelta(t, 50, cmp[1].WinRate, delta)
	assert.Equal(t, 3, cmp[1].Trades)
	assert.Equal(t, "c", cmp[2].ID)
	assert.Zero(t, cmp[2].WinRate)
}

func TestPerformanceByBot(t *testing.T) {
	bots := []model.Bot{
		{ID: "a", Name: "Grid", ProfitPercent: 1.5},
		{ID: "b", Name: "DCA", ProfitPercent: 3},
	}
	now := time.Now()
	trades := []model.Trade{
		{BotID: s("a"), Profit: f(-2), Timestamp: now},
		{BotID: s("b"), Profit: f(7), Timestamp: now},
		{BotID: s("b"), Profit: f(-1), Timestamp: now},
		{BotID: s("gone"), Profit: f(100), Timestamp: now},
		{Profit: f(100), Timestamp: now},
	}

	perf := PerformanceByBot(bots, trades)

	require.Len(t, perf, 2)
	assert.Equal(t, BotPerformance{BotID: "b", BotName: "DCA", Profit: 6, ProfitPercent: 3, Trades: 2, Wins: 1, WinRate: 50}, perf[0])
	assert.Equal(t, BotPerformance{BotID: "a", BotName: "Grid", Profit: -2, ProfitPercent: 1.5, Trades: 1, Wins: 0, WinRate: 0}, perf[1])
}

func TestPerformanceByPair(t *testing.T) {
	now := time.Now()
	trades := []model.Trade{
		trade(now, "ETH/USDT", 100, f(1)),
		trade(now, "BTC/USDT", 1000, f(20)),
		trade(now, "ETH/USDT", 300, f(-3)),
		trade(now, "SOL/USDT", 10, nil),
	}

	perf := PerformanceByPair(trades)

	require.Len(t, perf, 3)
	assert.Equal(t, "BTC/USDT", perf[0].Pair)
	assert.Equal(t, "SOL/USDT", perf[1].Pair)
	eth := perf[2]
	assert.Equal(t, "ETH/USDT", eth.Pair)
	assert.Equal(t, 2, eth.Trades)
	assert.Equal(t, 1, eth.Wins)
	assert.InDelta(t, -2, eth.Profit, delta)
	assert.InDelta(t, 400, eth.Volume, delta)
	assert.InDelta(t, 50, eth.WinRate, delta)
}

func TestSnapshotSeries(t *testing.T) {
	at := time.Date(2024, 2, 10, 15, 0, 0, 0, time.UTC)
	points := SnapshotSeries([]model.PortfolioSnapshot{{Timestamp: at, TotalValue: 10, Profit: 1}})

	assert.Equal(t, []HistoryPoint{{Date: "2024-02-10", Value: 10, Profit: 1}}, points)
}
