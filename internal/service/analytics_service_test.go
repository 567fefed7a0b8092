package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"dexboard/backend/internal/model"
	"dexboard/backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_GetAnalytics(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.bots, env.trades)
	ctx := context.Background()
	user := env.createUser(t, "analytics@example.com")

	now := time.Date(2024, 4, 10, 18, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	grid := env.createBot(t, user.ID, "Grid")
	idle := env.createBot(t, user.ID, "Idle")

	env.recordTrade(t, user.ID, &grid.ID, "ETH/USDC", ptr(30.0), now.AddDate(0, 0, -3))
	env.recordTrade(t, user.ID, &grid.ID, "ETH/USDC", ptr(-10.0), now.AddDate(0, 0, -2))
	env.recordTrade(t, user.ID, nil, "BTC/USDT", ptr(5.0), now.AddDate(0, 0, -2))
	env.recordTrade(t, user.ID, nil, "BTC/USDT", nil, now.AddDate(0, 0, -1))
	env.recordTrade(t, user.ID, &grid.ID, "ETH/USDC", ptr(500.0), now.AddDate(0, 0, -60))

	analytics, err := svc.GetAnalytics(ctx, user.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "30d", analytics.Period)

	stats := analytics.Stats
	assert.Equal(t, 4, stats.TotalTrades)
	assert.Equal(t, 2, stats.WinningTrades)
	assert.Equal(t, 1, stats.LosingTrades)
	assert.InDelta(t, 50.0, stats.WinRate, 1e-9)
	assert.InDelta(t, 35.0, stats.TotalProfit, 1e-9)
	assert.InDelta(t, 10.0, stats.TotalLoss, 1e-9)
	assert.InDelta(t, 25.0, stats.NetProfit, 1e-9)
	require.NotNil(t, stats.ProfitFactor)
	assert.InDelta(t, 3.5, *stats.ProfitFactor, 1e-9)

	require.Len(t, analytics.DailyPerformance, 3)
	require.Len(t, analytics.CumulativeProfit, 3)
	assert.InDelta(t, 25.0, analytics.CumulativeProfit[2].Cumulative, 1e-9)

	require.Len(t, analytics.BotPerformance, 2)
	assert.Equal(t, grid.ID, analytics.BotPerformance[0].BotID)
	assert.InDelta(t, 20.0, analytics.BotPerformance[0].Profit, 1e-9)
	assert.Equal(t, idle.ID, analytics.BotPerformance[1].BotID)
	assert.Equal(t, 0, analytics.BotPerformance[1].Trades)

	require.Len(t, analytics.PairPerformance, 2)
	assert.Equal(t, "ETH/USDC", analytics.PairPerformance[0].Pair)
	assert.Equal(t, "BTC/USDT", analytics.PairPerformance[1].Pair)

	all, err := svc.GetStats(ctx, user.ID, util.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 5, all.TotalTrades)

	_, err = svc.GetAnalytics(ctx, user.ID, "1y")
	assertAppError(t, err, http.StatusBadRequest, util.ErrCodeValidation)
}

func TestAnalyticsService_ProfitFactorWithoutLosses(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.bots, env.trades)
	ctx := context.Background()
	user := env.createUser(t, "winner@example.com")

	empty, err := svc.GetStats(ctx, user.ID, "7d")
	require.NoError(t, err)
	require.NotNil(t, empty.ProfitFactor)
	assert.Zero(t, *empty.ProfitFactor)
	assert.False(t, empty.ProfitFactorUnbounded)

	env.recordTrade(t, user.ID, nil, "ETH/USDC", ptr(12.0), time.Now().UTC())

	stats, err := svc.GetStats(ctx, user.ID, "7d")
	require.NoError(t, err)
	assert.Nil(t, stats.ProfitFactor)
	assert.True(t, stats.ProfitFactorUnbounded)
}

func TestAnalyticsService_ListTradesPaginates(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalyticsService(env.bots, env.trades)
	ctx := context.Background()
	user := env.createUser(t, "pages@example.com")
	bot := env.createBot(t, user.ID, "Grid")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		env.recordTrade(t, user.ID, &bot.ID, "ETH/USDC", ptr(float64(i)), base.Add(time.Duration(i)*time.Minute))
	}
	env.recordTrade(t, user.ID, nil, "BTC/USDT", nil, base.Add(10*time.Minute))

	page, err := svc.ListTrades(ctx, user.ID, "7d", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 4, page.Limit)
	require.Len(t, page.Trades, 4)
	assert.Equal(t, model.ManualTradeLabel, page.Trades[0].BotName)
	assert.Equal(t, "Grid", page.Trades[1].BotName)

	page, err = svc.ListTrades(ctx, user.ID, "7d", 2, 4)
	require.NoError(t, err)
	assert.Len(t, page.Trades, 2)

	// Out of range values are clamped
	page, err = svc.ListTrades(ctx, user.ID, "7d", 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, util.MaxPageLimit, page.Limit)
}
