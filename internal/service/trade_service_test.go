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

func TestTradeService_RecordTrade(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTradeService(env.trades, env.log)
	ctx := context.Background()
	user := env.createUser(t, "trades@example.com")
	bot := env.createBot(t, user.ID, "Grid")

	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	trade, err := svc.RecordTrade(ctx, user.ID, &model.CreateTradeRequest{
		BotID:  &bot.ID,
		Type:   model.TradeTypeSell,
		Pair:   "eth/usdc",
		Price:  2500,
		Amount: 0.4,
		Profit: ptr(12.5),
	})
	require.NoError(t, err)
	assert.Equal(t, "ETH/USDC", trade.Pair)
	assert.InDelta(t, 1000, trade.Total, 1e-9)
	assert.True(t, now.Equal(trade.Timestamp))

	stored, err := env.bots.GetByID(ctx, user.ID, bot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TradesCount)
	assert.InDelta(t, 12.5, stored.Profit, 1e-9)

	// An explicit total wins over price * amount
	manual, err := svc.RecordTrade(ctx, user.ID, &model.CreateTradeRequest{
		Type:   model.TradeTypeBuy,
		Pair:   "BTC/USDT",
		Price:  60000,
		Amount: 0.01,
		Total:  ptr(601.0),
	})
	require.NoError(t, err)
	assert.Nil(t, manual.BotID)
	assert.InDelta(t, 601, manual.Total, 1e-9)
}

func TestTradeService_RejectsForeignBot(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTradeService(env.trades, env.log)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	bot := env.createBot(t, owner.ID, "Grid")

	_, err := svc.RecordTrade(ctx, other.ID, &model.CreateTradeRequest{
		BotID:  &bot.ID,
		Type:   model.TradeTypeBuy,
		Pair:   "ETH/USDC",
		Price:  1,
		Amount: 1,
	})
	assertAppError(t, err, http.StatusNotFound, util.ErrCodeBotNotFound)

	stored, err := env.bots.GetByID(ctx, owner.ID, bot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.TradesCount)
}
