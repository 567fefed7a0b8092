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

func TestAlertService_CreateToggleDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAlertService(env.alerts, env.bots, env.log)
	ctx := context.Background()
	user := env.createUser(t, "alerts@example.com")
	bot := env.createBot(t, user.ID, "Grid")

	alert, err := svc.CreateAlert(ctx, user.ID, &model.CreateAlertRequest{
		Name:      "Bot down",
		Type:      model.AlertTypeBotStatus,
		Condition: model.AlertConditionEquals,
		Threshold: ptr(0.0),
		Asset:     ptr("eth"),
		BotID:     &bot.ID,
		Channels:  []string{"email", "line"},
	})
	require.NoError(t, err)
	assert.True(t, alert.Enabled)
	require.NotNil(t, alert.Asset)
	assert.Equal(t, "ETH", *alert.Asset)
	assert.Equal(t, []string{"email", "line"}, []string(alert.Channels))
	require.NotNil(t, alert.BotRef)
	assert.Equal(t, "Grid", alert.BotRef.Name)

	toggled, err := svc.ToggleAlert(ctx, user.ID, alert.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Enabled)

	toggled, err = svc.ToggleAlert(ctx, user.ID, alert.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Enabled)

	updated, err := svc.UpdateAlert(ctx, user.ID, alert.ID, &model.UpdateAlertRequest{
		Threshold: ptr(5.0),
		Enabled:   ptr(false),
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, updated.Threshold, 1e-9)
	assert.False(t, updated.Enabled)

	require.NoError(t, svc.DeleteAlert(ctx, user.ID, alert.ID))
	_, err = svc.GetAlert(ctx, user.ID, alert.ID)
	assertAppError(t, err, http.StatusNotFound, util.ErrCodeAlertNotFound)
	err = svc.DeleteAlert(ctx, user.ID, alert.ID)
	assertAppError(t, err, http.StatusNotFound, util.ErrCodeAlertNotFound)
}

func TestAlertService_RejectsForeignBot(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAlertService(env.alerts, env.bots, env.log)
	ctx := context.Background()
	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	bot := env.createBot(t, owner.ID, "Grid")

	_, err := svc.CreateAlert(ctx, other.ID, &model.CreateAlertRequest{
		Name:      "Not mine",
		Type:      model.AlertTypeBotStatus,
		Condition: model.AlertConditionEquals,
		Threshold: ptr(0.0),
		BotID:     &bot.ID,
	})
	assertAppError(t, err, http.StatusNotFound, util.ErrCodeBotNotFound)

	_, err = svc.ToggleAlert(ctx, other.ID, "missing")
	assertAppError(t, err, http.StatusNotFound, util.ErrCodeAlertNotFound)
}

func TestAlertService_HistoryListsTriggeredNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAlertService(env.alerts, env.bots, env.log)
	ctx := context.Background()
	user := env.createUser(t, "history@example.com")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := &model.Alert{UserID: user.ID, Name: "older", Type: model.AlertTypePrice, Condition: model.AlertConditionAbove,
		Enabled: true, TriggeredAt: ptr(base), TriggeredCount: 1}
	newer := &model.Alert{UserID: user.ID, Name: "newer", Type: model.AlertTypePrice, Condition: model.AlertConditionBelow,
		Enabled: true, TriggeredAt: ptr(base.Add(time.Hour)), TriggeredCount: 3}
	never := &model.Alert{UserID: user.ID, Name: "never", Type: model.AlertTypePNL, Condition: model.AlertConditionBelow, Enabled: true}
	for _, a := range []*model.Alert{older, newer, never} {
		require.NoError(t, env.alerts.Create(ctx, a))
	}

	history, err := svc.GetHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "newer", history[0].Name)
	assert.Equal(t, "older", history[1].Name)
}
