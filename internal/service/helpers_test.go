package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/database"
	"dexboard/backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	users     *repository.UserRepository
	bots      *repository.BotRepository
	wallets   *repository.WalletRepository
	trades    *repository.TradeRepository
	alerts    *repository.AlertRepository
	snapshots *repository.SnapshotRepository
	log       *logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenInMemory(logger.Nop(), model.All()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	return &testEnv{
		users:     repository.NewUserRepository(db),
		bots:      repository.NewBotRepository(db),
		wallets:   repository.NewWalletRepository(db),
		trades:    repository.NewTradeRepository(db),
		alerts:    repository.NewAlertRepository(db),
		snapshots: repository.NewSnapshotRepository(db),
		log:       logger.Nop(),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Password: "not-a-hash"}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) createBot(t *testing.T, userID, name string) *model.Bot {
	t.Helper()
	bot := &model.Bot{UserID: userID, Name: name, Type: model.BotTypeGrid, Pair: "ETH/USDC", Exchange: "Uniswap"}
	require.NoError(t, e.bots.Create(context.Background(), bot))
	return bot
}

func (e *testEnv) recordTrade(t *testing.T, userID string, botID *string, pair string, profit *float64, at time.Time) *model.Trade {
	t.Helper()
	trade := &model.Trade{
		UserID:    userID,
		BotID:     botID,
		Type:      model.TradeTypeSell,
		Pair:      pair,
		Price:     100,
		Amount:    1,
		Total:     100,
		Profit:    profit,
		Timestamp: at,
	}
	require.NoError(t, e.trades.Create(context.Background(), trade))
	return trade
}

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

func ptr[T any](v T) *T {
	return &v
}

func assertAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := util.GetAppError(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.StatusCode)
	assert.Equal(t, code, appErr.Code)
}

// memoryTokenStore keeps revoked token ids in a map
type memoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{revoked: make(map[string]time.Duration)}
}

func (m *memoryTokenStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = ttl
	return nil
}

func (m *memoryTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}
