package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"

	"dexboard/backend/internal/metrics"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/logger"
)

// BotService manages bot records. Bots are inert: start and stop only flip their status.
type BotService struct {
	botRepo   *repository.BotRepository
	tradeRepo *repository.TradeRepository
	log       *logger.Logger
	now       Clock
}

// NewBotService creates a new bot service
func NewBotService(botRepo *repository.BotRepository, tradeRepo *repository.TradeRepository, log *logger.Logger) *BotService {
	return &BotService{
		botRepo:   botRepo,
		tradeRepo: tradeRepo,
		log:       log,
		now:       UTCNow,
	}
}

// ListBots lists the user's bots with their persisted trade counts
func (s *BotService) ListBots(ctx context.Context, userID string) ([]model.BotListItem, error) {
	bots, err := s.botRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to list bots", err)
	}

	counts, err := s.botRepo.CountTrades(ctx, userID)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to count trades", err)
	}

	items := make([]model.BotListItem, 0, len(bots))
	for _, b := range bots {
		items = append(items, model.BotListItem{
			Bot:   b,
			Count: model.BotCount{Trades: counts[b.ID]},
		})
	}
	return items, nil
}

// GetBot gets a bot with its latest trades and alerts
func (s *BotService) GetBot(ctx context.Context, userID, botID string) (*model.Bot, error) {
	bot, err := s.botRepo.GetDetail(ctx, userID, botID, util.BotDetailTradesLimit)
	if err != nil {
		return nil, notFoundOr(err, util.ErrBotNotFound(), "Failed to load bot")
	}
	return bot, nil
}

// CreateBot creates a stopped bot
func (s *BotService) CreateBot(ctx context.Context, userID string, req *model.CreateBotRequest) (*model.Bot, error) {
	bot := &model.Bot{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Pair:     strings.ToUpper(strings.TrimSpace(req.Pair)),
		Exchange: strings.TrimSpace(req.Exchange),
		Config:   datatypes.JSONMap(req.Config),
		Status:   model.BotStatusStopped,
	}

	if err := s.botRepo.Create(ctx, bot); err != nil {
		return nil, util.ErrInternalServer("Failed to create bot", err)
	}

	s.log.WithFields(map[string]interface{}{
		"user_id": userID,
		"bot_id":  bot.ID,
		"type":    bot.Type,
	}).Info("Bot created")
	return bot, nil
}

// UpdateBot renames a bot or replaces its config
func (s *BotService) UpdateBot(ctx context.Context, userID, botID string, req *model.UpdateBotRequest) (*model.Bot, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Config != nil {
		updates["config"] = datatypes.JSONMap(req.Config)
	}

	bot, err := s.botRepo.Update(ctx, userID, botID, updates)
	if err != nil {
		return nil, notFoundOr(err, util.ErrBotNotFound(), "Failed to update bot")
	}
	return bot, nil
}

// DeleteBot deletes a bot; its trades and alerts stay, detached
func (s *BotService) DeleteBot(ctx context.Context, userID, botID string) error {
	if err := s.botRepo.Delete(ctx, userID, botID); err != nil {
		return notFoundOr(err, util.ErrBotNotFound(), "Failed to delete bot")
	}
	s.log.WithFields(map[string]interface{}{"user_id": userID, "bot_id": botID}).Info("Bot deleted")
	return nil
}

// StartBot moves a bot to running and records the start time.
// The write is conditional on the state that was read, so concurrent start/stop calls cannot interleave.
func (s *BotService) StartBot(ctx context.Context, userID, botID string) (*model.Bot, error) {
	bot, err := s.botRepo.GetByID(ctx, userID, botID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrBotNotFound(), "Failed to load bot")
	}

	if bot.IsRunning() {
		return nil, util.ErrInvalidState("Bot is already running")
	}

	updated, err := s.botRepo.Transition(ctx, bot, repository.StartUpdates(s.now()))
	if err != nil {
		return nil, s.transitionError(err)
	}

	s.log.WithFields(map[string]interface{}{"user_id": userID, "bot_id": botID}).Info("Bot started")
	return updated, nil
}

// StopBot moves a bot to stopped and adds the whole hours since its last start to its uptime
func (s *BotService) StopBot(ctx context.Context, userID, botID string) (*model.Bot, error) {
	bot, err := s.botRepo.GetByID(ctx, userID, botID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrBotNotFound(), "Failed to load bot")
	}

	if bot.Status == model.BotStatusStopped {
		return nil, util.ErrInvalidState("Bot is already stopped")
	}

	now := s.now()
	updated, err := s.botRepo.Transition(ctx, bot, repository.StopUpdates(now, bot.UptimeUntil(now)))
	if err != nil {
		return nil, s.transitionError(err)
	}

	s.log.WithFields(map[string]interface{}{
		"user_id": userID,
		"bot_id":  botID,
		"uptime":  updated.Uptime,
	}).Info("Bot stopped")
	return updated, nil
}

// GetBotStats summarizes every trade of one owned bot
func (s *BotService) GetBotStats(ctx context.Context, userID, botID string) (metrics.BotTradeStats, error) {
	if _, err := s.botRepo.GetByID(ctx, userID, botID); err != nil {
		return metrics.BotTradeStats{}, notFoundOr(err, util.ErrBotNotFound(), "Failed to load bot")
	}

	trades, err := s.tradeRepo.ListByBot(ctx, userID, botID)
	if err != nil {
		return metrics.BotTradeStats{}, util.ErrInternalServer("Failed to load trades", err)
	}

	return metrics.BotStats(trades), nil
}

func (s *BotService) transitionError(err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return util.ErrInvalidState("Bot state changed concurrently, please retry")
	case errors.Is(err, repository.ErrNotFound):
		return util.ErrBotNotFound()
	default:
		return util.ErrInternalServer("Failed to update bot status", err)
	}
}
