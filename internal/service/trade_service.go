package service

import (
	"context"
	"strings"

	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/logger"
)

// TradeService records trades. Trades are never updated once recorded.
type TradeService struct {
	tradeRepo *repository.TradeRepository
	log       *logger.Logger
	now       Clock
}

// NewTradeService creates a new trade service
func NewTradeService(tradeRepo *repository.TradeRepository, log *logger.Logger) *TradeService {
	return &TradeService{
		tradeRepo: tradeRepo,
		log:       log,
		now:       UTCNow,
	}
}

// RecordTrade stores a manual or bot trade. A referenced bot must be owned by the user;
// its trade counter and profit move with the trade.
func (s *TradeService) RecordTrade(ctx context.Context, userID string, req *model.CreateTradeRequest) (*model.Trade, error) {
	total := req.Price * req.Amount
	if req.Total != nil {
		total = *req.Total
	}

	timestamp := s.now()
	if req.Timestamp != nil {
		timestamp = req.Timestamp.UTC()
	}

	trade := &model.Trade{
		UserID:    userID,
		BotID:     req.BotID,
		Type:      req.Type,
		Pair:      strings.ToUpper(strings.TrimSpace(req.Pair)),
		Price:     req.Price,
		Amount:    req.Amount,
		Total:     total,
		Profit:    req.Profit,
		Timestamp: timestamp,
	}

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return nil, notFoundOr(err, util.ErrBotNotFound(), "Failed to record trade")
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":  userID,
		"trade_id": trade.ID,
		"pair":     trade.Pair,
	}).Debug("Trade recorded")
	return trade, nil
}
