package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"dexboard/backend/internal/metrics"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
)

// Analytics is the full analytics page of one period
type Analytics struct {
	Period           string                     `json:"period"`
	Stats            metrics.TradingStats       `json:"stats"`
	DailyPerformance []metrics.DailyPerformance `json:"dailyPerformance"`
	CumulativeProfit []metrics.CumulativePoint  `json:"cumulativeProfit"`
	BotPerformance   []metrics.BotPerformance   `json:"botPerformance"`
	PairPerformance  []metrics.PairPerformance  `json:"pairPerformance"`
}

// TradePage is one page of trades in a period
type TradePage struct {
	Trades []AnalyticsTrade
	Page   int
	Limit  int
	Total  int64
}

// AnalyticsTrade is a trade with the name of its bot
type AnalyticsTrade struct {
	model.Trade
	BotName string `json:"botName"`
}

// AnalyticsService computes trading statistics over a period
type AnalyticsService struct {
	botRepo   *repository.BotRepository
	tradeRepo *repository.TradeRepository
	now       Clock
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(botRepo *repository.BotRepository, tradeRepo *repository.TradeRepository) *AnalyticsService {
	return &AnalyticsService{
		botRepo:   botRepo,
		tradeRepo: tradeRepo,
		now:       UTCNow,
	}
}

// GetAnalytics computes every analytics series of a period
func (s *AnalyticsService) GetAnalytics(ctx context.Context, userID, period string) (*Analytics, error) {
	period, from, err := util.ResolvePeriod(util.AnalyticsPeriods, period, s.now())
	if err != nil {
		return nil, err
	}

	var (
		bots   []model.Bot
		trades []model.Trade
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bots, err = s.botRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		trades, err = s.tradeRepo.ListSince(gctx, userID, from)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, util.ErrInternalServer("Failed to load analytics", err)
	}

	daily := metrics.BucketByDay(trades)
	return &Analytics{
		Period:           period,
		Stats:            metrics.ComputeTradingStats(trades),
		DailyPerformance: daily,
		CumulativeProfit: metrics.CumulativeProfit(daily),
		BotPerformance:   metrics.PerformanceByBot(bots, trades),
		PairPerformance:  metrics.PerformanceByPair(trades),
	}, nil
}

// GetStats computes only the headline statistics of a period
func (s *AnalyticsService) GetStats(ctx context.Context, userID, period string) (metrics.TradingStats, error) {
	_, from, err := util.ResolvePeriod(util.AnalyticsPeriods, period, s.now())
	if err != nil {
		return metrics.TradingStats{}, err
	}

	trades, err := s.tradeRepo.ListSince(ctx, userID, from)
	if err != nil {
		return metrics.TradingStats{}, util.ErrInternalServer("Failed to load trades", err)
	}
	return metrics.ComputeTradingStats(trades), nil
}

// ListTrades pages through the trades of a period, newest first
func (s *AnalyticsService) ListTrades(ctx context.Context, userID, period string, page, limit int) (*TradePage, error) {
	_, from, err := util.ResolvePeriod(util.AnalyticsPeriods, period, s.now())
	if err != nil {
		return nil, err
	}

	page, limit = util.ClampPage(page, limit)
	trades, total, err := s.tradeRepo.Page(ctx, userID, from, page, limit)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to load trades", err)
	}

	out := make([]AnalyticsTrade, 0, len(trades))
	for i := range trades {
		out = append(out, AnalyticsTrade{Trade: trades[i], BotName: trades[i].BotName()})
	}
	return &TradePage{Trades: out, Page: page, Limit: limit, Total: total}, nil
}
