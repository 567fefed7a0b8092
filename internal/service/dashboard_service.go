package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"dexboard/backend/internal/metrics"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
)

// DashboardStats is the payload of the dashboard landing page
type DashboardStats struct {
	Portfolio    metrics.PortfolioValuation `json:"portfolio"`
	Bots         metrics.BotSummary         `json:"bots"`
	Alerts       metrics.AlertSummary       `json:"alerts"`
	RecentTrades []RecentTrade              `json:"recentTrades"`
	BotsOverview []BotOverview              `json:"botsOverview"`
}

// RecentTrade is a trade as listed on the dashboard
type RecentTrade struct {
	ID        string    `json:"id"`
	BotName   string    `json:"botName"`
	Type      string    `json:"type"`
	Pair      string    `json:"pair"`
	Price     float64   `json:"price"`
	Amount    float64   `json:"amount"`
	Total     float64   `json:"total"`
	Profit    *float64  `json:"profit"`
	Timestamp time.Time `json:"timestamp"`
}

// BotOverview is a bot as listed on the dashboard
type BotOverview struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Pair          string  `json:"pair"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profitPercent"`
	Trades        int     `json:"trades"`
}

// DashboardPerformance holds the chart series of a period
type DashboardPerformance struct {
	Period           string                     `json:"period"`
	PortfolioHistory []metrics.HistoryPoint     `json:"portfolioHistory"`
	TradingActivity  []metrics.DailyPerformance `json:"tradingActivity"`
}

// DashboardService aggregates the read side of the dashboard.
// Every fetch of one request runs concurrently; the first failure fails the whole request.
type DashboardService struct {
	botRepo      *repository.BotRepository
	walletRepo   *repository.WalletRepository
	alertRepo    *repository.AlertRepository
	tradeRepo    *repository.TradeRepository
	snapshotRepo *repository.SnapshotRepository
	now          Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	botRepo *repository.BotRepository,
	walletRepo *repository.WalletRepository,
	alertRepo *repository.AlertRepository,
	tradeRepo *repository.TradeRepository,
	snapshotRepo *repository.SnapshotRepository,
) *DashboardService {
	return &DashboardService{
		botRepo:      botRepo,
		walletRepo:   walletRepo,
		alertRepo:    alertRepo,
		tradeRepo:    tradeRepo,
		snapshotRepo: snapshotRepo,
		now:          UTCNow,
	}
}

// GetStats values the portfolio and summarizes bots, alerts and the latest trades
func (s *DashboardService) GetStats(ctx context.Context, userID string) (*DashboardStats, error) {
	var (
		bots    []model.Bot
		wallets []model.Wallet
		alerts  []model.Alert
		trades  []model.Trade
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bots, err = s.botRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		wallets, err = s.walletRepo.ListActive(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.alertRepo.ListEnabled(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		trades, err = s.tradeRepo.ListRecent(gctx, userID, util.RecentTradesLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, util.ErrInternalServer("Failed to load dashboard", err)
	}

	stats := &DashboardStats{
		Portfolio:    metrics.Valuate(wallets),
		Bots:         metrics.SummarizeBots(bots),
		Alerts:       metrics.SummarizeAlerts(alerts),
		RecentTrades: make([]RecentTrade, 0, len(trades)),
		BotsOverview: make([]BotOverview, 0, len(bots)),
	}
	for i := range trades {
		t := &trades[i]
		stats.RecentTrades = append(stats.RecentTrades, RecentTrade{
			ID:        t.ID,
			BotName:   t.BotName(),
			Type:      t.Type,
			Pair:      t.Pair,
			Price:     t.Price,
			Amount:    t.Amount,
			Total:     t.Total,
			Profit:    t.Profit,
			Timestamp: t.Timestamp,
		})
	}
	for _, b := range bots {
		stats.BotsOverview = append(stats.BotsOverview, BotOverview{
			ID:            b.ID,
			Name:          b.Name,
			Type:          b.Type,
			Status:        b.Status,
			Pair:          b.Pair,
			Profit:        b.Profit,
			ProfitPercent: b.ProfitPercent,
			Trades:        b.TradesCount,
		})
	}
	return stats, nil
}

// GetPerformance returns the snapshot history and daily trading activity of a period
func (s *DashboardService) GetPerformance(ctx context.Context, userID, period string) (*DashboardPerformance, error) {
	period, from, err := util.ResolvePeriod(util.DashboardPeriods, period, s.now())
	if err != nil {
		return nil, err
	}

	var (
		snapshots []model.PortfolioSnapshot
		trades    []model.Trade
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapshots, err = s.snapshotRepo.ListSince(gctx, userID, from)
		return err
	})
	g.Go(func() error {
		var err error
		trades, err = s.tradeRepo.ListSince(gctx, userID, from)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, util.ErrInternalServer("Failed to load performance", err)
	}

	return &DashboardPerformance{
		Period:           period,
		PortfolioHistory: metrics.SnapshotSeries(snapshots),
		TradingActivity:  metrics.BucketByDay(trades),
	}, nil
}

// GetBotsComparison ranks the user's bots by profit with their realized win rate
func (s *DashboardService) GetBotsComparison(ctx context.Context, userID string) ([]metrics.BotComparison, error) {
	var (
		bots        []model.Bot
		tradesByBot map[string][]model.Trade
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bots, err = s.botRepo.ListByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		tradesByBot, err = s.tradeRepo.ListRealizedByBot(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, util.ErrInternalServer("Failed to load bots comparison", err)
	}

	return metrics.CompareBots(bots, tradesByBot), nil
}
