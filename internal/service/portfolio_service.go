package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"dexboard/backend/internal/metrics"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
	"dexboard/backend/pkg/logger"
)

// PortfolioOverview is the valuation of the active wallets with counts
type PortfolioOverview struct {
	metrics.PortfolioValuation
	WalletsCount int `json:"walletsCount"`
	AssetsCount  int `json:"assetsCount"`
}

// PortfolioService manages wallets, their assets and portfolio snapshots
type PortfolioService struct {
	walletRepo   *repository.WalletRepository
	snapshotRepo *repository.SnapshotRepository
	botRepo      *repository.BotRepository
	log          *logger.Logger
	now          Clock
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(
	walletRepo *repository.WalletRepository,
	snapshotRepo *repository.SnapshotRepository,
	botRepo *repository.BotRepository,
	log *logger.Logger,
) *PortfolioService {
	return &PortfolioService{
		walletRepo:   walletRepo,
		snapshotRepo: snapshotRepo,
		botRepo:      botRepo,
		log:          log,
		now:          UTCNow,
	}
}

// GetOverview values the active wallets and returns the merged asset list
func (s *PortfolioService) GetOverview(ctx context.Context, userID string) (*PortfolioOverview, []metrics.MergedAsset, error) {
	wallets, err := s.walletRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, nil, util.ErrInternalServer("Failed to load wallets", err)
	}

	assets := metrics.MergeAssets(wallets)
	overview := &PortfolioOverview{
		PortfolioValuation: metrics.Valuate(wallets),
		WalletsCount:       len(wallets),
		AssetsCount:        len(assets),
	}
	return overview, assets, nil
}

// GetAssets returns the active wallets' assets merged by symbol
func (s *PortfolioService) GetAssets(ctx context.Context, userID string) ([]metrics.MergedAsset, error) {
	wallets, err := s.walletRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to load wallets", err)
	}
	return metrics.MergeAssets(wallets), nil
}

// GetHistory lists the snapshots of a period in ascending time
func (s *PortfolioService) GetHistory(ctx context.Context, userID, period string) ([]model.PortfolioSnapshot, error) {
	_, from, err := util.ResolvePeriod(util.HistoryPeriods, period, s.now())
	if err != nil {
		return nil, err
	}

	snapshots, err := s.snapshotRepo.ListSince(ctx, userID, from)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to load portfolio history", err)
	}
	return snapshots, nil
}

// CaptureSnapshot records the current total value and the bots' total profit
func (s *PortfolioService) CaptureSnapshot(ctx context.Context, userID string) (*model.PortfolioSnapshot, error) {
	var (
		wallets []model.Wallet
		bots    []model.Bot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wallets, err = s.walletRepo.ListActive(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		bots, err = s.botRepo.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, util.ErrInternalServer("Failed to load portfolio", err)
	}

	snapshot := &model.PortfolioSnapshot{
		UserID:     userID,
		Timestamp:  s.now(),
		TotalValue: metrics.Valuate(wallets).TotalValue,
		Profit:     metrics.SummarizeBots(bots).TotalProfit,
	}
	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, util.ErrInternalServer("Failed to save snapshot", err)
	}
	return snapshot, nil
}

// ListWallets lists every wallet of the user, active or not, with its value
func (s *PortfolioService) ListWallets(ctx context.Context, userID string) ([]model.WalletListItem, error) {
	wallets, err := s.walletRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to list wallets", err)
	}

	items := make([]model.WalletListItem, 0, len(wallets))
	for _, w := range wallets {
		items = append(items, model.WalletListItem{
			Wallet:     w,
			TotalValue: metrics.WalletValue(w),
			Count:      model.WalletCount{Assets: len(w.Assets)},
		})
	}
	return items, nil
}

// GetWallet gets an owned wallet with its assets
func (s *PortfolioService) GetWallet(ctx context.Context, userID, walletID string) (*model.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, userID, walletID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrWalletNotFound(), "Failed to load wallet")
	}
	return wallet, nil
}

// CreateWallet starts tracking an address; the same address on the same chain can only be added once
func (s *PortfolioService) CreateWallet(ctx context.Context, userID string, req *model.CreateWalletRequest) (*model.Wallet, error) {
	address := strings.TrimSpace(req.Address)
	chain := strings.ToLower(strings.TrimSpace(req.Chain))

	exists, err := s.walletRepo.Exists(ctx, userID, address, chain)
	if err != nil {
		return nil, util.ErrInternalServer("Failed to check wallet", err)
	}
	if exists {
		return nil, util.ErrAlreadyExists("Wallet already exists")
	}

	wallet := &model.Wallet{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Address:  address,
		Chain:    chain,
		IsActive: true,
		Assets:   []model.Asset{},
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, util.ErrAlreadyExists("Wallet already exists")
		}
		return nil, util.ErrInternalServer("Failed to create wallet", err)
	}

	s.log.WithFields(map[string]interface{}{"user_id": userID, "wallet_id": wallet.ID, "chain": chain}).Info("Wallet added")
	return wallet, nil
}

// UpdateWallet renames a wallet or toggles whether it counts towards the portfolio
func (s *PortfolioService) UpdateWallet(ctx context.Context, userID, walletID string, req *model.UpdateWalletRequest) (*model.Wallet, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	wallet, err := s.walletRepo.Update(ctx, userID, walletID, updates)
	if err != nil {
		return nil, notFoundOr(err, util.ErrWalletNotFound(), "Failed to update wallet")
	}
	return wallet, nil
}

// DeleteWallet removes a wallet and its assets
func (s *PortfolioService) DeleteWallet(ctx context.Context, userID, walletID string) error {
	if err := s.walletRepo.Delete(ctx, userID, walletID); err != nil {
		return notFoundOr(err, util.ErrWalletNotFound(), "Failed to delete wallet")
	}
	return nil
}

// UpsertAsset sets the balance and quote of a symbol in an owned wallet
func (s *PortfolioService) UpsertAsset(ctx context.Context, userID, walletID string, req *model.UpsertAssetRequest) (*model.Asset, error) {
	if _, err := s.walletRepo.GetByID(ctx, userID, walletID); err != nil {
		return nil, notFoundOr(err, util.ErrWalletNotFound(), "Failed to load wallet")
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	asset := &model.Asset{
		WalletID:  walletID,
		Symbol:    symbol,
		Name:      strings.TrimSpace(req.Name),
		Balance:   util.NormalizeBalance(*req.Balance, symbol, s.log),
		Price:     *req.Price,
		Change24h: req.Change24h,
		Logo:      req.Logo,
	}
	if err := s.walletRepo.UpsertAsset(ctx, asset); err != nil {
		return nil, util.ErrInternalServer("Failed to save asset", err)
	}
	return asset, nil
}

// DeleteAsset removes a symbol from an owned wallet
func (s *PortfolioService) DeleteAsset(ctx context.Context, userID, walletID, symbol string) error {
	if _, err := s.walletRepo.GetByID(ctx, userID, walletID); err != nil {
		return notFoundOr(err, util.ErrWalletNotFound(), "Failed to load wallet")
	}

	if err := s.walletRepo.DeleteAsset(ctx, walletID, strings.ToUpper(symbol)); err != nil {
		return notFoundOr(err, util.ErrNotFound("Asset not found"), "Failed to delete asset")
	}
	return nil
}
