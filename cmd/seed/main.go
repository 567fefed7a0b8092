package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"dexboard/backend/internal/config"
	"dexboard/backend/internal/model"
	"dexboard/backend/internal/repository"
	"dexboard/backend/pkg/crypto"
	"dexboard/backend/pkg/database"
	"dexboard/backend/pkg/logger"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@dexboard.local"
	demoPassword = "demo1234"
)

type seedAsset struct {
	symbol, name   string
	balance, price float64
	change24h      float64
}

type seedWallet struct {
	name, chain, address string
	assets               []seedAsset
}

var demoWallets = []seedWallet{
	{
		name: "Main Wallet", chain: "ethereum", address: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
		assets: []seedAsset{
			{"ETH", "Ethereum", 2.5, 3000, 2.4},
			{"USDC", "USD Coin", 5000, 1, 0},
			{"LINK", "Chainlink", 150, 14.2, -1.8},
		},
	},
	{
		name: "Trading Wallet", chain: "bsc", address: "0x8894E0a0c962CB723c1976a4421c95949bE2D4E3",
		assets: []seedAsset{
			{"BNB", "BNB", 10, 580, 1.1},
			{"ETH", "Ethereum", 0.5, 3000, 2.4},
		},
	},
}

type seedBot struct {
	name, kind, pair, exchange string
	config                     map[string]interface{}
	running                    bool
}

var demoBots = []seedBot{
	{"ETH Grid", model.BotTypeGrid, "ETH/USDC", "Uniswap", map[string]interface{}{"upperPrice": 3400, "lowerPrice": 2600, "grids": 20}, true},
	{"BNB DCA", model.BotTypeDCA, "BNB/USDT", "PancakeSwap", map[string]interface{}{"amount": 50, "interval": "1d"}, false},
	{"Stable Arb", model.BotTypeArbitrage, "USDC/USDT", "Curve", map[string]interface{}{"minSpread": 0.1}, true},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open(database.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		SlowQuery:    cfg.Database.SlowQuery,
	}, logger.New("warn", "console"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)

	existing, err := userRepo.GetByEmail(ctx, demoEmail)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("Failed to look up demo user: %v", err)
	}
	if existing != nil {
		fmt.Printf("Demo user %s already exists, nothing to do\n", demoEmail)
		return
	}

	hash, err := crypto.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	name := "Demo Trader"
	user := &model.User{Email: demoEmail, Password: hash, Name: &name}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	now := time.Now().UTC()
	if err := seed(ctx, db, user.ID, now); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	fmt.Println("✓ Demo data created")
	fmt.Printf("  Email:    %s\n", demoEmail)
	fmt.Printf("  Password: %s\n", demoPassword)
}

// seed creates wallets, bots with a trade history, portfolio snapshots and alerts for userID
func seed(ctx context.Context, db *gorm.DB, userID string, now time.Time) error {
	walletRepo := repository.NewWalletRepository(db)
	botRepo := repository.NewBotRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	total := 0.0
	for _, w := range demoWallets {
		wallet := &model.Wallet{UserID: userID, Name: w.name, Chain: w.chain, Address: w.address, IsActive: true}
		if err := walletRepo.Create(ctx, wallet); err != nil {
			return fmt.Errorf("wallet %s: %w", w.name, err)
		}
		for _, a := range w.assets {
			asset := &model.Asset{
				WalletID:  wallet.ID,
				Symbol:    a.symbol,
				Name:      a.name,
				Balance:   a.balance,
				Price:     a.price,
				Change24h: a.change24h,
			}
			if err := walletRepo.UpsertAsset(ctx, asset); err != nil {
				return fmt.Errorf("asset %s: %w", a.symbol, err)
			}
			total += a.balance * a.price
		}
	}

	var firstBotID string
	for i, b := range demoBots {
		bot := &model.Bot{
			UserID:   userID,
			Name:     b.name,
			Type:     b.kind,
			Pair:     b.pair,
			Exchange: b.exchange,
			Config:   b.config,
			Uptime:   24 * (i + 1),
		}
		if b.running {
			started := now.Add(-6 * time.Hour)
			bot.Status = model.BotStatusRunning
			bot.LastStarted = &started
		}
		if err := botRepo.Create(ctx, bot); err != nil {
			return fmt.Errorf("bot %s: %w", b.name, err)
		}
		if i == 0 {
			firstBotID = bot.ID
		}

		// One trade a day for two weeks, alternating sides, every fourth one a loss
		for day := 0; day < 14; day++ {
			botID := bot.ID
			side := model.TradeTypeBuy
			var profit *float64
			if day%2 == 1 {
				side = model.TradeTypeSell
				p := float64(10 + 5*i + day)
				if day%4 == 3 {
					p = -p / 2
				}
				profit = &p
			}
			price := 100.0 * float64(i+1)
			trade := &model.Trade{
				UserID:    userID,
				BotID:     &botID,
				Type:      side,
				Pair:      b.pair,
				Price:     price,
				Amount:    1,
				Total:     price,
				Profit:    profit,
				Timestamp: now.AddDate(0, 0, -day).Add(-time.Duration(i) * time.Hour),
			}
			if err := tradeRepo.Create(ctx, trade); err != nil {
				return fmt.Errorf("trade for %s: %w", b.name, err)
			}
		}
	}

	manualProfit := 42.0
	manual := &model.Trade{
		UserID:    userID,
		Type:      model.TradeTypeSell,
		Pair:      "LINK/USDC",
		Price:     14.2,
		Amount:    10,
		Total:     142,
		Profit:    &manualProfit,
		Timestamp: now.Add(-2 * time.Hour),
	}
	if err := tradeRepo.Create(ctx, manual); err != nil {
		return fmt.Errorf("manual trade: %w", err)
	}

	// Thirty daily snapshots drifting up to the current value
	for day := 30; day >= 0; day-- {
		snapshot := &model.PortfolioSnapshot{
			UserID:     userID,
			Timestamp:  now.AddDate(0, 0, -day),
			TotalValue: total * (1 - float64(day)*0.004),
			Profit:     total * float64(30-day) * 0.004,
		}
		if err := snapshotRepo.Create(ctx, snapshot); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}

	eth := "ETH"
	triggered := now.Add(-3 * time.Hour)
	alerts := []*model.Alert{
		{
			UserID: userID, Name: "ETH above 3500", Type: model.AlertTypePrice, Condition: model.AlertConditionAbove,
			Threshold: 3500, Asset: &eth, Enabled: true, Channels: []string{"email", "push"},
		},
		{
			UserID: userID, Name: "Grid bot stopped", Type: model.AlertTypeBotStatus, Condition: model.AlertConditionEquals,
			Threshold: 0, BotID: &firstBotID, Enabled: true, Channels: []string{"telegram"},
			TriggeredAt: &triggered, TriggeredCount: 2,
		},
		{
			UserID: userID, Name: "Daily loss over 100", Type: model.AlertTypePNL, Condition: model.AlertConditionBelow,
			Threshold: -100, Enabled: true, Channels: []string{"line"},
		},
	}
	for _, alert := range alerts {
		if err := alertRepo.Create(ctx, alert); err != nil {
			return fmt.Errorf("alert %s: %w", alert.Name, err)
		}
	}

	// enabled has a column default, so a disabled alert is created enabled and toggled off
	if _, err := alertRepo.Toggle(ctx, userID, alerts[2].ID); err != nil {
		return fmt.Errorf("alert %s: %w", alerts[2].Name, err)
	}

	return nil
}
