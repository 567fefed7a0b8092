package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dexboard/backend/pkg/logger"
)

// Config holds database connection settings
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	SlowQuery    time.Duration
}

// Open connects to the configured database and applies pool settings
func Open(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(log, cfg.SlowQuery),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if lifetime := connMaxLifetime(cfg); lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	}

	return db, nil
}

// connMaxLifetime is zero for in-memory sqlite, where recycling the connection drops the data
func connMaxLifetime(cfg Config) time.Duration {
	if cfg.MaxOpenConns == 1 || strings.Contains(cfg.DSN, ":memory:") {
		return 0
	}
	return time.Hour
}

// OpenInMemory returns an isolated sqlite database with the given models migrated
func OpenInMemory(log *logger.Logger, models ...interface{}) (*gorm.DB, error) {
	// A single connection keeps every query on the same in-memory database
	db, err := Open(Config{
		Driver:       "sqlite",
		DSN:          "file::memory:?_foreign_keys=on",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, log)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db, models...); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema of the given models
func Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		return nil
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping checks the connection is alive
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGormLogger(log *logger.Logger, slow time.Duration) gormlogger.Interface {
	if log == nil {
		return gormlogger.Discard
	}
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
