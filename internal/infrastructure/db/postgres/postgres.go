package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to open a PostgreSQL connection.
type Config struct {
	DSN     string
	Timeout time.Duration
	// Debug logs every SQL statement through gorm's logger.
	Debug bool
}

// Open connects to PostgreSQL, verifies connectivity and migrates the schema.
// Driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logMode := gormlogger.Silent
	if cfg.Debug {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := Ping(pingCtx, db); err != nil {
		return nil, err
	}
	if err := db.WithContext(pingCtx).AutoMigrate(&userRow{}, &userEventRow{}); err != nil {
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}
	return db, nil
}

// Ping checks the underlying connection pool.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("postgres pool: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
