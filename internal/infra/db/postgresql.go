// Package db manages the PostgreSQL pool backing the invoice store.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/invoice-tracker/invoicetrack/config"
)

// connectTimeout bounds the startup ping.
const connectTimeout = 5 * time.Second

// Postgres owns the pooled GORM connection shared by the repositories.
type Postgres struct {
	conn *gorm.DB
}

// Connect opens the pool described by cfg and verifies it with a ping.
// GORM query logging stays silent; request logging lives at the HTTP layer.
func Connect(cfg *config.DatabaseConfig) (*Postgres, error) {
	conn, err := gorm.Open(postgres.Open(cfg.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Connected to Postgres",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
	)

	return &Postgres{conn: conn}, nil
}

// Gorm returns the GORM handle for repository construction.
func (p *Postgres) Gorm() *gorm.DB {
	return p.conn
}

// Migrate applies the schema for the given models.
func (p *Postgres) Migrate(models ...interface{}) error {
	if err := p.conn.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close releases every pooled connection.
func (p *Postgres) Close() error {
	sqlDB, err := p.conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	slog.Info("Postgres connection closed")
	return nil
}
