package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/srgjo27/gercamp/internal/config"
)

//go:embed schema.sql
var schema string

func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// NewPostgresDB opens the pool and waits for the server to accept
// connections, retrying ConnectRetries times.
func NewPostgresDB(ctx context.Context, cfg config.PostgresConfig, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	maxRetries := cfg.ConnectRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	for i := 1; i <= maxRetries; i++ {
		log.Info("connecting to database", zap.Int("attempt", i), zap.Int("max_attempts", maxRetries))

		if err = db.PingContext(ctx); err == nil {
			log.Info("database connected")
			return db, nil
		}

		log.Warn("database not ready yet", zap.Error(err))
		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect database: %w", err)
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
