package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/config"
)

// Postgres wraps a database/sql pool on the pgx driver, instrumented with otelsql.
type Postgres struct {
	DB *sql.DB
}

// NewPostgres opens and verifies the connection pool.
func NewPostgres(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.PostgresDSN == "" {
		return nil, errors.New("POSTGRES_DSN not provided")
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(cfg.MinConns)
	}
	if cfg.ConnMaxLifeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifeSec) * time.Second)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	logger.Info("connected to postgres")
	return &Postgres{DB: db}, nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.DB != nil {
		_ = p.DB.Close()
	}
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.DB == nil {
		return errors.New("postgres not configured")
	}
	return p.DB.PingContext(ctx)
}
