package database

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/duccv/whereisit/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Querier is the subset of pgx shared by the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// PostgresDB stores documents as JSONB rows. Each collection is a table of
// (id, seq, data) where seq preserves insertion order.
type PostgresDB struct {
	config *config.PostgresConfig
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresDB(config *config.PostgresConfig) *PostgresDB {
	if config.ConnectionTimeout <= 0 {
		config.ConnectionTimeout = 30
	}
	return &PostgresDB{
		config: config,
		logger: zap.L().With(zap.String("component", "postgres")),
	}
}

func (p *PostgresDB) Connect(ctx context.Context) error {
	p.logger.Info("Starting PostgreSQL connection",
		zap.String("host", p.config.Host),
		zap.Int("port", p.config.Port),
		zap.String("database", p.config.Database),
		zap.String("username", p.config.User))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.config.ConnectionTimeout)*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(p.buildPgxDSN())
	if err != nil {
		p.logger.Error("Failed to parse pool config", zap.Error(err))
		return fmt.Errorf("failed to parse pool config: %w", err)
	}
	p.configurePool(poolConfig)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		p.logger.Error("Failed to create pool", zap.Error(err))
		return fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		p.logger.Error("Failed to ping PostgreSQL", zap.Error(err))
		pool.Close()
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	p.pool = pool

	p.logger.Info("Successfully connected to PostgreSQL")
	return nil
}

// EnsureCollections creates one JSONB table per collection name if missing.
func (p *PostgresDB) EnsureCollections(ctx context.Context, names ...string) error {
	for _, name := range names {
		table := pgx.Identifier{name}.Sanitize()
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id   TEXT PRIMARY KEY,
	seq  BIGSERIAL,
	data JSONB NOT NULL
)`, table)
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
		p.logger.Debug("Collection table ready", zap.String("table", name))
	}
	return nil
}

// Querier returns the transaction carried by ctx, or the pool.
func (p *PostgresDB) Querier(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return p.pool
}

func (p *PostgresDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	if p.pool == nil {
		return fmt.Errorf("postgres pool not initialized")
	}
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (p *PostgresDB) GetType() DatabaseType {
	return PostgreSQL
}

func (p *PostgresDB) Close(_ context.Context) error {
	if p.pool == nil {
		return nil
	}
	p.logger.Info("Closing PostgreSQL connections")
	p.pool.Close()
	p.logger.Info("PostgreSQL connections closed successfully")
	return nil
}

func (p *PostgresDB) buildPgxDSN() string {
	if p.config.ConnectionString != "" {
		return p.config.ConnectionString
	}

	sslMode := p.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.config.User, p.config.Password),
		Host:     p.config.Host + ":" + strconv.Itoa(p.config.Port),
		Path:     "/" + p.config.Database,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

func (p *PostgresDB) configurePool(config *pgxpool.Config) {
	p.logger.Debug("Configuring connection pool",
		zap.Int32("max_conns", p.config.MaxConns),
		zap.Int32("min_conns", p.config.MinConns),
		zap.Int("conn_max_idle_time_minutes", p.config.ConnMaxIdleTime),
		zap.Int("conn_max_lifetime_hours", p.config.ConnMaxLifetime))

	if p.config.MaxConns != 0 {
		config.MaxConns = p.config.MaxConns
	}
	if p.config.MinConns != 0 {
		config.MinConns = p.config.MinConns
	}
	if p.config.ConnMaxIdleTime != 0 {
		config.MaxConnIdleTime = time.Duration(p.config.ConnMaxIdleTime) * time.Minute
	}
	if p.config.ConnMaxLifetime != 0 {
		config.MaxConnLifetime = time.Duration(p.config.ConnMaxLifetime) * time.Hour
	}
}
