package database

import (
	"context"
	"fmt"

	"github.com/duccv/whereisit/config"
)

type DatabaseType string

const (
	MongoDBNoSQL DatabaseType = "mongodb"
	PostgreSQL   DatabaseType = "postgres"
	// InMemory keeps documents in process; used for local runs and tests.
	InMemory DatabaseType = "memory"
)

type Database interface {
	Connect(ctx context.Context) error
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
	GetType() DatabaseType
	// WithTransaction runs fn in one store transaction. fn must use the context it is given.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// New creates and connects the database selected by env.DatabaseConfig.Type.
func New(ctx context.Context, env *config.Env) (Database, error) {
	var db Database

	switch DatabaseType(env.DatabaseConfig.Type) {
	case MongoDBNoSQL:
		db = NewMongoDB(&env.MongoConfig)
	case PostgreSQL:
		db = NewPostgresDB(&env.PostgresConfig)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", env.DatabaseConfig.Type)
	}

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", env.DatabaseConfig.Type, err)
	}
	return db, nil
}
