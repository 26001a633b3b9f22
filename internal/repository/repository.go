// Package repository persists lost items and recovery records. Items are loosely
// typed documents; the only fields the service interprets are _id, status, date and
// contact.email.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/duccv/whereisit/config"
	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/pkg/cache"
	"github.com/duccv/whereisit/pkg/database"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// ErrInvalidID is returned when an item id is not a 24 character hex ObjectID.
var ErrInvalidID = errors.New("invalid item id")

const (
	ItemsTable      = "lost"
	RecoveriesTable = "recoveries"
)

type ItemRepository interface {
	FindAll(ctx context.Context) ([]model.Item, error)
	// FindByID returns nil and no error when no item has the id.
	FindByID(ctx context.Context, id string) (model.Item, error)
	// FindLatest returns up to limit items ordered by date, newest first.
	FindLatest(ctx context.Context, limit int64) ([]model.Item, error)
	// FindByContactEmail matches contact.email exactly. A nil email matches items
	// whose contact.email is missing or null.
	FindByContactEmail(ctx context.Context, email *string) ([]model.Item, error)
	Insert(ctx context.Context, item model.Item) (*model.InsertResult, error)
	// Update sets the given fields (dotted paths allowed) on one item.
	Update(ctx context.Context, id string, set model.Item) (*model.UpdateResult, error)
	Delete(ctx context.Context, id string) (*model.DeleteResult, error)
}

type RecoveryRepository interface {
	FindAll(ctx context.Context) ([]bson.M, error)
	Insert(ctx context.Context, recovery *model.Recovery) (*model.InsertResult, error)
}

// Transactor runs fn so that every repository call made with the context passed to
// fn commits or rolls back together.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store is the connection behind a set of repositories.
type Store interface {
	Transactor
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Stores bundles the repositories of one backend with its connection.
type Stores struct {
	Kind       database.DatabaseType
	Items      ItemRepository
	Recoveries RecoveryRepository
	Store      Store

	closers []func(ctx context.Context) error
}

// Open connects the backend selected by database.type and, when cache.enabled,
// fronts item lookups with the read cache.
func Open(ctx context.Context, env *config.Env) (*Stores, error) {
	s := &Stores{Kind: database.DatabaseType(env.DatabaseConfig.Type)}

	switch s.Kind {
	case database.InMemory:
		mem := NewMemoryStore()
		s.Items, s.Recoveries, s.Store = mem.Items(), mem.Recoveries(), mem
	case database.MongoDBNoSQL, database.PostgreSQL:
		db, err := database.New(ctx, env)
		if err != nil {
			return nil, err
		}
		s.Store = db
		switch conn := db.(type) {
		case *database.MongoDB:
			s.Items = NewMongoItemRepository(conn.Collection(env.MongoConfig.ItemsCollection))
			s.Recoveries = NewMongoRecoveryRepository(conn.Collection(env.MongoConfig.RecoveriesCollection))
		case *database.PostgresDB:
			if err := conn.EnsureCollections(ctx, ItemsTable, RecoveriesTable); err != nil {
				_ = conn.Close(ctx)
				return nil, err
			}
			s.Items = NewPostgresItemRepository(conn, ItemsTable)
			s.Recoveries = NewPostgresRecoveryRepository(conn, RecoveriesTable)
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", s.Kind)
	}
	s.closers = append(s.closers, s.Store.Close)

	if env.CacheConfig.Enabled {
		if err := s.enableCache(ctx, env); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

func (s *Stores) enableCache(ctx context.Context, env *config.Env) error {
	mem := cache.NewCache(env.CacheConfig)
	s.closers = append(s.closers, func(context.Context) error {
		mem.Stop()
		return nil
	})

	var l2 redis.UniversalClient
	if env.RedisConfig.Enabled {
		client, err := cache.NewRedisClient(ctx, env.RedisConfig)
		if err != nil {
			return err
		}
		l2 = client
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
	}

	ml := cache.NewMultiLevel[model.Item](mem,
		l2,
		time.Duration(env.CacheConfig.DefaultTTL)*time.Second,
		time.Duration(env.CacheConfig.RedisTTL)*time.Second,
	)
	s.Items = NewCachedItemRepository(s.Items, ml)
	zap.L().Info("Item read cache enabled",
		zap.Int("capacity", env.CacheConfig.Capacity),
		zap.Bool("redis", l2 != nil))
	return nil
}

// Close releases the cache and the store connection, last opened first.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
