package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/duccv/whereisit/config"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// MongoDB implements Database for MongoDB Driver v2.
type MongoDB struct {
	config *config.MongoConfig
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoDB(config *config.MongoConfig) *MongoDB {
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 30
	}
	return &MongoDB{
		config: config,
		logger: zap.L().With(zap.String("component", "mongodb")),
	}
}

func (m *MongoDB) Connect(ctx context.Context) error {
	m.logger.Info("Starting MongoDB connection",
		zap.String("host", m.config.Host),
		zap.String("database", m.config.Database),
		zap.Int("connect_timeout_seconds", m.config.ConnectTimeout))

	ctx, cancel := context.WithTimeout(ctx, time.Duration(m.config.ConnectTimeout)*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(m.buildMongoURI())
	m.configureClientOptions(clientOptions)

	client, err := mongo.Connect(clientOptions)
	if err != nil {
		m.logger.Error("Failed to connect to MongoDB", zap.Error(err))
		return fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		m.logger.Error("Failed to ping MongoDB", zap.Error(err))
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	m.client = client
	m.db = client.Database(m.config.Database)
	m.logger.Info("Pinged your deployment. Successfully connected to MongoDB")
	return nil
}

// buildMongoURI returns the configured URI, or assembles the Atlas SRV URI from the
// DB_USER / DB_PASS credentials.
func (m *MongoDB) buildMongoURI() string {
	if m.config.URI != "" {
		return m.config.URI
	}

	u := url.URL{
		Scheme: m.config.Scheme,
		Host:   m.config.Host,
		Path:   "/",
	}
	if m.config.Username != "" {
		u.User = url.UserPassword(m.config.Username, m.config.Password)
	}

	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if m.config.AppName != "" {
		q.Set("appName", m.config.AppName)
	}
	if m.config.AuthSource != "" {
		q.Set("authSource", m.config.AuthSource)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func (m *MongoDB) configureClientOptions(opts *options.ClientOptions) {
	m.logger.Debug("Configuring MongoDB client options",
		zap.Uint64("max_pool_size", m.config.MaxPoolSize),
		zap.Uint64("min_pool_size", m.config.MinPoolSize))

	opts.SetServerAPIOptions(
		options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true),
	)
	// Nested documents decode as bson.M so items serialize back to plain JSON objects.
	opts.SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	if m.config.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(m.config.MaxPoolSize)
	}
	if m.config.MinPoolSize > 0 {
		opts.SetMinPoolSize(m.config.MinPoolSize)
	}

	opts.SetRetryReads(true)
	opts.SetRetryWrites(true)
	opts.SetConnectTimeout(time.Duration(m.config.ConnectTimeout) * time.Second)
	opts.SetServerSelectionTimeout(5 * time.Second)
	opts.SetReadPreference(readpref.Primary())
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	m.logger.Info("Closing MongoDB connections")
	if err := m.client.Disconnect(ctx); err != nil {
		m.logger.Error("MongoDB disconnect error", zap.Error(err))
		return fmt.Errorf("client disconnect error: %w", err)
	}
	m.logger.Info("MongoDB connections closed successfully")
	return nil
}

func (m *MongoDB) Ping(ctx context.Context) error {
	if m.client == nil {
		return fmt.Errorf("mongodb client not initialized")
	}
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

func (m *MongoDB) GetType() DatabaseType {
	return MongoDBNoSQL
}

// Collection returns a handle on the named collection of the configured database.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// WithTransaction runs fn inside a session transaction. Requires a replica set or
// sharded deployment (Atlas clusters are).
func (m *MongoDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		m.logger.Error("Failed to start MongoDB session", zap.Error(err))
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc context.Context) (any, error) {
		return nil, fn(sc)
	})
	if err != nil {
		m.logger.Error("MongoDB transaction failed", zap.Error(err))
	}
	return err
}
