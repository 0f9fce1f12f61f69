package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/MKhiriev/playground-auth/internal/config"
	"github.com/MKhiriev/playground-auth/internal/logger"
)

const usersCollection = "users"

// MongoDB owns the document store client. It connects on first use and
// drops the client after a network failure so the next operation
// reconnects; callers never manage the connection themselves.
type MongoDB struct {
	mu             sync.Mutex
	uri            string
	dbName         string
	connectTimeout time.Duration
	client         *mongo.Client
	collection     *mongo.Collection
	logger         *logger.Logger
}

// NewMongoDB validates cfg.DSN and prepares a lazily connected handle.
// The database name comes from the DSN path, or cfg.Name when the DSN
// has none.
func NewMongoDB(cfg config.DB, log *logger.Logger) (*MongoDB, error) {
	cs, err := connstring.ParseAndValidate(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedDSN, err)
	}

	dbName := cs.Database
	if dbName == "" {
		dbName = cfg.Name
	}

	return &MongoDB{
		uri:            cfg.DSN,
		dbName:         dbName,
		connectTimeout: cfg.ConnectTimeout,
		logger:         log,
	}, nil
}

// Collection returns the users collection, connecting first when there is
// no live client.
func (m *MongoDB) Collection(ctx context.Context) (*mongo.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.collection != nil {
		return m.collection, nil
	}

	if err := m.connect(ctx); err != nil {
		return nil, err
	}

	return m.collection, nil
}

func (m *MongoDB) connect(ctx context.Context) error {
	connectCtx, cancel := context.WithTimeout(ctx, m.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(m.uri).
		SetConnectTimeout(m.connectTimeout).
		SetServerSelectionTimeout(m.connectTimeout))
	if err != nil {
		m.logger.Err(err).Str("func", "*MongoDB.connect").Msg("error connecting to document store")
		return fmt.Errorf("%w: connect: %w", ErrMongoOperation, err)
	}

	if err = client.Ping(connectCtx, nil); err != nil {
		m.logger.Err(err).Str("func", "*MongoDB.connect").Msg("error connecting to document store (ping)")
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("%w: ping: %w", ErrMongoOperation, err)
	}

	collection := client.Database(m.dbName).Collection(usersCollection)
	if err = ensureUserIndexes(connectCtx, collection); err != nil {
		// existing duplicates block index creation; requests still work
		m.logger.Warn().Err(err).Str("func", "*MongoDB.connect").Msg("unique indexes were not created")
	}

	m.client = client
	m.collection = collection
	m.logger.Info().Str("func", "*MongoDB.connect").Str("database", m.dbName).Msg("connected to document store successfully")

	return nil
}

// Invalidate drops the client when err indicates a lost connection.
func (m *MongoDB) Invalidate(err error) {
	if err == nil || !(mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected)) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return
	}

	m.logger.Warn().Err(err).Str("func", "*MongoDB.Invalidate").Msg("document store connection lost, reconnecting on next use")
	_ = m.client.Disconnect(context.Background())
	m.client = nil
	m.collection = nil
}

// Close disconnects the client if one is open.
func (m *MongoDB) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}

	err := m.client.Disconnect(ctx)
	m.client = nil
	m.collection = nil

	return err
}

func ensureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}
