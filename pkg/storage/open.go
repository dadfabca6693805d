package storage

import (
	"context"
	"fmt"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindMemory = "memory"
	KindRedis  = "redis"
	KindMongo  = "mongo"
)

// Defaults for Config.
const (
	DefaultRedisURL        = "redis://localhost:6379/0"
	DefaultMongoURI        = "mongodb://localhost:27017"
	DefaultMongoDatabase   = "shelfplan"
	DefaultMongoCollection = "planograms"
)

// Config selects and configures a backend.
type Config struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	RedisURL        string `toml:"redis_url"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
	Namespace       string `toml:"namespace"` // optional key prefix
}

// SetDefaults fills empty fields.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = KindFile
	}
	if c.RedisURL == "" {
		c.RedisURL = DefaultRedisURL
	}
	if c.MongoURI == "" {
		c.MongoURI = DefaultMongoURI
	}
	if c.MongoDatabase == "" {
		c.MongoDatabase = DefaultMongoDatabase
	}
	if c.MongoCollection == "" {
		c.MongoCollection = DefaultMongoCollection
	}
}

// Describe returns a human readable location for the configured backend.
func (c Config) Describe() string {
	switch c.Backend {
	case KindFile:
		return c.Dir
	case KindRedis:
		return c.RedisURL
	case KindMongo:
		return fmt.Sprintf("%s/%s.%s", c.MongoURI, c.MongoDatabase, c.MongoCollection)
	}
	return c.Backend
}

// Keyer returns the keyer for the configured namespace.
func (c Config) Keyer() Keyer {
	if c.Namespace == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(NewDefaultKeyer(), c.Namespace+":")
}

// Open creates the configured backend.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	cfg.SetDefaults()
	switch cfg.Backend {
	case KindFile:
		if cfg.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file backend needs a directory")
		}
		b, err := NewFileBackend(cfg.Dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s", cfg.Dir)
		}
		return b, nil
	case KindMemory:
		return NewMemoryBackend(), nil
	case KindRedis:
		return NewRedisBackend(ctx, cfg.RedisURL)
	case KindMongo:
		return NewMongoBackend(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown storage backend %q (want file, memory, redis or mongo)", cfg.Backend)
}

// OpenRepository opens the configured backend and wraps it in a Repository.
func OpenRepository(ctx context.Context, cfg Config) (*Repository, error) {
	b, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewRepository(b, cfg.Keyer()), nil
}
