package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/notify"
	cartrepo "storefront/internal/repository/cart"
	"storefront/internal/repository/kv"
	cartsvc "storefront/internal/service/cart"
)

// Storage is the opened cart storage backend plus the clients behind it.
type Storage struct {
	Store kv.Store
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

// OpenStorage opens the backend named by cfg.StorageBackend. A Redis client
// is also opened whenever REDIS_ADDR is set, for the cart relay.
func OpenStorage(ctx context.Context, cfg config.Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Storage{}
	if cfg.RedisAddr != "" {
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return nil, err
		}
		s.Redis = client
	}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		s.Store = kv.NewMemory(cfg.StorageQuotaBytes)
	case config.BackendFile:
		store, err := kv.NewFile(cfg.StorageDir, cfg.StorageQuotaBytes)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Store = store
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect db: %w", err)
		}
		s.Pool = pool
		s.Store = kv.NewPostgres(pool)
	case config.BackendRedis:
		s.Store = kv.NewRedis(s.Redis, kv.DefaultRedisPrefix)
	}
	return s, nil
}

func connectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// Pinger returns the readiness check of the backend, if it has one.
func (s *Storage) Pinger() kv.Pinger {
	p, _ := s.Store.(kv.Pinger)
	return p
}

// Close releases the clients opened by OpenStorage.
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
}

// Cart builds the cart service and the notifier it publishes to. When Redis
// is available, notifications also reach other processes through the
// returned relay, which the caller must Run.
func (s *Storage) Cart(cfg config.Config, logger *zap.Logger) (*cartsvc.Service, *notify.Notifier, *notify.RedisRelay) {
	bus := notify.New(logger.Named("notify"))
	var (
		publisher notify.Publisher = bus
		relay     *notify.RedisRelay
	)
	if s.Redis != nil {
		relay = notify.NewRedisRelay(s.Redis, cfg.RedisChannel, bus, logger.Named("relay"))
		publisher = relay
	}
	repo := cartrepo.NewKV(s.Store, cfg.CartKey)
	return cartsvc.New(repo, publisher, logger.Named("cart")), bus, relay
}
