// Package di wires the application graph from configuration.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quantumtix/quantumticket/internal/config"
	"github.com/quantumtix/quantumticket/internal/domain"
	"github.com/quantumtix/quantumticket/internal/handler"
	"github.com/quantumtix/quantumticket/internal/indexer"
	"github.com/quantumtix/quantumticket/internal/journal"
	"github.com/quantumtix/quantumticket/internal/ledger"
	"github.com/quantumtix/quantumticket/internal/logger"
	"github.com/quantumtix/quantumticket/internal/payment"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all dependencies for the ticketing service.
type Container struct {
	Config *config.Config
	Log    *logger.Logger

	// Infrastructure
	Pool  *pgxpool.Pool
	Redis *redis.Client
	Kafka *journal.KafkaJournal

	// Core
	Journal journal.Sink
	Memory  *journal.MemoryJournal
	Index   *indexer.Indexer
	Ledger  *ledger.Ledger

	// Handlers
	TicketingHandler *handler.TicketingHandler
	HealthHandler    *handler.HealthHandler

	Router *gin.Engine
}

// NewContainer creates a new dependency injection container. The in-memory
// journal is always present so the ledger can replay its own history; the
// Postgres, Kafka, and Redis backends attach per configuration.
func NewContainer(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{
		Config: cfg,
		Log:    log,
		Memory: journal.NewMemoryJournal(),
	}

	sinks := []journal.Sink{c.Memory}

	if cfg.Ledger.JournalPostgres {
		pool, err := newPostgresPool(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.Pool = pool
		sinks = append(sinks, journal.NewPostgresJournal(pool))
	}

	if cfg.Ledger.JournalKafka {
		kj, err := journal.NewKafkaJournal(journal.KafkaConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			ClientID: cfg.Kafka.ClientID,
		}, log.Logger)
		if err != nil {
			c.Close(ctx)
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		c.Kafka = kj
		sinks = append(sinks, kj)
	}

	if cfg.Ledger.IndexerEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			c.Close(ctx)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Redis = rdb
	}

	if c.Redis != nil {
		// The source is resolved through the container so the indexer can be
		// part of the sink fan-out the ledger is constructed with.
		c.Index = indexer.New(c.Redis, ownerSource{c}, log.Logger)
		sinks = append(sinks, c.Index)
	}

	var payout ledger.Payout
	if cfg.Ledger.Payout == "stripe" {
		payout = payment.NewStripePayout(payment.StripeConfig{
			APIKey:   cfg.Stripe.APIKey,
			Currency: cfg.Stripe.Currency,
		}, log.Logger)
	}

	c.Journal = journal.NewMultiJournal(sinks...)
	c.Ledger = ledger.New(ledger.Config{
		Owner:   domain.Address(cfg.Ledger.Owner),
		Journal: c.Journal,
		Payout:  payout,
		Logger:  log.Logger,
	})

	if c.Index != nil {
		if err := c.Index.Rebuild(ctx, c.Memory); err != nil {
			log.ErrorContext(ctx, "index rebuild failed", zap.Error(err))
		}
	}

	c.TicketingHandler = handler.NewTicketingHandler(c.Ledger, c.Index, log)
	c.HealthHandler = handler.NewHealthHandler(c.Pool, c.Redis, cfg.App.Version)

	c.Router = handler.NewRouter(handler.RouterConfig{
		Ticketing:   c.TicketingHandler,
		Health:      c.HealthHandler,
		Logger:      log,
		JWTSecret:   cfg.JWT.Secret,
		RedisClient: c.Redis,
	})

	return c, nil
}

// Close releases all backend connections. Safe to call on a partially
// constructed container.
func (c *Container) Close(ctx context.Context) {
	if c.Kafka != nil {
		if err := c.Kafka.Close(ctx); err != nil {
			c.Log.ErrorContext(ctx, "close kafka journal", zap.Error(err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.ErrorContext(ctx, "close redis", zap.Error(err))
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// ownerSource adapts the ledger to the indexer's verification interface.
// It resolves lazily because the indexer is built before the ledger.
type ownerSource struct {
	c *Container
}

func (s ownerSource) OwnerOf(tokenID uint64) (domain.Address, error) {
	return s.c.Ledger.OwnerOf(tokenID)
}

func newPostgresPool(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
