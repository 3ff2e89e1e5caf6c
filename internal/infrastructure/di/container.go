package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/koseha/ryg-web-sub000/internal/infrastructure/activity"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/cache"
	"github.com/koseha/ryg-web-sub000/internal/infrastructure/database"
	"github.com/koseha/ryg-web-sub000/pkg/config"
	"github.com/koseha/ryg-web-sub000/pkg/jwt"
)

// Container はアプリケーションの依存関係を保持するDIコンテナです
type Container struct {
	// Infrastructure
	PgClient    *database.PostgresClient
	RedisClient *cache.RedisClient
	TxManager   *database.TxManager
	Clock       clockwork.Clock

	// Services
	JWTService  *jwt.JWTService
	RateLimiter *cache.RateLimiter // RATE_LIMIT_ENABLED=falseの場合はnil

	// Activity feed
	ActivitySink     activity.Sink
	ActivityRecorder *activity.Recorder
	jetStream        *activity.JetStreamSink

	// League
	LeagueRepos *LeagueRepositories
	League      *LeagueUseCases

	config *config.Config
}

// Options はContainer作成時のオプションを定義します
type Options struct {
	PostgresPool *pgxpool.Pool
	RedisClient  *redis.Client
	ActivitySink activity.Sink
	Clock        clockwork.Clock
}

// NewContainer は新しいContainerを作成します
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(ctx, cfg, Options{})
}

// NewContainerWithOptions はオプションを指定してContainerを作成します
func NewContainerWithOptions(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	c := &Container{
		Clock:  opts.Clock,
		config: cfg,
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}

	// PostgreSQL
	var pool database.Querier
	if opts.PostgresPool != nil {
		c.TxManager = database.NewTxManager(opts.PostgresPool)
		pool = opts.PostgresPool
	} else {
		slog.Info("connecting to PostgreSQL...")
		dbConfig := database.DefaultDBConfig()
		dbConfig.MaxConns = cfg.Database.MaxConns
		dbConfig.MinConns = cfg.Database.MinConns
		dbConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

		pgClient, err := database.NewPostgresClient(ctx, cfg.Database.URL, dbConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		c.PgClient = pgClient
		c.TxManager = database.NewTxManager(pgClient.Pool())
		pool = pgClient.Pool()
		slog.Info("connected to PostgreSQL")
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Info("database migrations applied")
	}

	// Redis（レート制限用）
	if cfg.Redis.RateLimitEnabled {
		if opts.RedisClient != nil {
			c.RateLimiter = cache.NewRateLimiter(opts.RedisClient, c.Clock)
		} else {
			slog.Info("connecting to Redis...")
			redisClient, err := cache.NewRedisClient(ctx, cache.DefaultConfig(cfg.Redis.URL))
			if err != nil {
				c.Close()
				return nil, fmt.Errorf("failed to connect to Redis: %w", err)
			}
			c.RedisClient = redisClient
			c.RateLimiter = cache.NewRateLimiter(redisClient.Scripter(), c.Clock)
			slog.Info("connected to Redis")
		}
	} else {
		slog.Warn("rate limiting is disabled")
	}

	// JWT Service
	c.JWTService = jwt.NewJWTServiceWithClock(jwt.Config{
		SecretKey:         cfg.JWT.SecretKey,
		Issuer:            cfg.JWT.Issuer,
		Audience:          cfg.JWT.Audience,
		AccessTokenExpiry: cfg.JWT.AccessTokenExpiry,
	}, c.Clock)

	// Activity feed
	if err := c.initActivity(ctx, opts); err != nil {
		c.Close()
		return nil, err
	}

	// League
	c.LeagueRepos = NewLeagueRepositories(c.TxManager)
	c.League = NewLeagueUseCases(c.LeagueRepos, c.TxManager, c.ActivityRecorder, c.Clock, cfg.League)

	return c, nil
}

// initActivity はアクティビティフィードの配信先を初期化します
// NATS_URLが未設定の場合はログ出力のみになります
func (c *Container) initActivity(ctx context.Context, opts Options) error {
	switch {
	case opts.ActivitySink != nil:
		c.ActivitySink = opts.ActivitySink
	case c.config.NATS.URL != "":
		slog.Info("connecting to NATS JetStream...", "stream", c.config.NATS.ActivityStream)
		jsConfig := activity.DefaultJetStreamConfig()
		jsConfig.URL = c.config.NATS.URL
		jsConfig.StreamName = c.config.NATS.ActivityStream
		jsConfig.SubjectPrefix = c.config.NATS.ActivitySubject

		sink, err := activity.NewJetStreamSink(ctx, jsConfig)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		c.jetStream = sink
		c.ActivitySink = sink
		slog.Info("connected to NATS JetStream")
	default:
		c.ActivitySink = activity.NewLogSink()
	}

	c.ActivityRecorder = activity.NewRecorder(c.ActivitySink, c.config.NATS.BufferSize)
	return nil
}

// Close はリソースをクリーンアップします
// 未配信のアクティビティイベントを配信してから接続を閉じます
func (c *Container) Close() error {
	var errs []error

	if c.ActivityRecorder != nil {
		c.ActivityRecorder.Shutdown()
		c.ActivityRecorder = nil
	}

	if c.jetStream != nil {
		c.jetStream.Close()
		c.jetStream = nil
	}

	if c.PgClient != nil {
		c.PgClient.Close()
		c.PgClient = nil
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
		c.RedisClient = nil
	}

	return errors.Join(errs...)
}
