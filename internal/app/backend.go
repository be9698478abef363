// Package app assembles the data source and services selected by the
// configuration. It is shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"content-hub/internal/config"
	"content-hub/internal/domain"
	"content-hub/internal/infrastructure/database"
	"content-hub/internal/logger"
	"content-hub/internal/repository"
	"content-hub/internal/service"
	"content-hub/internal/store"
	"content-hub/internal/validator"
)

// Backend is an opened data source with the resources it holds.
type Backend struct {
	Source repository.Source
	// Pool is set for the postgres source.
	Pool *pgxpool.Pool
	// Checks holds a ping function per backing service.
	Checks map[string]func(ctx context.Context) error

	closers []func()
}

// Close releases every resource in reverse order of acquisition.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

// Open connects to the configured data source and applies the seed file.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{Checks: map[string]func(ctx context.Context) error{}}

	var seed []domain.ContentItem
	if cfg.SeedFile != "" {
		items, err := repository.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = items
	}

	switch cfg.DataSource {
	case config.SourceMock:
		opts := []repository.MockOption{repository.WithDelays(cfg.MockFetchDelay, cfg.MockCreateDelay)}
		if cfg.SeedFile != "" {
			// The seed replaces the fixtures, even when it is empty.
			opts = append(opts, repository.WithItems(seed))
			seed = nil
		}
		b.Source = repository.NewMockContentRepository(opts...)

	case config.SourcePostgres:
		poolCfg := PoolConfig(cfg)
		if cfg.DBAutoMigrate {
			version, err := database.Migrate(cfg.DBMigrationsPath, poolCfg.URL())
			if err != nil {
				return nil, err
			}
			logger.Info("Database migrated", slog.Uint64("version", uint64(version)))
		}
		pool, err := database.NewPostgres(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		b.Pool = pool
		b.closers = append(b.closers, pool.Close)
		b.Checks["database"] = pool.Ping
		b.Source = repository.NewPostgresContentRepository(pool)

	case config.SourceSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = db.Close() })
		b.Checks["database"] = db.PingContext
		b.Source = repository.NewSQLiteContentRepository(db)

	case config.SourceRedis:
		rdb, err := database.NewRedis(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = rdb.Close() })
		b.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		b.Source = repository.NewRedisContentRepository(rdb, cfg.RedisNamespace)

	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}

	if len(seed) > 0 {
		n, err := repository.Seed(ctx, b.Source, seed)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("seed %s: %w", b.Source.Name(), err)
		}
		logger.WithSource(b.Source.Name()).Info("Seed applied",
			slog.String("file", cfg.SeedFile),
			slog.Int("inserted", n),
			slog.Int("skipped", len(seed)-n))
	}

	return b, nil
}

// Notifier returns the source's change feed, or nil when it has none.
func (b *Backend) Notifier() repository.Notifier {
	if n, ok := b.Source.(repository.Notifier); ok {
		return n
	}
	return nil
}

// PoolConfig maps the database settings onto database.PoolConfig.
func PoolConfig(cfg *config.Config) database.PoolConfig {
	return database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}
}

// Services are the application services over one backend.
type Services struct {
	Content     *service.ContentService
	Preferences *service.PreferencesService
	Transfer    *service.TransferService
}

// NewServices creates the application services. Content and preferences
// each get their own store container; imports refresh the content store.
func NewServices(b *Backend, cfg *config.Config) Services {
	v := validator.NewValidator()
	prefs := domain.DefaultPreferences()
	if cfg.DefaultUsername != "" {
		prefs.Username = cfg.DefaultUsername
	}
	content := service.NewContentService(b.Source, store.NewContainer(store.NewState()), v)
	return Services{
		Content:     content,
		Preferences: service.NewPreferencesService(store.NewContainer(prefs), v),
		Transfer:    service.NewTransferService(b.Source, content, v),
	}
}

// LoadTimeout bounds the initial load of the content collection.
const LoadTimeout = 30 * time.Second
