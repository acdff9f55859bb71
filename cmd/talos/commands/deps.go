package commands

import (
	"context"
	"fmt"

	"github.com/lzhao/talos/internal/marketdata"
	"github.com/lzhao/talos/pkg/config"
	"github.com/lzhao/talos/pkg/database"
	"github.com/lzhao/talos/pkg/httputil"
	"github.com/lzhao/talos/pkg/logger"
	"github.com/lzhao/talos/pkg/redis"
)

// deps bundles the shared dependencies commands build on. The database
// is optional: without DATABASE_URL every lookup goes straight to the
// remote quote service.
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB
	service *marketdata.Service
}

// initDeps loads config and constructs the market data service.
func initDeps(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	var db *database.DB
	var repo *marketdata.Repository
	if cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}

		repo = marketdata.NewRepository(db.Pool, log)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
	}

	httpClient := httputil.New(log, cfg.DataSource.Timeout)
	client := marketdata.NewClient(cfg.DataSource, httpClient, log)
	cache := redis.NewCache(redisClient, "talos")

	return &deps{
		cfg:     cfg,
		log:     log,
		db:      db,
		service: marketdata.NewService(client, repo, cache, log),
	}, nil
}

// Close releases held connections.
func (d *deps) Close() {
	if d.db != nil {
		d.db.Close()
	}
}
