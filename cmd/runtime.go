package cmd

import (
	"context"
	"fmt"

	"pak-index/core/bundle"
	"pak-index/core/config"
	"pak-index/core/database"
	"pak-index/core/engine"
	"pak-index/core/keys"
	"pak-index/core/logger"
	"pak-index/core/metrics"
	"pak-index/core/source"
	"pak-index/core/storage"

	"go.uber.org/zap"
)

// runtime is everything a command needs after the index has been extracted.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	engine  *engine.Engine
	catalog *database.Catalog
}

// bootstrap loads the configuration, mirrors the containers when storage is enabled,
// resolves the key chain, connects the optional catalog and extracts the index.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	rt := &runtime{cfg: cfg, log: logg, metrics: metrics.New()}

	if cfg.Storage.Enabled {
		rt.mirror(ctx)
	}

	ks, err := keys.FromConfig(ctx, cfg.Keys, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to load keys: %w", err)
	}

	rt.engine, err = engine.New(cfg.Index, bundle.NewDecoder(), ks, nil, logg, rt.metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	rt.catalog = rt.connectCatalog(ctx)

	opened, err := rt.engine.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to extract packages: %w", err)
	}
	logg.Info("Packages extracted",
		zap.Int("opened", opened),
		zap.Int("files", rt.engine.Index().Len()),
	)
	return rt, nil
}

// mirror pulls missing containers from object storage. Failures leave the local directory as is.
func (rt *runtime) mirror(ctx context.Context) {
	client, err := storage.NewClient(rt.cfg.Storage)
	if err != nil {
		rt.log.Warn("Storage client unavailable, skipping mirror", zap.Error(err))
		return
	}
	m := source.NewMirror(client, rt.cfg.Storage, rt.cfg.Index.Path, rt.cfg.Index.Pattern, rt.log)
	n, err := m.Sync(ctx)
	if err != nil {
		rt.log.Warn("Container mirror failed", zap.Error(err))
		return
	}
	rt.log.Info("Container mirror synced", zap.Int("downloaded", n))
}

// connectCatalog returns a disabled catalog when the database is off or unreachable.
func (rt *runtime) connectCatalog(ctx context.Context) *database.Catalog {
	if !rt.cfg.Database.Enabled {
		return database.NewCatalog(nil)
	}
	db, err := database.Connect(rt.cfg.Database)
	if err != nil {
		rt.log.Warn("Optional database connection failed", zap.Error(err))
		return database.NewCatalog(nil)
	}
	catalog := database.NewCatalog(db)
	if err := catalog.Migrate(ctx); err != nil {
		rt.log.Warn("Catalog migration failed", zap.Error(err))
		return database.NewCatalog(nil)
	}
	rt.log.Info("Connected to catalog database", zap.String("driver", rt.cfg.Database.Driver))
	return catalog
}
