package engine

import (
	"context"
	"fmt"
	"sync/atomic"

	"pak-index/core/archive"
	"pak-index/core/category"
	"pak-index/core/index"
	"pak-index/core/keys"
	"pak-index/core/materialize"
	"pak-index/core/metrics"
	"pak-index/core/registry"
	"pak-index/core/resolve"
	"pak-index/core/source"
	"pak-index/core/texture"

	"go.uber.org/zap"
)

// Engine is the multi-package index.
type Engine struct {
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Metrics

	index        *index.Index
	materializer *materialize.Materializer
	classifier   *category.Classifier
	registry     *registry.Registry
	resolver     *resolve.Resolver
	textures     *texture.Resolver

	extracted atomic.Bool
}

// New creates an engine. When rules is nil the table comes from cfg.RulesFile,
// or the built-in defaults when no file is configured.
func New(cfg Config, decoder archive.Decoder, keySource keys.Source, rules []category.Rule, logger *zap.Logger, m *metrics.Metrics) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rules == nil {
		var err error
		rules, err = loadRules(cfg)
		if err != nil {
			return nil, err
		}
	}

	e := &Engine{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		index:   index.New(),
	}
	e.materializer = materialize.New(e.index, logger, m)

	classifier, err := category.New(rules, cfg.Threshold, e.materializer, logger, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}
	e.classifier = classifier

	e.resolver = resolve.New(resolve.Config{
		VirtualRoot:    cfg.VirtualRoot,
		ContentRoot:    cfg.ContentRoot,
		AssetExtension: cfg.AssetExtension,
	}, e.materializer, logger)
	e.textures = texture.New(e.index, e.resolver, logger, m)
	e.registry = registry.New(cfg.Path, cfg.Extension, decoder, keySource, e, logger, m)
	return e, nil
}

func loadRules(cfg Config) ([]category.Rule, error) {
	if cfg.RulesFile == "" {
		return category.DefaultRules(cfg.ContentRoot), nil
	}
	rules, err := category.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load category rules: %w", err)
	}
	return rules, nil
}

// Absorb claims the files of a newly opened package and classifies the ones it now owns.
func (e *Engine) Absorb(ctx context.Context, session archive.Session, files []string) {
	claimed := make([]string, 0, len(files))
	shadowed := 0
	for _, f := range files {
		if f == "" {
			continue
		}
		if e.index.Claim(f, session) {
			claimed = append(claimed, f)
		} else {
			shadowed++
		}
	}
	e.metrics.FilesClaimed(len(claimed), shadowed)
	if shadowed > 0 {
		e.logger.Debug("Paths already owned by an earlier package", zap.Int("shadowed", shadowed))
	}
	e.classifier.Classify(ctx, claimed)
}

// Open opens one container. An empty key selects the container's key from the key source.
func (e *Engine) Open(ctx context.Context, containerID, key string) error {
	return e.registry.Open(ctx, containerID, key)
}

// Extract opens every container found in the configured directory and returns how many were newly opened.
func (e *Engine) Extract(ctx context.Context) (int, error) {
	ids, err := source.Discover(e.cfg.Path, e.cfg.Pattern)
	if err != nil {
		return 0, err
	}
	e.logger.Info("Extraction started", zap.Int("containers", len(ids)), zap.String("path", e.cfg.Path))

	skipped := 0
	for _, id := range ids {
		if e.registry.IsOpen(id) {
			skipped++
		}
	}
	opened := e.registry.OpenAll(ctx, ids)
	e.extracted.Store(true)

	e.logger.Info("Extraction finished",
		zap.Int("opened", opened),
		zap.Int("skipped", skipped),
		zap.Int("failed", max(0, len(ids)-opened-skipped)),
		zap.Int("files", e.index.Len()),
	)
	return opened, nil
}

// Extracted reports whether an extraction run has completed.
func (e *Engine) Extracted() bool {
	return e.extracted.Load()
}

// Files lists every non-empty file of every opened package in open order.
// A path offered by several packages appears once per package.
func (e *Engine) Files() []string {
	var files []string
	for _, entry := range e.registry.Entries() {
		for _, f := range entry.Session.ListFiles() {
			if f != "" {
				files = append(files, f)
			}
		}
	}
	return files
}

// Bucket returns a category bucket, nil when the category is not materialized yet.
func (e *Engine) Bucket(name string) (*category.Bucket, error) {
	return e.classifier.Bucket(name)
}

// Record materializes a file path, returning nil when it cannot be decoded.
func (e *Engine) Record(ctx context.Context, p string) *archive.Record {
	return e.materializer.Get(ctx, p)
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Index returns the file index.
func (e *Engine) Index() *index.Index { return e.index }

// Materializer returns the record materializer.
func (e *Engine) Materializer() *materialize.Materializer { return e.materializer }

// Classifier returns the category classifier.
func (e *Engine) Classifier() *category.Classifier { return e.classifier }

// Registry returns the package registry.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Resolver returns the reference resolver.
func (e *Engine) Resolver() *resolve.Resolver { return e.resolver }

// Textures returns the texture resolver.
func (e *Engine) Textures() *texture.Resolver { return e.textures }
