package packages

import (
	"context"

	"pak-index/core/database"
	"pak-index/core/engine"
	"pak-index/core/keys"
	"pak-index/core/registry"
	"pak-index/feature/packages/models"

	"go.uber.org/zap"
)

// Service exposes the state of the package index.
type Service struct {
	engine  *engine.Engine
	catalog *database.Catalog
	logger  *zap.Logger
}

// NewService creates a new packages service. catalog may be nil.
func NewService(e *engine.Engine, catalog *database.Catalog, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{engine: e, catalog: catalog, logger: logger}
}

func view(e registry.Entry) models.PackageView {
	return models.PackageView{
		ID:             e.ContainerID,
		KeyFingerprint: keys.Fingerprint(e.Key),
		Files:          e.FileCount,
		OpenedAt:       e.OpenedAt,
	}
}

// Status lists the opened packages in open order.
func (s *Service) Status() models.Status {
	entries := s.engine.Registry().Entries()
	out := models.Status{
		Extracted: s.engine.Extracted(),
		Files:     s.engine.Index().Len(),
		Packages:  make([]models.PackageView, 0, len(entries)),
	}
	for _, e := range entries {
		out.Packages = append(out.Packages, view(e))
	}
	return out
}

// Categories summarizes every configured category.
func (s *Service) Categories() models.Categories {
	return models.Categories{Categories: s.engine.Classifier().Summaries()}
}

// Files lists indexed paths under prefix, at most limit of them when limit > 0.
func (s *Service) Files(prefix string, limit int) models.FileList {
	paths := s.engine.Index().Paths(prefix)
	out := models.FileList{Prefix: prefix, Total: len(paths), Files: paths}
	if limit > 0 && len(paths) > limit {
		out.Files = paths[:limit]
	}
	if out.Files == nil {
		out.Files = []string{}
	}
	return out
}

// Open opens a package and records it in the catalog.
func (s *Service) Open(ctx context.Context, id, key string) (models.PackageView, error) {
	if err := s.engine.Open(ctx, id, key); err != nil {
		return models.PackageView{}, err
	}
	entry, _ := s.engine.Registry().Entry(id)
	s.Record(ctx)
	return view(entry), nil
}

// Record saves every opened package to the catalog. Catalog failures are logged only.
func (s *Service) Record(ctx context.Context) {
	if !s.catalog.Enabled() {
		return
	}
	entries := s.engine.Registry().Entries()
	rows := make([]database.Container, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, database.Container{
			ContainerID:    e.ContainerID,
			KeyFingerprint: keys.Fingerprint(e.Key),
			FileCount:      e.FileCount,
			OpenedAt:       e.OpenedAt,
		})
	}
	if err := s.catalog.Save(ctx, rows...); err != nil {
		s.logger.Warn("Failed to record packages in catalog", zap.Error(err))
	}
}

// Catalog returns the persisted catalog rows.
func (s *Service) Catalog(ctx context.Context) ([]database.Container, error) {
	return s.catalog.List(ctx)
}
