package keys

import (
	"context"

	"go.uber.org/zap"
)

// FromConfig builds the Source described by cfg: a local chain file when set,
// otherwise the remote endpoint when set, otherwise only the configured main key.
// An unreachable endpoint is only an error when no main key is configured.
func FromConfig(ctx context.Context, cfg Config, logger *zap.Logger) (Source, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch {
	case cfg.File != "":
		s, err := LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		if s.main == "" {
			s.main = cfg.MainKey
		}
		return s, nil
	case cfg.URL != "":
		r := NewRemote(cfg, logger)
		if err := r.Refresh(ctx); err != nil {
			if cfg.MainKey == "" {
				return nil, err
			}
			logger.Warn("Key chain unavailable, using the configured main key", zap.Error(err))
		}
		return r, nil
	default:
		return NewStatic(Chain{MainKey: cfg.MainKey}), nil
	}
}
