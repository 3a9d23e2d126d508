package materialize

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"pak-index/core/archive"
	"pak-index/core/index"
	"pak-index/core/metrics"

	"go.uber.org/zap"
)

// ErrUnknownPath is returned when no opened package holds the requested path.
var ErrUnknownPath = errors.New("path is not in any opened package")

var errEmptyRecord = errors.New("decoder returned no record")

// DecodeError reports a file whose owning session failed to decode it.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Materializer decodes indexed paths into records.
type Materializer struct {
	index   *index.Index
	logger  *zap.Logger
	metrics *metrics.Metrics

	mu   sync.RWMutex
	memo map[string]*archive.Record
}

// New creates a materializer reading through idx.
func New(idx *index.Index, logger *zap.Logger, m *metrics.Metrics) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{
		index:   idx,
		logger:  logger,
		metrics: m,
		memo:    make(map[string]*archive.Record),
	}
}

// Materialize decodes path through its owning session.
func (m *Materializer) Materialize(ctx context.Context, p string) (*archive.Record, error) {
	m.mu.RLock()
	cached, ok := m.memo[p]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	session, ok := m.index.Lookup(p)
	if !ok {
		return nil, ErrUnknownPath
	}

	record, err := session.ReadFile(ctx, p)
	if err == nil && record == nil {
		err = errEmptyRecord
	}
	if err != nil {
		m.metrics.DecodeFailed()
		return nil, &DecodeError{Path: p, Err: err}
	}

	record.Path = p
	record.Name = ShortName(p)
	m.metrics.RecordDecoded()

	m.mu.Lock()
	// Another caller may have decoded the same path meanwhile; keep the first.
	if existing, ok := m.memo[p]; ok {
		record = existing
	} else {
		m.memo[p] = record
	}
	m.mu.Unlock()

	return record, nil
}

// Get materializes path and returns nil on any failure.
// Decode failures are logged at debug level; unknown paths are silent.
func (m *Materializer) Get(ctx context.Context, p string) *archive.Record {
	record, err := m.Materialize(ctx, p)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			m.logger.Debug("Record unavailable", zap.String("path", p), zap.Error(err))
		}
		return nil
	}
	return record
}

// ShortName returns the last path segment with its extension stripped.
func ShortName(p string) string {
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}
