package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"pak-index/core/archive"
	"pak-index/core/keys"
	"pak-index/core/metrics"

	"go.uber.org/zap"
)

// Absorber receives the file list of every newly opened package.
type Absorber interface {
	Absorb(ctx context.Context, session archive.Session, files []string)
}

// Entry describes one opened package.
type Entry struct {
	ContainerID string
	Key         string
	Session     archive.Session
	FileCount   int
	OpenedAt    time.Time
}

// OpenError reports a container that could not be opened.
type OpenError struct {
	ContainerID string
	Key         string
	Err         error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("package %s failed using key %s: %v", e.ContainerID, keys.Fingerprint(e.Key), e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Registry tracks opened packages.
type Registry struct {
	dir       string
	extension string
	decoder   archive.Decoder
	keys      keys.Source
	absorber  Absorber
	logger    *zap.Logger
	metrics   *metrics.Metrics

	mu      sync.Mutex
	entries map[string]*Entry
	order   []string
}

// New creates a registry for containers stored as <dir>/<id><extension>.
func New(dir, extension string, decoder archive.Decoder, source keys.Source, absorber Absorber, logger *zap.Logger, m *metrics.Metrics) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		dir:       dir,
		extension: extension,
		decoder:   decoder,
		keys:      source,
		absorber:  absorber,
		logger:    logger,
		metrics:   m,
		entries:   make(map[string]*Entry),
	}
}

// ContainerPath returns the on-disk path of a container.
func (r *Registry) ContainerPath(containerID string) string {
	return filepath.Join(r.dir, containerID+r.extension)
}

// SelectKey returns key when set, else the container's dedicated key, else the default key.
func (r *Registry) SelectKey(containerID, key string) string {
	if key != "" {
		return key
	}
	if r.keys == nil {
		return ""
	}
	if k, ok := r.keys.Lookup(containerID); ok {
		return k
	}
	return r.keys.Default()
}

// Open opens a container and indexes its files. Re-opening an open container is a no-op.
func (r *Registry) Open(ctx context.Context, containerID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, open := r.entries[containerID]; open {
		return nil
	}

	key = r.SelectKey(containerID, key)
	session, err := r.decoder.Open(ctx, r.ContainerPath(containerID), key)
	if err == nil && session == nil {
		err = fmt.Errorf("decoder returned no session")
	}
	if err != nil {
		openErr := &OpenError{ContainerID: containerID, Key: key, Err: err}
		r.metrics.PackageFailed()
		r.logger.Warn("Package failed using key",
			zap.String("package", containerID),
			zap.String("key", keys.Fingerprint(key)),
			zap.Error(err),
		)
		return openErr
	}

	files := session.ListFiles()
	if r.absorber != nil {
		r.absorber.Absorb(ctx, session, files)
	}

	r.entries[containerID] = &Entry{
		ContainerID: containerID,
		Key:         key,
		Session:     session,
		FileCount:   len(files),
		OpenedAt:    time.Now(),
	}
	r.order = append(r.order, containerID)
	r.metrics.PackageOpened()

	r.logger.Info("Package opened",
		zap.String("package", containerID),
		zap.String("key", keys.Fingerprint(key)),
		zap.Int("files", len(files)),
	)
	return nil
}

// OpenAll opens containers in reverse order of ids and returns how many were newly opened.
// Failures are logged by Open and do not stop the batch.
func (r *Registry) OpenAll(ctx context.Context, ids []string) int {
	opened := 0
	for i := len(ids) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			break
		}
		if r.IsOpen(ids[i]) {
			continue
		}
		if err := r.Open(ctx, ids[i], ""); err == nil {
			opened++
		}
	}
	return opened
}

// IsOpen reports whether a container has been opened.
func (r *Registry) IsOpen(containerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[containerID]
	return ok
}

// Entry returns a copy of the entry of an opened container.
func (r *Registry) Entry(containerID string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[containerID]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Entries returns copies of all entries in open order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.entries[id])
	}
	return out
}

// IDs returns the opened container ids sorted by name.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]string(nil), r.order...)
	sort.Strings(out)
	return out
}

// Len returns the number of opened containers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
