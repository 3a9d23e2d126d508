package index

import (
	"sort"
	"strings"
	"sync"

	"pak-index/core/archive"
)

// Index is the global file path -> session map.
type Index struct {
	mu     sync.RWMutex
	owners map[string]archive.Session
}

// New creates an empty index.
func New() *Index {
	return &Index{owners: make(map[string]archive.Session)}
}

// Claim assigns path to session if the path is not claimed yet.
// It reports whether the claim was accepted.
func (i *Index) Claim(path string, session archive.Session) bool {
	if path == "" || session == nil {
		return false
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if _, taken := i.owners[path]; taken {
		return false
	}
	i.owners[path] = session
	return true
}

// Lookup returns the session owning path.
func (i *Index) Lookup(path string) (archive.Session, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	s, ok := i.owners[path]
	return s, ok
}

// Exists reports whether any opened package holds path.
func (i *Index) Exists(path string) bool {
	_, ok := i.Lookup(path)
	return ok
}

// Len returns the number of indexed paths.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.owners)
}

// Paths returns the indexed paths starting with prefix, sorted.
func (i *Index) Paths(prefix string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]string, 0)
	for p := range i.owners {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
