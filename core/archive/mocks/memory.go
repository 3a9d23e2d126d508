package mocks

import (
	"context"
	"errors"

	"pak-index/core/archive"
)

// MemorySession is an in-memory archive.Session for tests that need real data
// rather than call expectations.
type MemorySession struct {
	// Name identifies the session in assertions.
	Name string
	// Files is returned by ListFiles.
	Files []string
	// Records are returned by ReadFile, copied on every read.
	Records map[string]*archive.Record
	// Failures makes ReadFile fail for the listed paths.
	Failures map[string]error
	// Reads counts ReadFile calls per path.
	Reads map[string]int
}

// NewMemorySession creates a session listing files in the given order.
// Each file gets a single-export record unless overridden in Records.
func NewMemorySession(name string, files ...string) *MemorySession {
	s := &MemorySession{
		Name:     name,
		Files:    files,
		Records:  make(map[string]*archive.Record),
		Failures: make(map[string]error),
		Reads:    make(map[string]int),
	}
	for i, f := range files {
		s.Records[f] = &archive.Record{
			Exports: []archive.Export{{Index: i + 1, Type: "Object", Fields: map[string]any{"Source": name}}},
		}
	}
	return s
}

func (s *MemorySession) ListFiles() []string {
	return s.Files
}

func (s *MemorySession) ReadFile(ctx context.Context, path string) (*archive.Record, error) {
	s.Reads[path]++
	if err, ok := s.Failures[path]; ok {
		return nil, err
	}
	r, ok := s.Records[path]
	if !ok {
		return nil, errors.New("file not found in session")
	}
	cp := *r
	cp.Exports = append([]archive.Export(nil), r.Exports...)
	cp.Imports = append([]archive.Import(nil), r.Imports...)
	return &cp, nil
}
