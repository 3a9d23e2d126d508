package mocks

import (
	"context"

	"pak-index/core/archive"

	"github.com/stretchr/testify/mock"
)

// Decoder is a mock implementation of archive.Decoder
type Decoder struct {
	mock.Mock
}

func (m *Decoder) Open(ctx context.Context, containerPath, key string) (archive.Session, error) {
	args := m.Called(ctx, containerPath, key)
	if s, ok := args.Get(0).(archive.Session); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

// Session is a mock implementation of archive.Session
type Session struct {
	mock.Mock
}

func (m *Session) ListFiles() []string {
	args := m.Called()
	if files, ok := args.Get(0).([]string); ok {
		return files
	}
	return nil
}

func (m *Session) ReadFile(ctx context.Context, path string) (*archive.Record, error) {
	args := m.Called(ctx, path)
	if r, ok := args.Get(0).(*archive.Record); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
