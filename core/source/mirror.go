package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"pak-index/core/storage"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Mirror copies container objects between a bucket and the local container directory.
type Mirror struct {
	client  storage.Client
	cfg     storage.Config
	dir     string
	pattern string
	logger  *zap.Logger
}

// NewMirror creates a mirror of objects matching pattern (matched against the object's base name).
func NewMirror(client storage.Client, cfg storage.Config, dir, pattern string, logger *zap.Logger) *Mirror {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mirror{client: client, cfg: cfg, dir: dir, pattern: pattern, logger: logger}
}

// Sync downloads every matching object that is missing locally or differs in size.
// It returns the number of files downloaded.
func (m *Mirror) Sync(ctx context.Context) (int, error) {
	exists, err := m.client.BucketExists(ctx, m.cfg.Bucket)
	if err != nil {
		return 0, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("bucket %s does not exist", m.cfg.Bucket)
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create container directory: %w", err)
	}

	// Stops the lister when the loop returns early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := m.cfg.ObjectKey("")
	downloaded := 0
	for obj := range m.client.ListObjects(ctx, m.cfg.Bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return downloaded, fmt.Errorf("failed to list containers: %w", obj.Err)
		}
		name := path.Base(obj.Key)
		if ok, _ := doublestar.Match(m.pattern, name); !ok {
			continue
		}
		local := filepath.Join(m.dir, name)
		if info, err := os.Stat(local); err == nil && info.Size() == obj.Size {
			continue
		}
		if err := m.download(ctx, obj.Key, local); err != nil {
			return downloaded, err
		}
		downloaded++
		m.logger.Info("Container mirrored", zap.String("object", obj.Key), zap.Int64("size", obj.Size))
	}
	return downloaded, nil
}

func (m *Mirror) download(ctx context.Context, key, local string) error {
	reader, err := m.client.GetObject(ctx, m.cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer reader.Close()

	tmp, err := os.CreateTemp(m.dir, ".mirror-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to download %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", local, err)
	}
	if err := os.Rename(tmp.Name(), local); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", local, err)
	}
	return nil
}

// Publish uploads a local file to the bucket under the configured prefix, creating the bucket if needed.
func (m *Mirror) Publish(ctx context.Context, file string) (string, error) {
	exists, err := m.client.BucketExists(ctx, m.cfg.Bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.cfg.Bucket, minio.MakeBucketOptions{Region: m.cfg.Region}); err != nil {
			return "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", file, err)
	}

	key := m.cfg.ObjectKey(filepath.Base(file))
	if _, err := m.client.PutObject(ctx, m.cfg.Bucket, key, f, info.Size(), minio.PutObjectOptions{ContentType: "application/octet-stream"}); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	m.logger.Info("Container published", zap.String("object", key), zap.Int64("size", info.Size()))
	return key, nil
}
