package source_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pak-index/core/source"
	"pak-index/core/storage"
	"pak-index/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "pakchunk1-WindowsClient.pak", "x")
	touch(t, dir, "pakchunk0-WindowsClient.pak", "x")
	touch(t, dir, "pakchunk0-WindowsClient.sig", "x")
	touch(t, dir, "readme.txt", "x")
	touch(t, dir, "nested/pakchunk9-WindowsClient.pak", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.pak"), 0o755))

	t.Run("FlatPattern", func(t *testing.T) {
		ids, err := source.Discover(dir, "*.pak")
		require.NoError(t, err)
		assert.Equal(t, []string{"pakchunk0-WindowsClient", "pakchunk1-WindowsClient"}, ids)
	})

	t.Run("RecursivePattern", func(t *testing.T) {
		ids, err := source.Discover(dir, "**/*.pak")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"pakchunk0-WindowsClient", "pakchunk1-WindowsClient", "pakchunk9-WindowsClient"}, ids)
	})

	t.Run("SharedID", func(t *testing.T) {
		ids, err := source.Discover(dir, "pakchunk0*")
		require.NoError(t, err)
		assert.Equal(t, []string{"pakchunk0-WindowsClient"}, ids)
	})

	t.Run("InvalidPattern", func(t *testing.T) {
		_, err := source.Discover(dir, "[")
		assert.Error(t, err)
	})
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, i := range infos {
		ch <- i
	}
	close(ch)
	return ch
}

func TestMirror_Sync(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "pak1.pak", "same")

	cfg := storage.Config{Bucket: "paks", Prefix: "live"}
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "paks").Return(true, nil)
	client.On("ListObjects", mock.Anything, "paks", minio.ListObjectsOptions{Prefix: "live/", Recursive: true}).
		Return(objects(
			minio.ObjectInfo{Key: "live/pak0.pak", Size: 7},
			minio.ObjectInfo{Key: "live/pak1.pak", Size: 4},
			minio.ObjectInfo{Key: "live/notes.txt", Size: 3},
		))
	client.On("GetObject", mock.Anything, "paks", "live/pak0.pak", mock.Anything).
		Return(io.NopCloser(strings.NewReader("content")), nil)

	m := source.NewMirror(client, cfg, dir, "*.pak", nil)
	n, err := m.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(filepath.Join(dir, "pak0.pak"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	client.AssertExpectations(t)
	client.AssertNotCalled(t, "GetObject", mock.Anything, "paks", "live/pak1.pak", mock.Anything)
}

func TestMirror_SyncMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "paks").Return(false, nil)

	_, err := source.NewMirror(client, storage.Config{Bucket: "paks"}, t.TempDir(), "*.pak", nil).Sync(context.Background())
	assert.Error(t, err)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestMirror_SyncDownloadFailure(t *testing.T) {
	dir := t.TempDir()
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "paks").Return(true, nil)
	client.On("ListObjects", mock.Anything, "paks", mock.Anything).Return(objects(minio.ObjectInfo{Key: "pak0.pak", Size: 1}))
	client.On("GetObject", mock.Anything, "paks", "pak0.pak", mock.Anything).Return(nil, errors.New("denied"))

	n, err := source.NewMirror(client, storage.Config{Bucket: "paks"}, dir, "*.pak", nil).Sync(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, n)
	_, statErr := os.Stat(filepath.Join(dir, "pak0.pak"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestMirror_SyncEarlyReturnStopsLister(t *testing.T) {
	dir := t.TempDir()
	ch := make(chan minio.ObjectInfo)
	done := make(chan struct{})

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "paks").Return(true, nil)
	client.On("ListObjects", mock.Anything, "paks", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			// Behaves like the minio lister: unbuffered sends until the context ends.
			go func() {
				defer close(done)
				defer close(ch)
				for i := 0; ; i++ {
					select {
					case ch <- minio.ObjectInfo{Key: fmt.Sprintf("pak%d.pak", i), Size: 1}:
					case <-ctx.Done():
						return
					}
				}
			}()
		}).
		Return((<-chan minio.ObjectInfo)(ch))
	client.On("GetObject", mock.Anything, "paks", "pak0.pak", mock.Anything).Return(nil, errors.New("denied"))

	_, err := source.NewMirror(client, storage.Config{Bucket: "paks"}, dir, "*.pak", nil).Sync(context.Background())
	require.Error(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lister goroutine still running after Sync returned")
	}
}

func TestMirror_Publish(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "bundle0.pak", "sealed")

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "paks").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "paks", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "paks", "live/bundle0.pak", mock.Anything, int64(6), mock.Anything).
		Return(minio.UploadInfo{Key: "live/bundle0.pak"}, nil)

	m := source.NewMirror(client, storage.Config{Bucket: "paks", Prefix: "live"}, dir, "*.pak", nil)
	key, err := m.Publish(context.Background(), filepath.Join(dir, "bundle0.pak"))
	require.NoError(t, err)
	assert.Equal(t, "live/bundle0.pak", key)
	client.AssertExpectations(t)
}
