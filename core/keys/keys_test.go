package keys

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainJSON = `{
  "mainKey": "0xMAIN",
  "dynamicKeys": {
    "FortniteGame/Content/Paks/pakchunk1000-WindowsClient.pak": "0xDYN1000",
    "FortniteGame/Content/Paks/pakchunk1001-WindowsClient.pak": ""
  }
}`

func TestContainerID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FortniteGame/Content/Paks/pakchunk1000-WindowsClient.pak", "pakchunk1000-WindowsClient"},
		{"pakchunk0-WindowsClient.pak", "pakchunk0-WindowsClient"},
		{`C:\Games\Paks\pakchunk9.utoc`, "pakchunk9"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainerID(tt.in))
		})
	}
}

func TestStatic_Lookup(t *testing.T) {
	s := NewStatic(Chain{
		MainKey: "0xMAIN",
		DynamicKeys: map[string]string{
			"Paks/pakchunk1000-WindowsClient.pak": "0xDYN",
			"Paks/pakchunk1001-WindowsClient.pak": "",
		},
	})

	key, ok := s.Lookup("pakchunk1000-WindowsClient")
	assert.True(t, ok)
	assert.Equal(t, "0xDYN", key)

	_, ok = s.Lookup("pakchunk1001-WindowsClient")
	assert.False(t, ok, "empty dynamic keys fall back to the main key")

	_, ok = s.Lookup("pakchunk0-WindowsClient")
	assert.False(t, ok)
	assert.Equal(t, "0xMAIN", s.Default())
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "keys.json")
	require.NoError(t, os.WriteFile(file, []byte(chainJSON), 0o644))

	s, err := LoadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "0xMAIN", s.Default())
	assert.Equal(t, 2, s.Len())

	require.NoError(t, os.WriteFile(file, []byte("{not json"), 0o644))
	_, err = LoadFile(file)
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("0xABCDEF")
	assert.Len(t, a, 16)
	assert.Equal(t, a, Fingerprint("abcdef"))
	assert.NotEqual(t, a, Fingerprint("0xABCDEE"))
	assert.Empty(t, Fingerprint(""))
}

func TestRemote_RefreshAndCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chainJSON))
	}))
	defer srv.Close()

	r := NewRemote(Config{URL: srv.URL, CacheTTLSeconds: 60}, nil)

	// Before the first refresh only the configured main key is known.
	assert.Equal(t, "", r.Default())

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, r.Refresh(context.Background()))
		}()
	}
	wg.Wait()
	require.NoError(t, r.Refresh(context.Background()))

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "0xMAIN", r.Default())
	key, ok := r.Lookup("pakchunk1000-WindowsClient")
	assert.True(t, ok)
	assert.Equal(t, "0xDYN1000", key)
}

func TestRemote_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewRemote(Config{URL: srv.URL, MainKey: "0xFALLBACK"}, nil)
	err := r.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "0xFALLBACK", r.Default())
}

func TestRemote_NotConfigured(t *testing.T) {
	r := NewRemote(Config{}, nil)
	assert.Error(t, r.Refresh(context.Background()))
}

func TestFromConfig(t *testing.T) {
	t.Run("MainKeyOnly", func(t *testing.T) {
		src, err := FromConfig(context.Background(), Config{MainKey: "0xMAIN"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "0xMAIN", src.Default())
	})

	t.Run("File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "keys.json")
		require.NoError(t, os.WriteFile(file, []byte(`{"dynamicKeys": {"a.pak": "0x1"}}`), 0o644))

		src, err := FromConfig(context.Background(), Config{File: file, MainKey: "0xCFG"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "0xCFG", src.Default())
		key, ok := src.Lookup("a")
		assert.True(t, ok)
		assert.Equal(t, "0x1", key)
	})

	t.Run("EndpointDownWithMainKey", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		src, err := FromConfig(context.Background(), Config{URL: srv.URL, MainKey: "0xabc"}, nil)
		require.NoError(t, err)
		require.NotNil(t, src)
		assert.Equal(t, "0xabc", src.Default())
		_, ok := src.Lookup("pakchunk1000-WindowsClient")
		assert.False(t, ok)
	})

	t.Run("EndpointDownWithoutMainKey", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		src, err := FromConfig(context.Background(), Config{URL: srv.URL}, nil)
		assert.Error(t, err)
		assert.Nil(t, src)
	})
}
