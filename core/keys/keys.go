package keys

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/zeebo/blake3"
)

// Source looks up package keys.
type Source interface {
	// Lookup returns the dedicated key of a container, if it has one.
	Lookup(containerID string) (string, bool)
	// Default returns the key used when a container has no dedicated key.
	Default() string
}

// Chain is the published key chain document.
type Chain struct {
	MainKey     string            `json:"mainKey"`
	DynamicKeys map[string]string `json:"dynamicKeys"`
}

// Static is an immutable Source built from a Chain.
type Static struct {
	main    string
	dynamic map[string]string
}

// NewStatic normalizes the dynamic keys of chain to container ids.
func NewStatic(chain Chain) *Static {
	s := &Static{
		main:    chain.MainKey,
		dynamic: make(map[string]string, len(chain.DynamicKeys)),
	}
	for name, key := range chain.DynamicKeys {
		s.dynamic[ContainerID(name)] = key
	}
	return s
}

// LoadFile reads a JSON key chain from disk.
func LoadFile(file string) (*Static, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read key chain: %w", err)
	}
	var chain Chain
	if err := json.Unmarshal(data, &chain); err != nil {
		return nil, fmt.Errorf("failed to parse key chain %s: %w", file, err)
	}
	return NewStatic(chain), nil
}

// Lookup returns the dynamic key of a container. Empty keys count as missing.
func (s *Static) Lookup(containerID string) (string, bool) {
	key, ok := s.dynamic[containerID]
	return key, ok && key != ""
}

// Default returns the main key.
func (s *Static) Default() string {
	return s.main
}

// Len returns the number of dynamic keys.
func (s *Static) Len() int {
	return len(s.dynamic)
}

// ContainerID derives the container id from a package file name or path:
// the last path segment up to its first dot.
func ContainerID(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

// Fingerprint returns a short, non-reversible identifier of a key for logs and catalogs.
func Fingerprint(key string) string {
	if key == "" {
		return ""
	}
	sum := blake3.Sum256([]byte(strings.ToLower(strings.TrimPrefix(key, "0x"))))
	return hex.EncodeToString(sum[:8])
}
