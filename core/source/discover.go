package source

import (
	"fmt"
	"io/fs"
	"os"
	"sort"

	"pak-index/core/keys"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover returns the ids of the containers in dir matching pattern, sorted by path.
// Files sharing an id (pakchunk0.pak and pakchunk0.sig with a broad pattern) are listed once.
func Discover(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid container pattern %q", pattern)
	}
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to list containers in %s: %w", dir, err)
	}
	sort.Strings(matches)

	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		id := keys.ContainerID(m)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
