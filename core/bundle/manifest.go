package bundle

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Manifest is the JSON input of a bundle: the decoded files in bundle order.
type Manifest struct {
	Files []File `json:"files"`
}

// ReadManifest decodes a manifest from r. Unknown fields are rejected.
func ReadManifest(r io.Reader) ([]File, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	for i, f := range m.Files {
		if f.Path == "" {
			return nil, fmt.Errorf("manifest file %d has no path", i)
		}
	}
	return m.Files, nil
}

// LoadManifest reads a manifest file.
func LoadManifest(path string) ([]File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer f.Close()
	return ReadManifest(f)
}
