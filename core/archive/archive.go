package archive

import (
	"context"
	"errors"
)

// ErrBadKey is returned by decoders when the supplied key does not unlock a container.
var ErrBadKey = errors.New("key does not unlock container")

// Decoder opens containers.
type Decoder interface {
	// Open decrypts the container at containerPath with key and returns a session bound to it.
	Open(ctx context.Context, containerPath, key string) (Session, error)
}

// Session is an opened container. A session is owned by the registry entry that created it.
type Session interface {
	// ListFiles returns the container's file paths in container order.
	ListFiles() []string
	// ReadFile decodes one file into a fresh Record.
	ReadFile(ctx context.Context, path string) (*Record, error)
}

// Record is the decoded export/import graph of one file.
type Record struct {
	// Path is the file path the record was read from.
	Path string `json:"path,omitempty"`
	// Name is the short name of the file (last segment, extension stripped).
	Name string `json:"name,omitempty"`
	// Exports are the objects defined in the file, in file order.
	Exports []Export `json:"exports"`
	// Imports are references to objects of other files.
	Imports []Import `json:"imports,omitempty"`
}

// Export is one object defined in a file.
type Export struct {
	// Index is the stable export index of the object.
	Index int `json:"index"`
	// Type is the object's class name (e.g. "AthenaCharacterItemDefinition").
	Type string `json:"type"`
	// Fields holds the decoded property values keyed by property name.
	Fields map[string]any `json:"fields,omitempty"`
}

// Import references an export that lives in another file.
type Import struct {
	Index int    `json:"index"`
	Path  string `json:"path"`
	Name  string `json:"name"`
	Class string `json:"class,omitempty"`
}

// Main returns the first export of the record, or nil for an empty record.
func (r *Record) Main() *Export {
	if r == nil || len(r.Exports) == 0 {
		return nil
	}
	return &r.Exports[0]
}

// Export returns the export carrying the given index.
func (r *Record) Export(index int) (*Export, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Exports {
		if r.Exports[i].Index == index {
			return &r.Exports[i], true
		}
	}
	return nil, false
}

// Field returns a field of the export, or nil when the export or the field is absent.
func (e *Export) Field(name string) any {
	if e == nil || e.Fields == nil {
		return nil
	}
	return e.Fields[name]
}
