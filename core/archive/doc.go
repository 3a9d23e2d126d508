// Package archive defines the boundary with the package decoder.
//
// A package (container) is an encrypted archive holding many files. The
// decoder that understands the container format lives outside this module;
// everything else only talks to it through the Decoder and Session
// interfaces declared here.
//
// # Records
//
// Decoding a single file yields a Record: an ordered list of exports (the
// objects defined in the file) and imports (references to objects defined in
// other files). Exports carry a stable Index and a free-form field map whose
// values are plain Go values (string, numbers, bool, []any, map[string]any).
//
// # Usage
//
//	session, err := decoder.Open(ctx, "/paks/pakchunk0.pak", key)
//	for _, path := range session.ListFiles() {
//	    record, err := session.ReadFile(ctx, path)
//	}
package archive
