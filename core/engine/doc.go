// Package engine wires the index-and-resolve components together.
//
// An Engine owns one file index, materializer, classifier, registry, reference
// resolver and texture resolver. It is the registry's Absorber: every newly
// opened package has its file list claimed in the index, and the newly
// claimed paths are classified into category buckets. Paths already owned by
// an earlier package are counted as shadowed and left alone.
//
// # Extraction
//
// Extract discovers the containers in the configured directory and opens
// them in reverse registration order. Failures of single containers are
// logged by the registry and do not stop the run; Extracted reports whether a
// run has completed.
package engine
