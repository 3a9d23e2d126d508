// Package materialize turns file paths into decoded records.
//
// The Materializer finds the owning session through the file index, asks it
// to decode the path and stamps the resulting record with its source path and
// short name. Successful decodes are memoized per path; decoded records are
// immutable so they can be shared between buckets and queries.
//
// # Results
//
// Materialize returns a typed error: ErrUnknownPath when no opened package
// holds the path, *DecodeError when the owning session failed to decode it.
// Call sites that treat an absent record as normal use Get, which unwraps
// either failure to nil.
package materialize
