// Package source finds container files and keeps the local container
// directory in sync with object storage.
//
// Discover globs the container directory (doublestar patterns such as
// "*.pak" or "**/*.pak") and returns container ids in registration order,
// which is the sorted file name order. The registry opens them in reverse.
//
// Mirror pulls matching objects from a MinIO/S3 bucket into the directory
// before discovery and publishes sealed bundles back to it.
package source
