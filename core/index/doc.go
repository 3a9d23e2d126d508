// Package index maps file paths to the package session that owns them.
//
// The index is the single source of truth for "which session can decode this
// path". Claims are first-writer-wins: once a path is claimed it is never
// reassigned, so a later package can not silently shadow records that were
// already resolved from an earlier one.
package index
