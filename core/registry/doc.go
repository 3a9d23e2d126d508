// Package registry owns opened package sessions and the key selection policy.
//
// Open picks a key (explicit, per-container from the key source, or the
// default key), asks the decoder for a session and hands the session's file
// list to an Absorber in the same critical section that records the entry.
// A failed open (wrong key, corrupt container) is logged and returned as an
// *OpenError; the registry is left untouched. Opening an already open
// container is a no-op.
//
// # Ordering
//
// OpenAll processes containers one at a time in reverse registration order.
// The order only matters for file path ownership: the first package to claim
// a path in the file index keeps it.
package registry
