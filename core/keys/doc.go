// Package keys supplies decryption keys for packages.
//
// A key chain has one main key and a set of dynamic keys for packages that
// are encrypted with their own key. Dynamic keys are published under the
// package's file path; the chain normalizes them to the container id (file
// name up to its first dot) so the registry can look them up by id.
//
// # Sources
//
//   - Static: an in-memory chain, e.g. from a JSON file or configuration.
//   - Remote: fetches the chain over HTTP with retries, rate limiting and a
//     TTL cache; concurrent refreshes are collapsed with singleflight.
//
// # Usage
//
//	remote := keys.NewRemote(cfg.Keys, logger)
//	if err := remote.Refresh(ctx); err != nil { ... }
//	key, ok := remote.Lookup("pakchunk1000-WindowsClient")
package keys
