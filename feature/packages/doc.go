// Package packages exposes the state of the package index over HTTP.
//
// # HTTP Endpoints
//
//   - GET /packages : opened packages (key fingerprints only) and index size.
//   - GET /packages/categories : category match counts, thresholds and bucket sizes.
//   - GET /packages/files?prefix=&limit= : indexed paths under a prefix.
//   - GET /packages/catalog : the persisted container catalog (503 without a database).
//   - POST /packages/:id/open : open one package, body {"key": "0x..."} optional (422 on a wrong key).
package packages
