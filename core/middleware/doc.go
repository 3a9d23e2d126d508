// Package middleware groups the Fiber middleware mounted by the start command.
//
// Order matters: rayid runs first so the request log line and every handler log
// carry the ray id, then the request logger, then auth.
//
// # Components
//
//   - rayid: reuses an incoming X-Ray-ID header or generates a uuid, stores it in
//     the request locals and echoes it on the response.
//   - auth: requires the configured API key in X-API-Key or as a Bearer token,
//     compared in constant time. Paths listed as public (/metrics) and servers
//     without a key skip the check; failures answer 401 with a JSON error.
package middleware
