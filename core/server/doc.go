// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application itself; this package only defines
// the listen port, the optional API key and the graceful shutdown bound, and
// validates them before the server starts.
package server
