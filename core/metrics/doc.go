// Package metrics exposes Prometheus counters for the indexing pipeline.
//
// Every Metrics value owns its own registry, so several engines (or tests)
// can coexist in one process without duplicate registration panics. All
// recording methods are safe to call on a nil *Metrics, which lets core
// components treat metrics as optional.
//
// # Usage
//
//	m := metrics.New()
//	m.PackageOpened()
//	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
package metrics
