package keys

// Config holds configuration for key discovery.
type Config struct {
	// URL is the endpoint serving the key chain as JSON. Empty disables remote fetching.
	URL string `mapstructure:"url" default:""`
	// MainKey is used when the remote chain is unavailable or has no main key.
	MainKey string `mapstructure:"main_key" default:""`
	// File is an optional local JSON key chain.
	File string `mapstructure:"file" default:""`
	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// CacheTTLSeconds is how long a fetched chain stays fresh.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// RateLimit caps requests per second against the key endpoint (0 = unlimited).
	RateLimit float64 `mapstructure:"rate_limit" default:"1"`
}
