package storage

// Config holds the object storage holding the container files.
type Config struct {
	// Enabled turns the container mirror on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the host[:port] of the S3 compatible service. A scheme prefix is tolerated.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL selects https.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds the containers.
	Bucket string `mapstructure:"bucket" default:"paks"`
	// Prefix is the object key prefix of the containers inside the bucket.
	Prefix string `mapstructure:"prefix" default:""`
	// Region is the bucket location (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
