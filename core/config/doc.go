// Package config loads the application configuration.
//
// Defaults come from the `default` struct tags of every section, then an optional
// config.yaml, then a .env file and the process environment (INDEX_PATH -> index.path).
//
// # Sections
//
//   - Server: HTTP port, API key, shutdown bound
//   - Log: level and format
//   - Index: container directory, pattern, category threshold and path roots
//   - Keys: key chain URL, file, main key and fetch limits
//   - Storage: S3/MinIO mirror of the container directory
//   - Database: optional container catalog (sqlite or mysql)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Index.Path)
package config
