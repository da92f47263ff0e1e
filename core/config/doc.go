// Package config provides configuration management for the config manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
//   - Server: HTTP API settings (port, API key)
//   - Storage: S3/MinIO credentials and bucket for the object value source
//   - Log: Logging level and format
//   - Database: update history database (sqlite or mysql)
//   - Source: value source kind, directory or object prefix, cache TTL
//   - Reload: reload method (command, systemd) and command template
//   - Plugins: path of the managed file manifest
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Source.Dir)
package config
