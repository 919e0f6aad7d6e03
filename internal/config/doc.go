// Package config provides configuration management for workparts.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Validation of limits the resolver depends on
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// MusicBrainz public web service
//	// 100 lookups/sec shared across all resolutions
//	// 6 lookup attempts with bounded exponential backoff
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultConfigPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Web service endpoint, user agent and request rate
//   - Lookup retry behavior
//   - Concurrent album/track resolution limits
//   - Tag namespace and write behavior
//   - Resolution report output
package config
