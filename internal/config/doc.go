// Package config loads and saves the YAML configuration of the scheduled
// events client.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/scheduledevents/config.yaml or $HOME/.config/scheduledevents/config.yaml
//   - macOS: $HOME/.config/scheduledevents/config.yaml
//   - Windows: %LOCALAPPDATA%\scheduledevents\config.yaml
//
// A missing file is not an error; Load returns Default(). Command-line
// flags override whatever the file sets.
//
// # Example
//
//	version: 1
//	log_level: info
//	discovery:
//	  option_id: 245
//	  timeout_seconds: 180
//	  timeout_policy: abort
//	  interfaces: ["eth0"]
//	client:
//	  timeout_seconds: 10
//
// The discovered endpoint is never written back to the file.
package config
