// Package config handles configuration loading for banca-console.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from the BANCA_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/banca/console.yaml
//  3. ~/.config/banca/console.yaml
//
// Files ending in .toml are read as TOML; everything else as YAML.
//
// # Environment Variable Expansion
//
// Values can reference environment variables:
//
//	api:
//	  base_url: "${BANCA_API_URL}"
//
// # Example
//
//	server:
//	  http_addr: "localhost:4200"
//	api:
//	  base_url: "http://localhost:8080/api"
//	  timeout: "10s"          # empty means no timeout
//	session:
//	  ttl: "12h"
//	  max_sessions: 1000
//	audit:
//	  path: "~/.local/share/banca/audit.db"   # empty disables the journal
//	logging:
//	  level: "info"           # debug, info, warn, error
//	  format: "text"          # text or json
//	telemetry:
//	  enabled: false
//	  service_name: "banca-console"
//
// Durations use time.ParseDuration syntax. Unset fields take the defaults
// returned by Default.
package config
