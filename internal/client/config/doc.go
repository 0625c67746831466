// Package config loads runtime configuration for the back-office CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: BACKOFFICE_API_URL, BACKOFFICE_STORAGE_DSN,
//     BACKOFFICE_REQUEST_TIMEOUT, BACKOFFICE_REHYDRATE_TIMEOUT and
//     BACKOFFICE_LOG_LEVEL, read from the process environment or a .env file.
//  3. Optional JSON file selected via -c / -config or $BACKOFFICE_CONFIG.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend API base address
//	-d string   SQLite file for the persisted session
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "storage_dsn": "backoffice.db",
//	  "request_timeout": "15s",
//	  "rehydrate_timeout": "10s",
//	  "log_level": "info"
//	}
//
// The base address is fixed once LoadConfig returns; nothing reconfigures it
// at run time.
package config
