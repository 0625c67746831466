package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DotEnvFile is the optional dotenv file read by LoadConfig.
const DotEnvFile = ".env"

const (
	envAPIBaseURL       = "BACKOFFICE_API_URL"
	envStorageDSN       = "BACKOFFICE_STORAGE_DSN"
	envRequestTimeout   = "BACKOFFICE_REQUEST_TIMEOUT"
	envRehydrateTimeout = "BACKOFFICE_REHYDRATE_TIMEOUT"
	envLogLevel         = "BACKOFFICE_LOG_LEVEL"
)

// parseEnv overlays Config with BACKOFFICE_* variables. Values from the
// process environment win over the ones found in dotenvPath; a missing
// dotenv file is not an error. Timeouts use time.ParseDuration syntax and
// panic when malformed, like the other loaders.
func parseEnv(cfg *Config, dotenvPath string) {
	fileVars, err := godotenv.Read(dotenvPath)
	if err != nil {
		fileVars = map[string]string{}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(envAPIBaseURL); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := lookup(envStorageDSN); ok {
		cfg.StorageDSN = v
	}
	if v, ok := lookup(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envRequestTimeout); ok {
		cfg.RequestTimeout = mustDuration(envRequestTimeout, v)
	}
	if v, ok := lookup(envRehydrateTimeout); ok {
		cfg.RehydrateTimeout = mustDuration(envRehydrateTimeout, v)
	}
}

func mustDuration(key, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(key + ": " + err.Error())
	}
	return d
}
