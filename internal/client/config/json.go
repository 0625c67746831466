package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/backoffice/internal/flagx"
)

// duration accepts either a string like "10s" or integer nanoseconds.
type duration time.Duration

func (d *duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*d = duration(time.Duration(x))
	case string:
		p, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = duration(p)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// JsonConfig is the on-disk shape of the config file. Absent fields leave the
// current Config values untouched.
type JsonConfig struct {
	APIBaseURL       string    `json:"api_base_url"`
	StorageDSN       string    `json:"storage_dsn"`
	RequestTimeout   *duration `json:"request_timeout"`
	RehydrateTimeout *duration `json:"rehydrate_timeout"`
	LogLevel         string    `json:"log_level"`
}

// parseJson overlays Config with values from the file chosen via -c/-config
// (or $BACKOFFICE_CONFIG). It does nothing when no file is selected and
// panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.StorageDSN != "" {
		cfg.StorageDSN = jc.StorageDSN
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeout)
	}
	if jc.RehydrateTimeout != nil {
		cfg.RehydrateTimeout = time.Duration(*jc.RehydrateTimeout)
	}
}
