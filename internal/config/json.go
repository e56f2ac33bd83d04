package config

import (
	"encoding/json"
	"os"

	"stocktrack/internal/flagx"
	"stocktrack/internal/timex"
)

// jsonConfig is the DTO for JSON unmarshalling. Durations may be given as
// strings like "15s" or as integer nanoseconds (see timex.Duration). Only
// fields present in the file overwrite the running Config.
type jsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	DatabaseDSN    *string         `json:"database_dsn"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	PingInterval   *timex.Duration `json:"ping_interval"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. With no flag given nothing happens. Read or unmarshal
// errors panic; the config layer runs before any state exists, so failing
// loudly is preferable to running half-configured.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PingInterval != nil {
		cfg.PingInterval = jc.PingInterval.Duration
	}
}
