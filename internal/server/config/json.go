package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/guestbook/internal/flagx"
	"github.com/dmitrijs2005/guestbook/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields are
// optional: a key missing from the file leaves the default untouched.
type JsonConfig struct {
	EndpointAddrHTTP     *string         `json:"endpoint_addr_http"`
	DatabaseDSN          *string         `json:"database_dsn"`
	StaticDir            *string         `json:"static_dir"`
	Workers              *int            `json:"workers"`
	VisitorCounter       *bool           `json:"visitor_counter"`
	ShutdownPollInterval *timex.Duration `json:"shutdown_poll_interval"`
	ShutdownPolls        *int            `json:"shutdown_polls"`
	LogLevel             *string         `json:"log_level"`
	CORSOrigin           *string         `json:"cors_origin"`
}

// parseJson overlays Config with values from the file named by -c / -config.
// Without the flag nothing is loaded. Read or decode failures panic; the
// process cannot start on a broken config.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != nil {
		config.EndpointAddrHTTP = *c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.StaticDir != nil {
		config.StaticDir = *c.StaticDir
	}
	if c.Workers != nil {
		config.Workers = *c.Workers
	}
	if c.VisitorCounter != nil {
		config.VisitorCounter = *c.VisitorCounter
	}
	if c.ShutdownPollInterval != nil {
		config.ShutdownPollInterval = c.ShutdownPollInterval.Duration
	}
	if c.ShutdownPolls != nil {
		config.ShutdownPolls = *c.ShutdownPolls
	}
	if c.LogLevel != nil {
		config.LogLevel = *c.LogLevel
	}
	if c.CORSOrigin != nil {
		config.CORSOrigin = *c.CORSOrigin
	}
}
