// Package config handles configuration for the guestbook server,
// including defaults, JSON overlay, command-line flags and the optional
// positional bind address.
package config

import "time"

// Config holds runtime settings for the guestbook server.
//
// Fields:
//   - EndpointAddrHTTP: bind address ("host:port") of the HTTP listener.
//   - DatabaseDSN: path of the SQLite file (or an in-memory DSN in tests).
//   - StaticDir: directory static files are served from.
//   - Workers: fixed size of the worker pool.
//   - VisitorCounter: enables the /visitor_count resource.
//   - ShutdownPollInterval / ShutdownPolls: the coordinator checks the
//     stopped-worker count every interval, at most ShutdownPolls times.
//   - LogLevel: debug, info, warn or error.
//   - CORSOrigin: value of Access-Control-Allow-Origin on counter routes.
type Config struct {
	EndpointAddrHTTP     string
	DatabaseDSN          string
	StaticDir            string
	Workers              int
	VisitorCounter       bool
	ShutdownPollInterval time.Duration
	ShutdownPolls        int
	LogLevel             string
	CORSOrigin           string
}

// LoadDefaults populates Config with the reference deployment values.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = "127.0.0.1:8080"
	c.DatabaseDSN = "data/entries.db"
	c.StaticDir = "."
	c.Workers = 4
	c.VisitorCounter = true
	c.ShutdownPollInterval = 1 * time.Second
	c.ShutdownPolls = 30
	c.LogLevel = "info"
	c.CORSOrigin = "*"
}

// ShutdownTimeout is the total time the coordinator waits for workers.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownPolls) * c.ShutdownPollInterval
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
