package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/guestbook/internal/flagx"
)

var valueFlags = []string{"-a", "-d", "-s", "-w", "-t", "-i", "-l", "-o", "-c", "-config"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., "127.0.0.1:8080")
//	-d string   SQLite database file
//	-s string   static files directory
//	-w int      number of workers
//	-v bool     enable the visitor counter (use -v=false to disable)
//	-t int      shutdown polls before forcing exit
//	-i int      shutdown poll interval, milliseconds
//	-l string   log level
//	-o string   CORS allow-origin for the visitor counter
//
// A single positional argument, if present, overrides the bind address:
//
//	server 0.0.0.0:8080
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-w", "-v", "-t", "-i", "-l", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database file")
	fs.StringVar(&config.StaticDir, "s", config.StaticDir, "static files directory")
	fs.IntVar(&config.Workers, "w", config.Workers, "number of worker threads")
	fs.BoolVar(&config.VisitorCounter, "v", config.VisitorCounter, "enable visitor counter")
	fs.IntVar(&config.ShutdownPolls, "t", config.ShutdownPolls, "shutdown polls before forced exit")
	pollInterval := fs.Int("i", int(config.ShutdownPollInterval.Milliseconds()), "shutdown poll interval (in milliseconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.CORSOrigin, "o", config.CORSOrigin, "CORS allow-origin")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownPollInterval = time.Duration(*pollInterval) * time.Millisecond

	if pos := flagx.Positional(os.Args[1:], valueFlags); len(pos) > 0 {
		config.EndpointAddrHTTP = pos[0]
	}

	if config.Workers < 1 {
		panic(fmt.Errorf("workers must be positive, got %d", config.Workers))
	}
}
