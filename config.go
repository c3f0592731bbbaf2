package main

import (
	"flag"
	"fmt"
	"io"
)

// config holds the command-line settings.
type config struct {
	LogLevel string
	Script   string
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

func parseFlags(args []string) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&cfg.Script, "script", "", "run a session script headlessly and exit")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !logLevels[cfg.LogLevel] {
		return config{}, fmt.Errorf("invalid -log-level %q", cfg.LogLevel)
	}
	return cfg, nil
}
