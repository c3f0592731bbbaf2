package main

import (
	"embed"
	"fmt"
	"io"
	"os"

	"github.com/chazu/calc/pkg/engine"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/zap"
)

//go:embed all:frontend/dist
var assets embed.FS

const (
	windowTitle  = "Calculator"
	windowWidth  = 280
	windowHeight = 400
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the exit, so deferred calls such as flushing the
// logger happen on every path. It returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	if cfg.Script != "" {
		return runScriptFile(stdout, engine.NewEngine(logger.Named("engine")), cfg.Script)
	}

	app := NewApp(logger)

	err = wails.Run(&options.App{
		Title:            windowTitle,
		Width:            windowWidth,
		Height:           windowHeight,
		DisableResize:    true,
		BackgroundColour: &options.RGBA{R: 242, G: 242, B: 247, A: 255},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Logger:    newWailsLogger(logger.Named("wails")),
		LogLevel:  wailsLevel(cfg.LogLevel),
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Error("wails run failed", zap.Error(err))
		return 1
	}
	return 0
}
