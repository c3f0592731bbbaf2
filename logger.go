package main

import (
	wailslog "github.com/wailsapp/wails/v2/pkg/logger"
	"go.uber.org/zap"
)

// newLogger builds the application logger for the given level.
func newLogger(level string) (*zap.Logger, error) {
	var cfg zap.Config

	switch level {
	case "debug":
		cfg = zap.NewDevelopmentConfig()
	case "warn":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg = zap.NewProductionConfig()
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}

// wailsLogger routes the Wails runtime's log output through zap.
type wailsLogger struct {
	log *zap.SugaredLogger
}

var _ wailslog.Logger = wailsLogger{}

func newWailsLogger(l *zap.Logger) wailsLogger {
	return wailsLogger{log: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func (w wailsLogger) Print(message string)   { w.log.Info(message) }
func (w wailsLogger) Trace(message string)   { w.log.Debug(message) }
func (w wailsLogger) Debug(message string)   { w.log.Debug(message) }
func (w wailsLogger) Info(message string)    { w.log.Info(message) }
func (w wailsLogger) Warning(message string) { w.log.Warn(message) }
func (w wailsLogger) Error(message string)   { w.log.Error(message) }
func (w wailsLogger) Fatal(message string)   { w.log.Fatal(message) }

// wailsLevel maps a -log-level value onto the Wails runtime levels.
func wailsLevel(level string) wailslog.LogLevel {
	switch level {
	case "debug":
		return wailslog.DEBUG
	case "warn":
		return wailslog.WARNING
	case "error":
		return wailslog.ERROR
	default:
		return wailslog.INFO
	}
}
