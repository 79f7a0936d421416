// Package log provides structured, colored logging for the chaincore demo
// binary. Nothing under internal/chain, internal/validate, internal/utxo,
// pkg/block, or pkg/tx imports this package — the core never logs.
package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Demo is the component logger used by cmd/chaincore-demo.
var Demo zerolog.Logger

func init() {
	Logger = NewConsoleLogger(os.Stdout, "info")
	Demo = Logger.With().Str("component", "demo").Logger()
}

// Init initializes the logger at the given level, colored console by default
// or JSON when jsonOutput is set.
func Init(level string, jsonOutput bool) {
	if jsonOutput {
		Logger = NewJSONLogger(os.Stdout, level)
	} else {
		Logger = NewConsoleLogger(os.Stdout, level)
	}
	Demo = Logger.With().Str("component", "demo").Logger()
}

// NewConsoleLogger creates a colored console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    false,
	}
	return zerolog.New(output).Level(parseLevel(level)).With().Timestamp().Logger()
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
