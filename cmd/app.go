// Package cmd implements the fz command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/kelseyhightower/envconfig"
	"github.com/lmittmann/tint"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&mergeCmd{}, "tables")
	c.Register(&pvCmd{}, "finance")
	c.Register(&topicCmd{}, "help")
}

// Config holds the settings read from the FZ_* environment variables.
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	Tolerance string `envconfig:"TOLERANCE" default:"0"`
	Currency  string `envconfig:"CURRENCY"`
	Style     string `envconfig:"STYLE" default:"auto"`
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var config Config

var logLevel = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides "+EnvLogLevel)
var style = flag.String("style", "", "Markdown style (auto, dark, light, notty, ascii, plain). Overrides "+EnvStyle)

// stdout is where commands print their result.
var stdout io.Writer = os.Stdout

// Setup reads the environment, applies the global flags and installs the logger.
// It must be called after flag.Parse().
func Setup() error {
	if err := envconfig.Process("FZ", &config); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if *logLevel != "" {
		config.LogLevel = *logLevel
	}
	if *style != "" {
		config.Style = *style
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(config.LogLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	slog.SetDefault(newLogger(os.Stderr, level))
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))
}

// splitList splits a comma separated flag value, dropping empty items.
func splitList(s string) []string {
	var list []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
