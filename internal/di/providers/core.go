package providers

import (
	"io"
	"log/slog"
	"strings"

	"github.com/samber/do/v2"

	"github.com/mmcdole/stacks/internal/adapter"
	"github.com/mmcdole/stacks/internal/store"
)

// Options are command line overrides applied on top of the loaded config
type Options struct {
	ConfigFile string
	Backend    string
	StorePath  string
	Ephemeral  bool // Keep state in memory only
	LogLevel   string
}

// ProvideConfig loads the configuration and applies Options
func ProvideConfig(i do.Injector) (*adapter.Config, error) {
	opts := do.MustInvoke[Options](i)

	cfg, err := adapter.LoadConfig(opts.ConfigFile)
	if err != nil {
		return nil, err
	}

	if opts.Backend != "" {
		cfg.Storage.Backend = strings.ToLower(opts.Backend)
	}
	if opts.StorePath != "" {
		cfg.Storage.Path = adapter.ExpandPath(opts.StorePath)
	}
	if opts.Ephemeral {
		cfg.Storage.Backend = string(store.BackendMemory)
	}
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoggerHandle wraps the logger with its log file.
type LoggerHandle struct {
	*slog.Logger
	file io.Closer
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	return h.file.Close()
}

// ProvideLogger provides the file logger and installs it as the default.
func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*adapter.Config](i)

	logger, file, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, file = adapter.NullLogger(), io.NopCloser(nil)
	}
	slog.SetDefault(logger)

	return &LoggerHandle{Logger: logger, file: file}, nil
}
