package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const appName = "stacks"

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Library LibraryConfig `mapstructure:"library"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig selects where application state is kept
type StorageConfig struct {
	Backend     string        `mapstructure:"backend" validate:"oneof=sqlite bolt badger memory"`
	Path        string        `mapstructure:"path" validate:"required_unless=Backend memory"`
	Watch       bool          `mapstructure:"watch"`        // Pick up changes from other instances
	SettleDelay time.Duration `mapstructure:"settle_delay"` // Debounce for file change bursts
}

// CatalogConfig holds book-metadata service configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	CoversURL         string        `mapstructure:"covers_url" validate:"required,url"`
	Subject           string        `mapstructure:"subject" validate:"required"`
	TrendingURL       string        `mapstructure:"trending_url" validate:"omitempty,url"` // Full endpoint, overrides subject
	TrendingLimit     int           `mapstructure:"trending_limit" validate:"gte=1"`
	CatalogLimit      int           `mapstructure:"catalog_limit" validate:"gte=1"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
}

// LibraryConfig holds loan rules
type LibraryConfig struct {
	LoanDays    int `mapstructure:"loan_days" validate:"gte=1"`
	RenewalDays int `mapstructure:"renewal_days" validate:"gte=1"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultPage string `mapstructure:"default_page" validate:"oneof=landing catalog account about"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     "sqlite",
			Path:        filepath.Join(defaultDataPath(), "state.db"),
			Watch:       true,
			SettleDelay: 150 * time.Millisecond,
		},
		Catalog: CatalogConfig{
			BaseURL:           "https://openlibrary.org",
			CoversURL:         "https://covers.openlibrary.org",
			Subject:           "public_domain",
			TrendingLimit:     8,
			CatalogLimit:      40,
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
		},
		Library: LibraryConfig{
			LoanDays:    14,
			RenewalDays: 7,
		},
		UI: UIConfig{
			DefaultPage: "landing",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), appName+".log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config file directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// setDefaults registers every key so environment overrides apply on Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("storage.watch", cfg.Storage.Watch)
	v.SetDefault("storage.settle_delay", cfg.Storage.SettleDelay)

	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.covers_url", cfg.Catalog.CoversURL)
	v.SetDefault("catalog.subject", cfg.Catalog.Subject)
	v.SetDefault("catalog.trending_url", cfg.Catalog.TrendingURL)
	v.SetDefault("catalog.trending_limit", cfg.Catalog.TrendingLimit)
	v.SetDefault("catalog.catalog_limit", cfg.Catalog.CatalogLimit)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)
	v.SetDefault("catalog.requests_per_second", cfg.Catalog.RequestsPerSecond)

	v.SetDefault("library.loan_days", cfg.Library.LoanDays)
	v.SetDefault("library.renewal_days", cfg.Library.RenewalDays)

	v.SetDefault("ui.default_page", cfg.UI.DefaultPage)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment. An empty
// configFile searches the default config directory and the working directory.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. STACKS_STORAGE_BACKEND
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ExpandPath replaces a leading ~ with the home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
