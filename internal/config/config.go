// Package config loads nodedash configuration from a YAML file, NODEDASH_*
// environment variables and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/renato0307/nodedash/internal/logging"
	"github.com/renato0307/nodedash/internal/rbac"
	"github.com/renato0307/nodedash/internal/settings"
	"github.com/renato0307/nodedash/internal/ui"
)

// DefaultRefreshInterval is how often the node list is reloaded
const DefaultRefreshInterval = 10 * time.Second

const (
	// Default configuration values
	defaultTheme           = "charm"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultLogMaxSizeMB    = 10
	defaultLogMaxBackups   = 3

	// Environment variable prefix, e.g. NODEDASH_LOG_LEVEL=debug
	envPrefix = "NODEDASH"
)

// Config is the complete nodedash configuration
type Config struct {
	Kubeconfig      string                `mapstructure:"kubeconfig"`
	Context         string                `mapstructure:"context"`
	ProjectID       string                `mapstructure:"projectID"`
	ClusterID       string                `mapstructure:"clusterID"`
	Theme           string                `mapstructure:"theme"`
	RefreshInterval time.Duration         `mapstructure:"refreshInterval"`
	Dummy           bool                  `mapstructure:"dummy"`
	Log             LogConfig             `mapstructure:"log"`
	Settings        settings.UserSettings `mapstructure:"settings"`
	Access          rbac.Access           `mapstructure:"access"`
}

// LogConfig configures the file logger
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
}

// LoggingConfig converts the log section into logging.Config
func (c LogConfig) LoggingConfig() logging.Config {
	return logging.Config{
		FilePath:   c.File,
		Level:      logging.ParseLevel(c.Level),
		Format:     logging.ParseFormat(c.Format),
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// flagKeys maps command line flag names to configuration keys
var flagKeys = map[string]string{
	"kubeconfig": "kubeconfig",
	"context":    "context",
	"project":    "projectID",
	"cluster":    "clusterID",
	"theme":      "theme",
	"dummy":      "dummy",
	"log-file":   "log.file",
	"log-level":  "log.level",
}

// Store holds the loaded configuration and the viper instance backing it
type Store struct {
	v   *viper.Viper
	mu  sync.RWMutex
	cfg *Config
}

// DefaultPath returns $HOME/.config/nodedash/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "nodedash", "config.yaml")
}

// Load reads configuration. An empty configPath uses DefaultPath, which may
// be missing; an explicit path must exist. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Store, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file at %s: %w", configPath, err)
			}
			logging.Debug("no config file, using defaults", "path", configPath)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Settings = cfg.Settings.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &Store{v: v, cfg: cfg}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("kubeconfig", "")
	v.SetDefault("context", "")
	v.SetDefault("projectID", "")
	v.SetDefault("clusterID", "")
	v.SetDefault("theme", defaultTheme)
	v.SetDefault("refreshInterval", DefaultRefreshInterval)
	v.SetDefault("dummy", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("log.maxSizeMB", defaultLogMaxSizeMB)
	v.SetDefault("log.maxBackups", defaultLogMaxBackups)
	v.SetDefault("settings.itemsPerPage", settings.DefaultItemsPerPage)
}

// validLogLevels defines the allowed logging levels
var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the configuration for values the console cannot run with
func (c *Config) Validate() error {
	if c.RefreshInterval < time.Second {
		return fmt.Errorf("refreshInterval must be at least 1s, got %s", c.RefreshInterval)
	}
	if !slices.Contains(ui.AvailableThemes(), c.Theme) {
		return fmt.Errorf("invalid theme: %s. Valid values are: %s", c.Theme, strings.Join(ui.AvailableThemes(), ", "))
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log.level: %s. Valid values are: debug, info, warn, error", c.Log.Level)
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return fmt.Errorf("invalid log.format: %s. Valid values are: text, json", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.maxSizeMB and log.maxBackups cannot be negative")
	}
	if c.Settings.ItemsPerPage < 0 {
		return fmt.Errorf("settings.itemsPerPage cannot be negative")
	}
	if !c.Dummy && c.ProjectID == "" {
		return fmt.Errorf("projectID is required")
	}
	return nil
}

// Config returns the current configuration
func (s *Store) Config() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// File returns the config file in use, or empty when running on defaults
func (s *Store) File() string {
	if _, err := os.Stat(s.v.ConfigFileUsed()); err != nil {
		return ""
	}
	return s.v.ConfigFileUsed()
}

// Watch reloads the settings section whenever the config file changes and
// publishes the result. It is a no-op without a config file.
func (s *Store) Watch(b *settings.Broadcaster) {
	if s.File() == "" {
		return
	}

	s.v.OnConfigChange(func(e fsnotify.Event) {
		var updated settings.UserSettings
		if err := s.v.UnmarshalKey("settings", &updated); err != nil {
			logging.Warn("ignoring invalid settings after config change", "file", e.Name, "error", err)
			return
		}
		updated = updated.Normalize()

		s.mu.Lock()
		next := *s.cfg
		next.Settings = updated
		s.cfg = &next
		s.mu.Unlock()

		logging.Info("settings reloaded", "file", e.Name, "itemsPerPage", updated.ItemsPerPage)
		b.Publish(updated)
	})
	s.v.WatchConfig()
}
