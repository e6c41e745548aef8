package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bryanchriswhite/hyprwatch/internal/hypr"
	"github.com/bryanchriswhite/hyprwatch/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingRuntimeDir is returned by Paths when no runtime directory is configured.
	ErrMissingRuntimeDir = errors.New("runtime directory not set (XDG_RUNTIME_DIR)")
	// ErrMissingSignature is returned by Paths when no instance signature is configured.
	ErrMissingSignature = errors.New("instance signature not set (HYPRLAND_INSTANCE_SIGNATURE)")
)

// Config represents the application configuration
type Config struct {
	RuntimeDir        string        `json:"runtime_dir,omitempty" yaml:"runtime_dir,omitempty" mapstructure:"runtime_dir"`
	InstanceSignature string        `json:"instance_signature,omitempty" yaml:"instance_signature,omitempty" mapstructure:"instance_signature"`
	LogLevel          string        `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogPretty         bool          `json:"log_pretty" yaml:"log_pretty" mapstructure:"log_pretty"`
	QueueSize         int           `json:"queue_size" yaml:"queue_size" mapstructure:"queue_size"`
	ServerPort        int           `json:"server_port" yaml:"server_port" mapstructure:"server_port"`
	CommandTimeout    time.Duration `json:"command_timeout" yaml:"command_timeout" mapstructure:"command_timeout"`
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"runtime_dir",
	"instance_signature",
	"log_level",
	"log_pretty",
	"queue_size",
	"server_port",
	"command_timeout",
}

// environment-only keys are not written back unless set explicitly
var envKeys = map[string][]string{
	"runtime_dir":        {"HYPRWATCH_RUNTIME_DIR", "XDG_RUNTIME_DIR"},
	"instance_signature": {"HYPRWATCH_INSTANCE_SIGNATURE", "HYPRLAND_INSTANCE_SIGNATURE"},
}

// Manager handles configuration
type Manager struct {
	configPath string
	v          *viper.Viper
	config     *Config
	explicit   map[string]bool
	mu         sync.RWMutex
}

// DefaultPath returns $HOME/.config/hyprwatch/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "hyprwatch", "config.yaml"), nil
}

// NewManager loads configuration from defaults, the config file (if it
// exists) and the environment. An empty configFile selects DefaultPath.
func NewManager(configFile string) (*Manager, error) {
	return newManager(configFile, viper.New())
}

// NewManagerWithViper is NewManager reading through v, so flags bound to v
// take precedence over the file.
func NewManagerWithViper(configFile string, v *viper.Viper) (*Manager, error) {
	return newManager(configFile, v)
}

func newManager(configFile string, v *viper.Viper) (*Manager, error) {
	path := configFile
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	setDefaults(v)
	v.SetEnvPrefix("HYPRWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envKeys {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	m := &Manager{
		configPath: path,
		v:          v,
		explicit:   make(map[string]bool),
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	} else {
		logger.WithComponent("config").Debug().
			Str("path", path).
			Msg("Config file not found, using defaults")
	}

	if err := m.reload(); err != nil {
		return nil, err
	}

	logger.WithComponent("config").Debug().
		Str("path", m.configPath).
		Str("log_level", m.config.LogLevel).
		Msg("Config loaded")

	return m, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)
	v.SetDefault("queue_size", 1024)
	v.SetDefault("server_port", 8080)
	v.SetDefault("command_timeout", time.Duration(0))
}

func (m *Manager) reload() error {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	m.mu.Lock()
	m.config = &cfg
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// GetViper exposes the underlying viper instance.
func (m *Manager) GetViper() *viper.Viper {
	return m.v
}

// GetConfigPath returns the path to the config file
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// Paths resolves the socket location of the configured compositor instance.
func (m *Manager) Paths() (hypr.Paths, error) {
	cfg := m.Get()
	if cfg.RuntimeDir == "" {
		return hypr.Paths{}, ErrMissingRuntimeDir
	}
	if cfg.InstanceSignature == "" {
		return hypr.Paths{}, ErrMissingSignature
	}
	return hypr.Paths{RuntimeDir: cfg.RuntimeDir, Signature: cfg.InstanceSignature}, nil
}

// Set overrides one key in memory. Call Save to persist it.
func (m *Manager) Set(key string, value any) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	m.v.Set(key, value)
	m.mu.Lock()
	m.explicit[key] = true
	m.mu.Unlock()
	return m.reload()
}

// IsKey reports whether key is a known configuration key.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Save writes the configuration to disk. Values that came only from the
// environment are left out.
func (m *Manager) Save() error {
	cfg := m.Get()

	m.mu.RLock()
	if !m.explicit["runtime_dir"] && !m.v.InConfig("runtime_dir") {
		cfg.RuntimeDir = ""
	}
	if !m.explicit["instance_signature"] && !m.v.InConfig("instance_signature") {
		cfg.InstanceSignature = ""
	}
	m.mu.RUnlock()

	log := logger.WithComponent("config")

	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		log.Error().Err(err).Str("config_dir", configDir).Msg("Failed to create config directory")
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		log.Error().Err(err).Str("path", m.configPath).Msg("Failed to write config")
		return err
	}

	log.Info().Str("path", m.configPath).Msg("Config saved successfully")
	return nil
}

// Watch re-reads the config file whenever it changes and passes the new
// configuration to onChange. It does nothing if the file does not exist.
func (m *Manager) Watch(onChange func(Config)) {
	if _, err := os.Stat(m.configPath); err != nil {
		return
	}
	m.v.OnConfigChange(func(e fsnotify.Event) {
		log := logger.WithComponent("config")
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		if err := m.reload(); err != nil {
			log.Warn().Err(err).Str("path", e.Name).Msg("Failed to reload config")
			return
		}
		log.Info().Str("path", e.Name).Msg("Config reloaded")
		onChange(m.Get())
	})
	m.v.WatchConfig()
}
