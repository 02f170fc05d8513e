package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/viewtree/internal/errors"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "viewtree.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "viewtree.yaml"

	// DefaultPort is the default devtools server port.
	DefaultPort = 7070

	// DefaultHost is the default devtools server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default Prometheus metric namespace.
	DefaultNamespace = "viewtree"

	// DefaultJournalPath is the default event journal location.
	DefaultJournalPath = ".viewtree/journal.db"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Config represents the complete viewtree configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Engine contains lifecycle engine settings.
	Engine EngineConfig `json:"engine" yaml:"engine"`

	// Devtools contains devtools server settings.
	Devtools DevtoolsConfig `json:"devtools" yaml:"devtools"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Journal contains event journal settings.
	Journal JournalConfig `json:"journal" yaml:"journal"`

	// Log contains logging settings.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// EngineConfig contains lifecycle engine settings.
type EngineConfig struct {
	// ShadowBoundaries makes shadow roots act as mount boundaries.
	ShadowBoundaries bool `json:"shadowBoundaries" yaml:"shadowBoundaries"`
}

// DevtoolsConfig contains devtools server settings.
type DevtoolsConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Pretty enables pretty-printed HTML snapshots.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled exposes /metrics on the devtools server.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// JournalConfig contains event journal settings.
type JournalConfig struct {
	// Path is the bbolt database file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Engine: EngineConfig{
			ShadowBoundaries: true,
		},
		Devtools: DevtoolsConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Journal: JournalConfig{
			Path: DefaultJournalPath,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads configuration from the specified directory. It looks for
// viewtree.json, then viewtree.yaml and viewtree.yml. Defaults are returned
// when none exists.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName, "viewtree.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Cannot read " + path).
			Wrap(err)
	}

	cfg := New()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New(errors.CodeConfigParse).
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Load(wd)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML for .yaml
// and .yml files and JSON otherwise.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		// Add newline at end of file
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New(errors.CodeConfigParse).Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Devtools.Host == "" {
		c.Devtools.Host = DefaultHost
	}
	if c.Devtools.Port == 0 {
		c.Devtools.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Journal.Path == "" {
		c.Journal.Path = DefaultJournalPath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

var namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Devtools.Port < 1 || c.Devtools.Port > 65535 {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("devtools.port %d is out of range", c.Devtools.Port)
	}
	if !namespacePattern.MatchString(c.Metrics.Namespace) {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("metrics.namespace %q is not a valid metric name prefix", c.Metrics.Namespace).
			WithSuggestion("Use letters, digits and underscores only")
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New(errors.CodeConfigInvalid).
			WithDetailf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// DevtoolsAddress returns the listen address of the devtools server.
func (c *Config) DevtoolsAddress() string {
	return c.Devtools.Host + ":" + strconv.Itoa(c.Devtools.Port)
}

// DevtoolsURL returns the base URL of the devtools server.
func (c *Config) DevtoolsURL() string {
	return "http://" + c.DevtoolsAddress()
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

// JournalPath returns the journal path, relative paths resolved against the
// config file directory.
func (c *Config) JournalPath() string {
	if filepath.IsAbs(c.Journal.Path) || c.configPath == "" {
		return c.Journal.Path
	}
	return filepath.Join(filepath.Dir(c.configPath), c.Journal.Path)
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
