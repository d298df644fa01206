package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/vango-dev/fiber/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "fiber.json"

	// DefaultSlice is the default length of one work slice.
	DefaultSlice = "5ms"

	// DefaultMinRemaining is the default yield threshold.
	DefaultMinRemaining = "1ms"

	// DefaultInspectorHost is the default inspector bind host.
	DefaultInspectorHost = "localhost"

	// DefaultInspectorPort is the default inspector port.
	DefaultInspectorPort = 7070

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "fiber"
)

// Config represents the complete fiber.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Scene is the default scene file rendered by fiberctl.
	Scene string `json:"scene,omitempty"`

	// Scheduler contains work loop settings.
	Scheduler SchedulerConfig `json:"scheduler,omitempty"`

	// Inspector contains devtools server settings.
	Inspector InspectorConfig `json:"inspector,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// SchedulerConfig contains work loop settings.
type SchedulerConfig struct {
	// Slice is the wall-clock length of one work slice (e.g. "5ms").
	Slice string `json:"slice,omitempty"`

	// MinRemaining is the budget below which the loop yields (e.g. "1ms").
	MinRemaining string `json:"minRemaining,omitempty"`

	// Debug logs every unit of work.
	Debug bool `json:"debug,omitempty"`
}

// InspectorConfig contains devtools server settings.
type InspectorConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// AllowedOrigins lists origins accepted by the live stream.
	// Empty allows same-origin requests only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Disabled hides /metrics on the inspector.
	Disabled bool `json:"disabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			Slice:        DefaultSlice,
			MinRemaining: DefaultMinRemaining,
		},
		Inspector: InspectorConfig{
			Host: DefaultInspectorHost,
			Port: DefaultInspectorPort,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for fiber.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E131").
				WithDetail("No fiber.json found in " + filepath.Dir(path)).
				WithSuggestion("Create fiber.json or pass --config")
		}
		return nil, errors.New("E130").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E130").
			WithDetail("Failed to parse fiber.json: " + err.Error()).
			WithSuggestion("Check that fiber.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E130").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E130").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Scheduler.Slice == "" {
		c.Scheduler.Slice = DefaultSlice
	}
	if c.Scheduler.MinRemaining == "" {
		c.Scheduler.MinRemaining = DefaultMinRemaining
	}
	if c.Inspector.Host == "" {
		c.Inspector.Host = DefaultInspectorHost
	}
	if c.Inspector.Port == 0 {
		c.Inspector.Port = DefaultInspectorPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	slice, err := parseDuration("scheduler.slice", c.Scheduler.Slice)
	if err != nil {
		return err
	}
	minRemaining, err := parseDuration("scheduler.minRemaining", c.Scheduler.MinRemaining)
	if err != nil {
		return err
	}
	if minRemaining >= slice {
		return errors.New("E130").
			WithDetail(fmt.Sprintf("scheduler.minRemaining (%s) must be shorter than scheduler.slice (%s)", minRemaining, slice)).
			WithSuggestion("A slice must leave room for at least one unit of work")
	}
	if c.Inspector.Port < 0 || c.Inspector.Port > 65535 {
		return errors.New("E130").
			WithDetail("inspector.port must be between 0 and 65535")
	}
	return nil
}

// parseDuration parses a positive duration field.
func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.New("E130").
			WithDetail(fmt.Sprintf("%s: %q is not a duration", field, value)).
			WithSuggestion(`Use a Go duration such as "5ms"`).
			Wrap(err)
	}
	if d <= 0 {
		return 0, errors.New("E130").
			WithDetail(fmt.Sprintf("%s must be positive, got %s", field, value))
	}
	return d, nil
}

// SliceDuration returns the parsed slice length, or the default if the
// value is invalid.
func (c *Config) SliceDuration() time.Duration {
	if d, err := time.ParseDuration(c.Scheduler.Slice); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultSlice)
	return d
}

// MinRemainingDuration returns the parsed yield threshold, or the default
// if the value is invalid.
func (c *Config) MinRemainingDuration() time.Duration {
	if d, err := time.ParseDuration(c.Scheduler.MinRemaining); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultMinRemaining)
	return d
}

// InspectorAddress returns the listen address of the inspector.
func (c *Config) InspectorAddress() string {
	return c.Inspector.Host + ":" + strconv.Itoa(c.Inspector.Port)
}

// ScenePath returns the absolute path of the default scene, or "" if none
// is configured.
func (c *Config) ScenePath() string {
	if c.Scene == "" {
		return ""
	}
	if filepath.IsAbs(c.Scene) {
		return c.Scene
	}
	return filepath.Join(c.Dir(), c.Scene)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing fiber.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E131").
				WithDetail("No fiber.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest ancestor holding fiber.json.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
