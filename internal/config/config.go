package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/marquee/internal/errors"
)

const (
	// ConfigFileName is the JSON configuration file.
	ConfigFileName = "marquee.json"

	// YAMLConfigFileName is the YAML configuration file, used when no JSON file exists.
	YAMLConfigFileName = "marquee.yaml"

	// DefaultPort is the default development server port.
	DefaultPort = 4000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultDist is the default bundle directory.
	DefaultDist = "dist"

	// DefaultAPIBaseURL is the backend the dev server proxies to.
	DefaultAPIBaseURL = "http://localhost:8080"

	// DefaultPollInterval is how often async task status is polled.
	DefaultPollInterval = 2 * time.Second

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Environment overrides.
const (
	EnvAPIURL = "MARQUEE_API_URL"
	EnvPort   = "MARQUEE_PORT"
)

// Config represents the complete marquee configuration.
type Config struct {
	API     APIConfig     `json:"api,omitempty" yaml:"api,omitempty"`
	Dev     DevConfig     `json:"dev,omitempty" yaml:"dev,omitempty"`
	Build   BuildConfig   `json:"build,omitempty" yaml:"build,omitempty"`
	Publish PublishConfig `json:"publish,omitempty" yaml:"publish,omitempty"`
	Poll    PollConfig    `json:"poll,omitempty" yaml:"poll,omitempty"`
	Log     LogConfig     `json:"log,omitempty" yaml:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string

	// dir is the project root.
	dir string
}

// APIConfig configures the ticket backend.
type APIConfig struct {
	// BaseURL is the backend origin (no trailing /api).
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`
}

// DevConfig configures the development server.
type DevConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// Reload enables the live-reload websocket.
	Reload *bool `json:"reload,omitempty" yaml:"reload,omitempty"`
}

// BuildConfig configures the bundle location.
type BuildConfig struct {
	Dist string `json:"dist,omitempty" yaml:"dist,omitempty"`
}

// PublishConfig configures bundle upload to S3.
type PublishConfig struct {
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// PollConfig configures polling of async tasks and of the dev server's
// bundle watcher.
type PollConfig struct {
	// Interval is a Go duration string (e.g., "2s").
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads marquee.json, falling back to marquee.yaml, from dir.
// When neither exists the defaults are returned.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}

	cfg := New()
	cfg.dir = dir
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from a specific file. The format follows
// the file extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("M101").Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("M102").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file syntax")
	}

	cfg.configPath = path
	cfg.dir = filepath.Dir(path)
	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the project root.
func (c *Config) Dir() string {
	if c.dir == "" {
		return "."
	}
	return c.dir
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultAPIBaseURL
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Reload == nil {
		reload := true
		c.Dev.Reload = &reload
	}
	if c.Build.Dist == "" {
		c.Build.Dist = DefaultDist
	}
	if c.Poll.Interval == "" {
		c.Poll.Interval = DefaultPollInterval.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("M103").
				WithDetail(fmt.Sprintf("%s=%q is not a port number", EnvPort, v))
		}
		c.Dev.Port = port
	}
	return nil
}

// Validate checks value ranges and formats.
func (c *Config) Validate() error {
	if c.Dev.Port < 1 || c.Dev.Port > 65535 {
		return errors.New("M103").
			WithDetail(fmt.Sprintf("dev.port %d is out of range", c.Dev.Port))
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("M103").
			WithDetail(fmt.Sprintf("api.baseURL %q is not an absolute URL", c.API.BaseURL))
	}
	d, err := time.ParseDuration(c.Poll.Interval)
	if err != nil {
		return errors.New("M103").
			WithDetail(fmt.Sprintf("poll.interval %q is not a duration", c.Poll.Interval)).
			Wrap(err)
	}
	if d <= 0 {
		return errors.New("M103").
			WithDetail(fmt.Sprintf("poll.interval %q must be positive", c.Poll.Interval))
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// DevAddress returns host:port for the dev server.
func (c *Config) DevAddress() string {
	return net.JoinHostPort(c.Dev.Host, strconv.Itoa(c.Dev.Port))
}

// DistPath returns the bundle directory resolved against the project root.
func (c *Config) DistPath() string {
	if filepath.IsAbs(c.Build.Dist) {
		return c.Build.Dist
	}
	return filepath.Join(c.Dir(), c.Build.Dist)
}

// ReloadEnabled reports whether live reload is on.
func (c *Config) ReloadEnabled() bool {
	return c.Dev.Reload == nil || *c.Dev.Reload
}

// PollInterval returns the parsed poll interval.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Poll.Interval)
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, errors.New("M103").
			WithDetail(fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return level, nil
}
