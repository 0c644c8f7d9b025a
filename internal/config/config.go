package config

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/AndreasArvidsson/jRouter/internal/errors"
	"github.com/AndreasArvidsson/jRouter/pkg/navbar"
	"github.com/AndreasArvidsson/jRouter/pkg/router"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "jrouter.json"

	// DefaultPort is the default development server port.
	DefaultPort = 3000

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultTarget is the default content container selector.
	DefaultTarget = "#content"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "jrouter"

	// DefaultHTTPTimeout is the default timeout of the HTTP loader.
	DefaultHTTPTimeout = "10s"
)

// Loader kinds.
const (
	LoaderFS   = "fs"
	LoaderHTTP = "http"
	LoaderS3   = "s3"
)

// Config represents the complete jrouter.json configuration.
type Config struct {
	// Target is the CSS selector of the container content is rendered into.
	Target string `json:"target"`

	// Initialize starts routing as soon as a browser connects.
	// When false, the router waits for an explicit start.
	Initialize bool `json:"initialize"`

	// Navbar describes how the active link is highlighted.
	Navbar navbar.Options `json:"navbar,omitempty"`

	// Routes are registered in order. Order breaks specificity ties.
	Routes []RouteConfig `json:"routes,omitempty"`

	// Loader selects where route targets are fetched from.
	Loader LoaderConfig `json:"loader,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// RouteConfig is one route registration.
type RouteConfig struct {
	// Path is the route pattern, e.g. "/users/{id:\\d+}" or "404".
	Path string `json:"path"`

	// File is the target resource fetched for the route.
	File string `json:"file"`
}

// LoaderConfig selects and configures the content loader.
type LoaderConfig struct {
	// Kind is "fs", "http" or "s3".
	Kind string `json:"kind,omitempty"`

	// Dir is the fragment directory for the fs loader.
	Dir string `json:"dir,omitempty"`

	// BaseURL is the fragment base URL for the http loader.
	BaseURL string `json:"baseURL,omitempty"`

	// Timeout is the http loader request timeout (e.g., "5s").
	Timeout string `json:"timeout,omitempty"`

	// Bucket, Prefix, Region and Endpoint configure the s3 loader.
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`

	// MaxSize limits the size of a fetched fragment in bytes (0 = no limit).
	MaxSize int64 `json:"maxSize,omitempty"`
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Title is the page title of the served shell page.
	Title string `json:"title,omitempty"`

	// Static is an optional directory served under /static/.
	Static string `json:"static,omitempty"`

	// Index is an optional page replacing the generated shell page.
	Index string `json:"index,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics and records navigation metrics.
	Enabled bool `json:"enabled,omitempty"`

	// Namespace is the metrics namespace.
	Namespace string `json:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Target:     DefaultTarget,
		Initialize: true,
		Navbar: navbar.Options{
			Class: navbar.DefaultClass,
		},
		Loader: LoaderConfig{
			Kind:    LoaderFS,
			Dir:     ".",
			Timeout: DefaultHTTPTimeout,
		},
		Dev: DevConfig{
			Port:  DefaultPort,
			Host:  DefaultHost,
			Title: "jRouter",
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for jrouter.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E401").
				WithDetail("No jrouter.json found in " + filepath.Dir(path)).
				WithSuggestion("Run 'jrouter init' to create one")
		}
		return nil, errors.New("E005").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E005").
			WithDetail("Failed to parse jrouter.json: " + err.Error()).
			WithSuggestion("Check that jrouter.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

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
		return errors.New("E005").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E005").Wrap(err)
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
	if c.Target == "" {
		c.Target = DefaultTarget
	}
	if c.Navbar.Class == "" {
		c.Navbar.Class = navbar.DefaultClass
	}

	// Loader
	if c.Loader.Kind == "" {
		c.Loader.Kind = LoaderFS
	}
	if c.Loader.Kind == LoaderFS && c.Loader.Dir == "" {
		c.Loader.Dir = "."
	}
	if c.Loader.Timeout == "" {
		c.Loader.Timeout = DefaultHTTPTimeout
	}

	// Dev
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("E005").
			WithDetail("Port must be between 0 and 65535")
	}

	switch c.Loader.Kind {
	case LoaderFS:
		if c.Loader.Dir == "" {
			return errors.New("E006").WithDetail("loader.dir is required for the fs loader")
		}
	case LoaderHTTP:
		if c.Loader.BaseURL == "" {
			return errors.New("E006").WithDetail("loader.baseURL is required for the http loader")
		}
		if _, err := c.HTTPTimeout(); err != nil {
			return errors.New("E006").WithDetail("loader.timeout: " + err.Error())
		}
	case LoaderS3:
		if c.Loader.Bucket == "" {
			return errors.New("E006").WithDetail("loader.bucket is required for the s3 loader")
		}
	default:
		return errors.New("E006").
			WithDetail("Unknown loader kind " + strconv.Quote(c.Loader.Kind)).
			WithSuggestion(`Use "fs", "http" or "s3"`)
	}

	if c.Loader.MaxSize < 0 {
		return errors.New("E006").WithDetail("loader.maxSize must not be negative")
	}

	for i, r := range c.Routes {
		if _, err := router.Compile(r.Path, r.File); err != nil {
			return errors.New("E005").
				WithDetail("routes[" + strconv.Itoa(i) + "]").
				Wrap(err)
		}
	}

	return nil
}

// RouteTable compiles the configured routes into a table, in order.
func (c *Config) RouteTable() (*router.Table, error) {
	table := router.NewTable()
	for _, r := range c.Routes {
		if _, err := table.Register(r.Path, r.File); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// HTTPTimeout parses the http loader timeout.
func (c *Config) HTTPTimeout() (time.Duration, error) {
	timeout := c.Loader.Timeout
	if timeout == "" {
		timeout = DefaultHTTPTimeout
	}
	return time.ParseDuration(timeout)
}

// LoaderDir returns the absolute path of the fs loader directory.
func (c *Config) LoaderDir() string {
	return c.resolve(c.Loader.Dir)
}

// StaticDir returns the absolute path of the static directory, or "" when
// none is configured.
func (c *Config) StaticDir() string {
	if c.Dev.Static == "" {
		return ""
	}
	return c.resolve(c.Dev.Static)
}

// IndexPath returns the absolute path of the custom shell page, or "" when
// none is configured.
func (c *Config) IndexPath() string {
	if c.Dev.Index == "" {
		return ""
	}
	return c.resolve(c.Dev.Index)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return net.JoinHostPort(c.Dev.Host, strconv.Itoa(c.Dev.Port))
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing jrouter.json, or an error if not found.
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
			return "", errors.New("E401").
				WithDetail("No jrouter.json found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'jrouter init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
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
