package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmorgan81/imagegen/internal/param"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	StrategyLocal  = "local"
	StrategyRemote = "remote"

	envPrefix    = "IMAGEGEN_"
	endpointPath = "/api/generate-image"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	BaseURL        string        `yaml:"base_url"`
	Strategy       string        `yaml:"strategy"`
	Endpoint       string        `yaml:"endpoint"`
	ImageWidth     int           `yaml:"image_width"`
	ImageHeight    int           `yaml:"image_height"`
	HandlerDelay   time.Duration `yaml:"handler_delay"`
	LocalDelay     time.Duration `yaml:"local_delay"`
	ClearPrompt    bool          `yaml:"clear_prompt"`
	LogLevel       string        `yaml:"log_level"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Prompts        []string      `yaml:"prompts"`
	ParamPath      string        `yaml:"param_path"`
}

func Default() Config {
	return Config{
		Addr:         ":8080",
		ImageWidth:   512,
		ImageHeight:  512,
		HandlerDelay: time.Second,
		LocalDelay:   1500 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Load layers defaults, the optional YAML file at path, then IMAGEGEN_*
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	for _, key := range keys {
		if v, ok := os.LookupEnv(envPrefix + strings.ToUpper(key)); ok {
			if err := cfg.Set(key, v); err != nil {
				return Config{}, err
			}
		}
	}

	return cfg, cfg.Validate()
}

// ApplyParams overrides settings with values stored under ParamPath in the
// parameter store. Parameter names match the YAML keys.
func (c *Config) ApplyParams(ctx context.Context, fetcher param.Fetcher) error {
	if c.ParamPath == "" {
		return nil
	}
	params, err := fetcher.FetchAll(ctx, c.ParamPath)
	if err != nil {
		return fmt.Errorf("fetching parameters: %w", err)
	}
	for key, value := range params {
		if !lo.Contains(keys, key) {
			continue
		}
		if err := c.Set(key, value); err != nil {
			return err
		}
	}
	return c.Validate()
}

var keys = []string{
	"addr", "base_url", "strategy", "endpoint", "image_width", "image_height",
	"handler_delay", "local_delay", "clear_prompt", "log_level", "allowed_origins",
	"prompts", "param_path",
}

// Set assigns a single setting from its string form.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "addr":
		c.Addr = value
	case "base_url":
		c.BaseURL = strings.TrimRight(value, "/")
	case "strategy":
		c.Strategy = strings.ToLower(strings.TrimSpace(value))
	case "endpoint":
		c.Endpoint = value
	case "image_width":
		c.ImageWidth, err = strconv.Atoi(value)
	case "image_height":
		c.ImageHeight, err = strconv.Atoi(value)
	case "handler_delay":
		c.HandlerDelay, err = time.ParseDuration(value)
	case "local_delay":
		c.LocalDelay, err = time.ParseDuration(value)
	case "clear_prompt":
		c.ClearPrompt, err = strconv.ParseBool(value)
	case "log_level":
		c.LogLevel = value
	case "allowed_origins":
		c.AllowedOrigins = splitList(value, ",")
	case "prompts":
		c.Prompts = splitList(value, "\n")
	case "param_path":
		c.ParamPath = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if !lo.Contains([]string{"", StrategyLocal, StrategyRemote}, c.Strategy) {
		errs = append(errs, fmt.Errorf("strategy must be %q or %q, got %q", StrategyLocal, StrategyRemote, c.Strategy))
	}
	if c.ImageWidth <= 0 || c.ImageHeight <= 0 {
		errs = append(errs, fmt.Errorf("image dimensions must be positive, got %dx%d", c.ImageWidth, c.ImageHeight))
	}
	if c.HandlerDelay < 0 || c.LocalDelay < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}
	return errors.Join(errs...)
}

// PublicURL is the address the page is reachable at. Without an explicit
// base_url it is derived from the listen address.
func (c Config) PublicURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	host, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return "http://localhost"
	}
	if host == "" || net.ParseIP(host).IsUnspecified() {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// EndpointURL is where the remote strategy sends prompts.
func (c Config) EndpointURL() string {
	return lo.Ternary(c.Endpoint != "", c.Endpoint, c.PublicURL()+endpointPath)
}

// WithDefaultStrategy fills in strategy when no layer configured one.
func (c Config) WithDefaultStrategy(strategy string) Config {
	c.Strategy = lo.Ternary(c.Strategy != "", c.Strategy, strategy)
	return c
}

func splitList(value, sep string) []string {
	return lo.Compact(lo.Map(strings.Split(value, sep), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}
