// Package config loads the YAML configuration of ecmath tools: the logging
// level, the point cache backend and additional curve definitions.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/smallyu/go-ecmath/internal/logging"
	"github.com/smallyu/go-ecmath/pkg/ecc"
	"github.com/smallyu/go-ecmath/pkg/pointcache"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "ECMATH_CONFIG"

var logger = logging.MustGetLogger("config")

type Config struct {
	Logging Logging        `yaml:"logging"`
	Cache   Cache          `yaml:"cache"`
	Curves  []ecc.CurveHex `yaml:"curves"`
}

type Logging struct {
	Spec string `yaml:"spec"`
}

// Cache selects the point cache backend.
type Cache struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	MaxBytes int    `yaml:"maxBytes"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: Logging{Spec: "info"},
		Cache:   Cache{Backend: pointcache.KindMemory, MaxBytes: pointcache.DefaultMaxBytes},
	}
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and parses the file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "config %s", path)
	}
	return c, nil
}

// FromEnv loads the file named by ECMATH_CONFIG, or returns Default when the
// variable is unset.
func FromEnv() (*Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Validate checks cache settings and curve names.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "", pointcache.KindNone, pointcache.KindMemory:
	case pointcache.KindLevelDB:
		if c.Cache.Path == "" {
			return errors.New("cache.path is required for the leveldb backend")
		}
	default:
		return errors.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Cache.MaxBytes < 0 {
		return errors.Errorf("cache.maxBytes must not be negative, got %d", c.Cache.MaxBytes)
	}

	seen := make(map[string]bool, len(c.Curves))
	for i, def := range c.Curves {
		if def.Name == "" {
			return errors.Errorf("curves[%d]: missing name", i)
		}
		if ecc.IsNamedCurve(def.Name) {
			return errors.Errorf("curves[%d]: %q is a built-in curve", i, def.Name)
		}
		if seen[def.Name] {
			return errors.Errorf("curves[%d]: duplicate name %q", i, def.Name)
		}
		seen[def.Name] = true
	}
	return nil
}

// Apply activates the logging spec.
func (c *Config) Apply() error {
	return logging.ActivateSpec(c.Logging.Spec)
}

// RegisterCurves adds every configured curve to reg and builds it, so that
// malformed definitions are reported here rather than on first use.
func (c *Config) RegisterCurves(reg *ecc.Registry) error {
	for _, def := range c.Curves {
		if err := reg.Register(def); err != nil {
			return errors.WithMessagef(err, "curve %s", def.Name)
		}
		if _, err := reg.Get(def.Name); err != nil {
			return errors.WithMessagef(err, "curve %s", def.Name)
		}
	}
	logger.Infow("registered curves", "count", len(c.Curves), "names", reg.Names())
	return nil
}

// OpenCache opens the configured point cache backend. It returns nil when
// caching is disabled.
func (c *Config) OpenCache() (pointcache.Backend, error) {
	return pointcache.OpenBackend(c.Cache.Backend, c.Cache.Path, c.Cache.MaxBytes)
}
