package cli

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/anchorui/pkg/errors"
	"github.com/matzehuels/anchorui/pkg/pipeline"
)

const (
	configFile = "config.toml"

	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"

	defaultListen = "127.0.0.1:7070"
)

// Config is the optional CLI config file. Flags override it; it overrides
// the built-in defaults.
type Config struct {
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	Formats   []string `toml:"formats"`
	Cache     string   `toml:"cache"`
	RedisAddr string   `toml:"redis_addr"`
	CacheTTL  duration `toml:"cache_ttl"`
	Listen    string   `toml:"listen"`

	// Path is the file the config was read from, empty for the defaults.
	Path string `toml:"-"`
}

// duration decodes Go duration strings such as "24h".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Width:     pipeline.DefaultWidth,
		Height:    pipeline.DefaultHeight,
		Formats:   []string{pipeline.FormatSVG},
		Cache:     cacheFile,
		RedisAddr: "localhost:6379",
		Listen:    defaultListen,
	}
}

// loadConfig reads c.ConfigPath, or the default config file when it exists.
// A missing default file yields the defaults.
func (c *CLI) loadConfig() (*Config, error) {
	path, explicit := c.ConfigPath, c.ConfigPath != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return defaultConfig(), nil
		}
		path = filepath.Join(dir, configFile)
	}
	cfg, err := readConfig(path)
	if stderrors.Is(err, fs.ErrNotExist) && !explicit {
		return defaultConfig(), nil
	}
	return cfg, err
}

func readConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	cfg.Path = path
	return cfg, nil
}

func (cfg *Config) validate() error {
	if err := errors.ValidateSize(cfg.Width, cfg.Height); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(cfg.Formats); err != nil {
		return err
	}
	switch cfg.Cache {
	case cacheFile, cacheRedis, cacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache must be file, redis or none, got %q", cfg.Cache)
	}
	if cfg.CacheTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache_ttl must not be negative")
	}
	return nil
}
