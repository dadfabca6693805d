package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shelfplan/pkg/catalog"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/errors"
	"github.com/matzehuels/shelfplan/pkg/server"
	"github.com/matzehuels/shelfplan/pkg/storage"
)

// Config is the CLI config file.
//
//	catalog = "~/products.toml"
//
//	[storage]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/2"
//
//	[placement]
//	vertical_tolerance = 20
//
//	[server]
//	addr = ":8080"
type Config struct {
	Catalog   string            `toml:"catalog"`
	Storage   storage.Config    `toml:"storage"`
	Placement placement.Options `toml:"placement"`
	Server    ServerConfig      `toml:"server"`
}

// ServerConfig configures `shelfplan serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LoadConfig reads a config file. A missing file yields the defaults unless
// required is set. Unknown keys are rejected.
func LoadConfig(path string, required bool) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
		}
	case os.IsNotExist(err) && !required:
	case os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file %s not found", path)
	default:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s: %v", path, err)
	}

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Placement.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() error {
	c.Storage.SetDefaults()
	if c.Storage.Dir == "" {
		dir, err := dataDir()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve data directory")
		}
		c.Storage.Dir = filepath.Join(dir, "planograms")
	}
	c.Storage.Dir = expandHome(c.Storage.Dir)
	c.Catalog = expandHome(c.Catalog)
	c.Placement.SetDefaults()
	if c.Server.Addr == "" {
		c.Server.Addr = server.DefaultAddr
	}
	return nil
}

// loadCatalog returns the catalog file's products, or the built-in catalog.
func (c *Config) loadCatalog() (*catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Builtin(), nil
	}
	return catalog.Load(c.Catalog)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
