package cli

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml"
)

// Config stores CLI options for a single generation run.
type Config struct {
	ModelPath   string   `toml:"model"`
	GoPackage   string   `toml:"go_package"`
	ScriptsRoot string   `toml:"scripts"`
	Depth       int      `toml:"depth"`
	ProjectIni  string   `toml:"project_ini"`
	Overlay     string   `toml:"overlay"`
	Include     []string `toml:"include"`
	LogLevel    string   `toml:"log_level"`
	DryRun      bool     `toml:"dry_run"`
	Watch       bool     `toml:"watch"`
	Manifest    string   `toml:"manifest"`

	ConfigFile  string `toml:"-"`
	ShowVersion bool   `toml:"-"`
}

// LoadConfigFile reads a TOML config file. Keys match the long flag names
// with dashes replaced by underscores.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Includes reports whether the host type name passes the include filter. An
// empty filter includes everything.
func (c *Config) Includes(name string) bool {
	if len(c.Include) == 0 {
		return true
	}
	for _, n := range c.Include {
		if n == name {
			return true
		}
	}
	return false
}

// WatchPath returns the file or directory whose changes trigger a re-run.
func (c *Config) WatchPath() string {
	if c.ModelPath != "" {
		return c.ModelPath
	}
	return c.GoPackage
}
