package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	defaultLogLevel = "info"
	defaultOverlay  = "Project-Generated-C++"
)

// ParseArgs parses command line arguments into Config. Values from the
// --config file apply to every flag not given on the command line.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var includeRaw string

	fs := pflag.NewFlagSet("sk-gen", pflag.ContinueOnError)
	fs.StringVarP(&cfg.ModelPath, "model", "m", "", "YAML host model snapshot")
	fs.StringVar(&cfg.GoPackage, "go-package", "", "annotated Go package to read the host model from")
	fs.StringVarP(&cfg.ScriptsRoot, "scripts", "o", "", "scripts overlay root directory")
	fs.IntVar(&cfg.Depth, "depth", 0, "class path depth (0 reads it from --project-ini)")
	fs.StringVar(&cfg.ProjectIni, "project-ini", "", "project ini file declaring the overlay depth")
	fs.StringVar(&cfg.Overlay, "overlay", defaultOverlay, "overlay name to look up in --project-ini")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", "", "TOML config file")
	fs.StringVar(&includeRaw, "include", "", "comma-separated host type names to generate")
	fs.StringVar(&cfg.LogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "report changes without writing files")
	fs.BoolVarP(&cfg.Watch, "watch", "w", false, "regenerate when the model file or package directory changes")
	fs.StringVar(&cfg.Manifest, "manifest", "", "also write a YAML manifest of generated classes")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}
	cfg.Include = splitCommaList(includeRaw)

	if cfg.ConfigFile != "" {
		fileCfg, err := LoadConfigFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = mergeConfig(fileCfg, cfg, fs.Changed)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig overlays the flags that were set explicitly onto the file
// config.
func mergeConfig(file, flags *Config, changed func(name string) bool) *Config {
	out := *file
	out.ConfigFile = flags.ConfigFile
	out.ShowVersion = flags.ShowVersion

	pick := func(name string, dst *string, src string) {
		if changed(name) || *dst == "" {
			*dst = src
		}
	}
	pick("model", &out.ModelPath, flags.ModelPath)
	pick("go-package", &out.GoPackage, flags.GoPackage)
	pick("scripts", &out.ScriptsRoot, flags.ScriptsRoot)
	pick("project-ini", &out.ProjectIni, flags.ProjectIni)
	pick("overlay", &out.Overlay, flags.Overlay)
	pick("log-level", &out.LogLevel, flags.LogLevel)
	pick("manifest", &out.Manifest, flags.Manifest)

	if changed("depth") {
		out.Depth = flags.Depth
	}
	if changed("include") {
		out.Include = flags.Include
	}
	if changed("dry-run") {
		out.DryRun = flags.DryRun
	}
	if changed("watch") {
		out.Watch = flags.Watch
	}
	return &out
}

func validate(cfg *Config) error {
	hasModel := strings.TrimSpace(cfg.ModelPath) != ""
	hasPackage := strings.TrimSpace(cfg.GoPackage) != ""
	if hasModel == hasPackage {
		return fmt.Errorf("exactly one of --model and --go-package is required")
	}
	if strings.TrimSpace(cfg.ScriptsRoot) == "" {
		return fmt.Errorf("--scripts is required")
	}
	if cfg.Depth < 0 {
		return fmt.Errorf("--depth must not be negative, got %d", cfg.Depth)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	if cfg.DryRun && cfg.Watch {
		return fmt.Errorf("--dry-run and --watch cannot be combined")
	}
	return nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
