package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seitarof/sk-gen/internal/generator"
	"github.com/seitarof/sk-gen/internal/layout"
	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/model/snapshot"
	"github.com/seitarof/sk-gen/internal/parser"
	"github.com/seitarof/sk-gen/internal/typemap"
)

// Runner orchestrates model loading, layout and generation.
type Runner interface {
	Run(cfg *Config) (generator.Result, error)
}

type runnerImpl struct {
	parser parser.Parser
	mapper typemap.Mapper
	logger zerolog.Logger
}

// NewRunner creates a default runner implementation.
func NewRunner(p parser.Parser, m typemap.Mapper, logger zerolog.Logger) Runner {
	return &runnerImpl{
		parser: p,
		mapper: m,
		logger: logger,
	}
}

// Run executes a single generation cycle.
func (r *runnerImpl) Run(cfg *Config) (generator.Result, error) {
	m, err := r.loadModel(cfg)
	if err != nil {
		return generator.Result{}, fmt.Errorf("load model: %w", err)
	}

	structs := r.exportedStructs(cfg, m.Structs())
	if len(structs) == 0 {
		return generator.Result{}, fmt.Errorf("no exportable structs in host model")
	}

	depth := resolveDepth(cfg, r.logger)
	paths, err := layout.New(cfg.ScriptsRoot, depth)
	if err != nil {
		return generator.Result{}, err
	}

	w := generator.NewFileWriter()
	if cfg.DryRun {
		w = generator.NewDryRunWriter()
	}
	var opts []generator.Option
	if cfg.Manifest != "" {
		opts = append(opts, generator.WithManifest(cfg.Manifest))
	}

	g := generator.New(r.mapper, paths, w, r.logger, opts...)
	result, err := g.Generate(structs)
	if err != nil {
		return result, err
	}
	r.logSummary(cfg, depth, result)
	return result, nil
}

func (r *runnerImpl) loadModel(cfg *Config) (*snapshot.Model, error) {
	if cfg.ModelPath != "" {
		return snapshot.LoadYAMLFile(cfg.ModelPath)
	}
	return r.parser.Parse(cfg.GoPackage)
}

// exportedStructs keeps every class and every struct the mapper can bind,
// narrowed by the include filter.
func (r *runnerImpl) exportedStructs(cfg *Config, all []model.Struct) []model.Struct {
	out := make([]model.Struct, 0, len(all))
	for _, s := range all {
		if !cfg.Includes(s.Name()) {
			continue
		}
		if !model.IsClass(s) && !typemap.IsStructSupported(s) {
			r.logger.Debug().Str("struct", s.Name()).Msg("struct not exportable, skipped")
			continue
		}
		out = append(out, s)
	}
	return out
}

func (r *runnerImpl) logSummary(cfg *Config, depth int, res generator.Result) {
	msg := "scripts generated"
	if cfg.DryRun {
		msg = "dry run, nothing written"
	}
	r.logger.Info().
		Str("root", cfg.ScriptsRoot).
		Int("depth", depth).
		Int("classes", len(res.Classes)).
		Int("staged", res.Staged).
		Int("unchanged", res.Unchanged).
		Int("skipped", res.Skipped).
		Msg(msg)

	for _, s := range res.UsedClasses {
		r.logger.Debug().Str("class", s.Name()).Msg("used")
	}
}
