// Package generator assembles SkookumScript files for host structs and writes
// them through a change-aware, two-phase FileWriter.
package generator

import (
	"bytes"
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog"

	"github.com/seitarof/sk-gen/internal/layout"
	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/naming"
	"github.com/seitarof/sk-gen/internal/typemap"
)

//go:embed templates/*.sk.tmpl
var templateFS embed.FS

// DataFileName holds the data member declarations of a class.
const DataFileName = "!Data.sk"

// Generator generates script files for host structs.
type Generator interface {
	Generate(structs []model.Struct) (Result, error)
}

// Result summarizes one generation run.
type Result struct {
	Classes     []ClassResult
	Staged      int
	Unchanged   int
	Skipped     int
	UsedClasses []model.Struct
}

// ClassResult describes the files generated for one struct.
type ClassResult struct {
	HostName string         `yaml:"host_name"`
	Name     string         `yaml:"name"`
	Path     string         `yaml:"path"`
	Members  int            `yaml:"members"`
	Methods  []MethodResult `yaml:"methods,omitempty"`
}

// MethodResult describes one generated method file.
type MethodResult struct {
	HostName string `yaml:"host_name"`
	Name     string `yaml:"name"`
	SymbolID uint32 `yaml:"symbol_id"`
	File     string `yaml:"file"`
	Static   bool   `yaml:"static,omitempty"`
}

// Option configures a Generator.
type Option func(*generatorImpl)

// WithManifest also writes a YAML manifest of the generated classes to path.
func WithManifest(path string) Option {
	return func(g *generatorImpl) { g.manifestPath = path }
}

type generatorImpl struct {
	mapper       typemap.Mapper
	resolver     *layout.Resolver
	writer       FileWriter
	logger       zerolog.Logger
	tmpl         *template.Template
	manifestPath string
}

type dataTemplateData struct {
	Comment string
	Members []memberTemplateData
}

type memberTemplateData struct {
	Comment string
	Type    string
	Name    string
}

type methodTemplateData struct {
	Comment string
	Params  []paramTemplateData
	Return  string
}

type paramTemplateData struct {
	Type string
	Name string
}

// New creates a script generator.
func New(m typemap.Mapper, r *layout.Resolver, w FileWriter, logger zerolog.Logger, opts ...Option) Generator {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.sk.tmpl"))
	g := &generatorImpl{
		mapper:   m,
		resolver: r,
		writer:   w,
		logger:   logger,
		tmpl:     tmpl,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate stages every file of structs and commits them in one pass. On error
// the staged files are discarded and the targets stay untouched.
func (g *generatorImpl) Generate(structs []model.Struct) (Result, error) {
	var res Result
	if len(structs) == 0 {
		return res, fmt.Errorf("no structs to generate")
	}

	claimed := map[string]string{}
	for _, s := range structs {
		cr, err := g.generateStruct(s, &res, claimed)
		if err != nil {
			return res, g.abort(fmt.Errorf("struct %s: %w", s.Name(), err))
		}
		res.Classes = append(res.Classes, cr)
	}

	if g.manifestPath != "" {
		content, err := renderManifest(res.Classes)
		if err != nil {
			return res, g.abort(fmt.Errorf("manifest: %w", err))
		}
		if err := g.stage(g.manifestPath, content, &res); err != nil {
			return res, g.abort(err)
		}
	}

	if err := g.writer.Commit(); err != nil {
		return res, fmt.Errorf("commit: %w", err)
	}
	res.UsedClasses = g.resolver.UsedClasses()
	return res, nil
}

func (g *generatorImpl) abort(err error) error {
	if derr := g.writer.Discard(); derr != nil {
		g.logger.Error().Err(derr).Msg("discard staged files")
	}
	return err
}

func (g *generatorImpl) generateStruct(s model.Struct, res *Result, claimed map[string]string) (ClassResult, error) {
	dir, err := g.resolver.ClassPath(s)
	if err != nil {
		return ClassResult{}, err
	}
	cr := ClassResult{HostName: s.Name(), Name: g.resolver.ClassName(s), Path: dir}

	kind := naming.EntityStruct
	if model.IsClass(s) {
		kind = naming.EntityClass
	}
	data := dataTemplateData{Comment: naming.CommentBlock(kind, s.Name(), s.Tooltip(), s.Category())}
	for _, p := range s.Properties() {
		if !g.mapper.IsPropertySupported(p) {
			res.Skipped++
			g.logger.Warn().
				Str("struct", s.Name()).
				Str("property", p.Name()).
				Stringer("kind", p.Kind()).
				Msg("property type not supported, skipped")
			continue
		}
		g.markReferenced(p)
		data.Members = append(data.Members, memberTemplateData{
			Comment: memberComment(naming.EntityProperty, p),
			Type:    g.mapper.DisplayName(p),
			Name:    naming.Variable(p.Name(), g.mapper.Classify(p) == typemap.Boolean, true),
		})
	}
	cr.Members = len(data.Members)
	if len(data.Members) > 0 {
		content, err := g.render("data.sk.tmpl", data)
		if err != nil {
			return cr, err
		}
		if err := g.stage(filepath.Join(dir, DataFileName), content, res); err != nil {
			return cr, err
		}
	}

	for _, f := range s.Functions() {
		mr, ok, err := g.generateMethod(s, f, res, claimed)
		if err != nil {
			return cr, err
		}
		if ok {
			cr.Methods = append(cr.Methods, mr)
		}
	}
	return cr, nil
}

func (g *generatorImpl) generateMethod(s model.Struct, f model.Function, res *Result, claimed map[string]string) (MethodResult, bool, error) {
	data := methodTemplateData{
		Comment: naming.CommentBlock(naming.EntityMethod, f.Name(), f.Tooltip(), f.Category()),
	}

	ret := f.Return()
	if ret != nil {
		if !g.mapper.IsPropertySupported(ret) {
			g.skipMethod(s, f, res, "return type not supported")
			return MethodResult{}, false, nil
		}
		data.Return = g.mapper.DisplayName(ret)
	}
	for _, p := range f.Params() {
		if !g.mapper.IsPropertySupported(p) {
			g.skipMethod(s, f, res, "parameter "+p.Name()+" type not supported")
			return MethodResult{}, false, nil
		}
		data.Params = append(data.Params, paramTemplateData{
			Type: g.mapper.DisplayName(p),
			Name: naming.Variable(p.Name(), g.mapper.Classify(p) == typemap.Boolean, false),
		})
	}

	name := naming.Method(f.Name(), ret != nil && ret.Kind() == model.KindBool)
	path, err := g.resolver.MethodPath(s, name, f.IsStatic())
	if err != nil {
		return MethodResult{}, false, err
	}
	if prev, ok := claimed[path]; ok {
		g.skipMethod(s, f, res, "name collides with "+prev)
		return MethodResult{}, false, nil
	}
	claimed[path] = s.Name() + "." + f.Name()

	if ret != nil {
		g.markReferenced(ret)
	}
	for _, p := range f.Params() {
		g.markReferenced(p)
	}

	content, err := g.render("method.sk.tmpl", data)
	if err != nil {
		return MethodResult{}, false, err
	}
	if err := g.stage(path, content, res); err != nil {
		return MethodResult{}, false, err
	}
	return MethodResult{
		HostName: f.Name(),
		Name:     name,
		SymbolID: naming.SymbolID(name),
		File:     filepath.Base(path),
		Static:   f.IsStatic(),
	}, true, nil
}

func (g *generatorImpl) skipMethod(s model.Struct, f model.Function, res *Result, reason string) {
	res.Skipped++
	g.logger.Warn().
		Str("struct", s.Name()).
		Str("function", f.Name()).
		Str("reason", reason).
		Msg("function skipped")
}

// markReferenced records the classes and structs a supported property names.
func (g *generatorImpl) markReferenced(p model.Property) {
	switch g.mapper.Classify(p) {
	case typemap.Object, typemap.Class:
		g.resolver.MarkUsed(p.Class())
	case typemap.Struct:
		g.resolver.MarkUsed(p.Struct())
	case typemap.List:
		g.markReferenced(p.Elem())
	}
}

func (g *generatorImpl) stage(path, content string, res *Result) error {
	changed, err := g.writer.WriteIfChanged(path, content)
	if err != nil {
		return err
	}
	if changed {
		res.Staged++
		g.logger.Debug().Str("file", path).Msg("staged")
	} else {
		res.Unchanged++
	}
	return nil
}

func (g *generatorImpl) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}
	return buf.String(), nil
}

// memberComment is a comment block without its trailing blank line so that it
// sits directly above the declaration.
func memberComment(kind naming.EntityKind, f model.Field) string {
	block := naming.CommentBlock(kind, f.Name(), f.Tooltip(), f.Category())
	return strings.TrimSuffix(block, "\n")
}
