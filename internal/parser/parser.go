// Package parser builds a host model snapshot from an annotated Go package.
//
// Exported struct types become host structs. A "//sk:class" doc directive
// marks a class, "//sk:struct" carries plain struct flags, "//sk:enum" turns a
// named integer type into an enum and "//sk:static <Type>" attaches a package
// function to a struct as a static function. The first embedded struct field is
// the parent.
package parser

import (
	"fmt"
	"go/types"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"

	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/model/snapshot"
)

// ReturnValueName is the host name given to function results.
const ReturnValueName = "ReturnValue"

// Parser extracts a host model from Go packages.
type Parser interface {
	Parse(pkgPath string) (*snapshot.Model, error)
}

type parserImpl struct {
	logger zerolog.Logger
}

// New returns default parser.
func New(logger zerolog.Logger) Parser {
	return &parserImpl{logger: logger}
}

func (p *parserImpl) Parse(pkgPath string) (*snapshot.Model, error) {
	pkg, err := p.loadPackage(pkgPath)
	if err != nil {
		return nil, err
	}
	if pkg.Types == nil || pkg.Types.Scope() == nil {
		return nil, fmt.Errorf("type info unavailable for package %q", pkgPath)
	}

	b := &builder{
		logger:  p.logger,
		pkg:     pkg.Types,
		docs:    indexDocs(pkg.Syntax),
		model:   snapshot.New(),
		structs: map[*types.TypeName]*snapshot.Struct{},
		enums:   map[*types.TypeName]*snapshot.Enum{},
	}
	if err := b.build(); err != nil {
		return nil, fmt.Errorf("package %q: %w", pkgPath, err)
	}
	return b.model, nil
}

func (p *parserImpl) loadPackage(pkgPath string) (*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("load package %q: %w", pkgPath, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("package %q has compilation errors", pkgPath)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("package %q not found", pkgPath)
	}
	return pkgs[0], nil
}

type builder struct {
	logger  zerolog.Logger
	pkg     *types.Package
	docs    docIndex
	model   *snapshot.Model
	structs map[*types.TypeName]*snapshot.Struct
	enums   map[*types.TypeName]*snapshot.Enum
}

func (b *builder) build() error {
	typeNames, funcs := b.scopeObjects()

	// Declare first so that members may reference any type of the package.
	var declared []*types.TypeName
	for _, obj := range typeNames {
		ok, err := b.declare(obj)
		if err != nil {
			return err
		}
		if ok {
			declared = append(declared, obj)
		}
	}

	for _, obj := range declared {
		s, ok := b.structs[obj]
		if !ok {
			continue
		}
		if err := b.fillStruct(obj, s); err != nil {
			return fmt.Errorf("struct %s: %w", obj.Name(), err)
		}
	}

	for _, fn := range funcs {
		if err := b.addStatic(fn); err != nil {
			return fmt.Errorf("func %s: %w", fn.Name(), err)
		}
	}
	return nil
}

// scopeObjects returns the exported type names and functions of the package in
// declaration order.
func (b *builder) scopeObjects() ([]*types.TypeName, []*types.Func) {
	var typeNames []*types.TypeName
	var funcs []*types.Func
	scope := b.pkg.Scope()
	for _, name := range scope.Names() {
		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			if obj.Exported() && !obj.IsAlias() {
				typeNames = append(typeNames, obj)
			}
		case *types.Func:
			if obj.Exported() {
				funcs = append(funcs, obj)
			}
		}
	}
	sort.Slice(typeNames, func(i, j int) bool { return typeNames[i].Pos() < typeNames[j].Pos() })
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Pos() < funcs[j].Pos() })
	return typeNames, funcs
}

func (b *builder) declare(obj *types.TypeName) (bool, error) {
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return false, nil
	}
	if named.TypeParams().Len() > 0 {
		b.logger.Debug().Str("type", obj.Name()).Msg("generic type skipped")
		return false, nil
	}

	doc := b.docs[obj.Name()]
	dirs := parseDirectives(doc)
	tooltip, category := docText(doc), dirs.category()

	switch under := named.Underlying().(type) {
	case *types.Struct:
		flags, err := dirs.structFlags()
		if err != nil {
			return false, fmt.Errorf("type %s: %w", obj.Name(), err)
		}
		s := snapshot.NewStruct(obj.Name(), flags).SetDoc(tooltip, category)
		if err := b.model.AddStruct(s); err != nil {
			return false, err
		}
		b.structs[obj] = s
		return true, nil
	case *types.Basic:
		if !dirs.has(directiveEnum) {
			return false, nil
		}
		if under.Info()&types.IsInteger == 0 {
			return false, fmt.Errorf("enum %s: underlying type %s is not an integer", obj.Name(), under.Name())
		}
		e := snapshot.NewEnum(obj.Name(), b.enumValues(named)...).SetDoc(tooltip, category)
		if err := b.model.AddEnum(e); err != nil {
			return false, err
		}
		b.enums[obj] = e
		return true, nil
	default:
		return false, nil
	}
}

// enumValues lists the constants of type t in declaration order.
func (b *builder) enumValues(t *types.Named) []string {
	scope := b.pkg.Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), t) {
			consts = append(consts, c)
		}
	}
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })

	values := make([]string, 0, len(consts))
	for _, c := range consts {
		values = append(values, c.Name())
	}
	return values
}

func (b *builder) fillStruct(obj *types.TypeName, s *snapshot.Struct) error {
	st := obj.Type().Underlying().(*types.Struct)
	if parent := b.parentOf(obj.Name(), st); parent != nil {
		s.SetSuper(parent)
	}

	for _, f := range declaredFields(st) {
		tag, err := parseTag(st.Tag(f.index))
		if err != nil {
			return fmt.Errorf("field %s: %w", f.v.Name(), err)
		}
		if tag.skip {
			continue
		}
		name := f.v.Name()
		if tag.name != "" {
			name = tag.name
		}

		doc := b.docs[obj.Name()+"."+f.v.Name()]
		category := tag.category
		if category == "" {
			category = parseDirectives(doc).category()
		}
		opts := []snapshot.PropertyOption{
			snapshot.WithFlags(tag.flags),
			snapshot.WithDoc(docText(doc), category),
		}
		s.AddProperty(b.property(name, f.v.Type(), tag.class, opts...))
	}

	methods := declaredMethods(obj.Type().(*types.Named))
	for _, m := range methods {
		fn, ok := b.function(m, obj.Name()+"."+m.Name(), false)
		if ok {
			s.AddFunction(fn)
		}
	}
	return nil
}

func (b *builder) addStatic(fn *types.Func) error {
	doc := b.docs[fn.Name()]
	dirs := parseDirectives(doc)
	args, ok := dirs[directiveStatic]
	if !ok {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("//sk:%s takes exactly one type name", directiveStatic)
	}
	target, ok := b.model.Struct(args[0])
	if !ok {
		return fmt.Errorf("unknown struct %q", args[0])
	}
	f, ok := b.function(fn, fn.Name(), true)
	if ok {
		target.AddFunction(f)
	}
	return nil
}

func (b *builder) function(fn *types.Func, docKey string, isStatic bool) (*snapshot.Function, bool) {
	sig := fn.Type().(*types.Signature)
	if sig.Results().Len() > 1 {
		b.logger.Warn().
			Str("function", docKey).
			Int("results", sig.Results().Len()).
			Msg("function with multiple results skipped")
		return nil, false
	}

	var ret *snapshot.Property
	if sig.Results().Len() == 1 {
		ret = b.property(ReturnValueName, sig.Results().At(0).Type(), false)
	}
	params := make([]*snapshot.Property, 0, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		v := sig.Params().At(i)
		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("Param%d", i)
		}
		params = append(params, b.property(name, v.Type(), false))
	}

	doc := b.docs[docKey]
	f := snapshot.NewFunction(fn.Name(), isStatic, ret, params...).
		SetDoc(docText(doc), parseDirectives(doc).category())
	return f, true
}

// property maps a Go type onto a host property. Types without a host
// counterpart become KindOther and are filtered later by the type mapper.
func (b *builder) property(name string, t types.Type, classRef bool, opts ...snapshot.PropertyOption) *snapshot.Property {
	kind, extra := b.analyzeType(types.Unalias(t), classRef)
	return snapshot.NewProperty(name, kind, append(extra, opts...)...)
}

func (b *builder) analyzeType(t types.Type, classRef bool) (model.Kind, []snapshot.PropertyOption) {
	switch v := t.(type) {
	case *types.Basic:
		return basicKind(v), nil
	case *types.Named:
		obj := v.Obj()
		if e, ok := b.enums[obj]; ok {
			return model.KindInteger, []snapshot.PropertyOption{snapshot.WithEnum(e)}
		}
		switch under := v.Underlying().(type) {
		case *types.Struct:
			return model.KindStruct, []snapshot.PropertyOption{snapshot.WithStruct(b.structFor(v))}
		case *types.Basic:
			if obj.Name() == "Name" && under.Info()&types.IsString != 0 {
				return model.KindName, nil
			}
			return basicKind(under), nil
		case *types.Slice:
			return b.analyzeType(under, classRef)
		}
	case *types.Pointer:
		named, ok := types.Unalias(v.Elem()).(*types.Named)
		if !ok {
			break
		}
		if _, isStruct := named.Underlying().(*types.Struct); !isStruct {
			break
		}
		kind := model.KindObject
		if classRef {
			kind = model.KindClass
		}
		return kind, []snapshot.PropertyOption{snapshot.WithClass(b.structFor(named))}
	case *types.Slice:
		elem := b.property("", v.Elem(), classRef)
		return model.KindArray, []snapshot.PropertyOption{snapshot.WithElem(elem)}
	}
	return model.KindOther, nil
}

// structFor returns the model struct of a named struct type. Types declared
// outside the package are added as plain structs without flags.
func (b *builder) structFor(t *types.Named) *snapshot.Struct {
	obj := t.Obj()
	if s, ok := b.structs[obj]; ok {
		return s
	}
	if s, ok := b.model.Struct(obj.Name()); ok {
		return s
	}
	s := snapshot.NewStruct(obj.Name(), 0)
	// The name is free, checked above.
	_ = b.model.AddStruct(s)
	b.structs[obj] = s
	b.logger.Debug().Str("type", qualifiedName(obj)).Msg("external struct registered")
	return s
}

func basicKind(t *types.Basic) model.Kind {
	info := t.Info()
	switch {
	case info&types.IsBoolean != 0:
		return model.KindBool
	case info&types.IsInteger != 0:
		return model.KindInteger
	case info&types.IsFloat != 0:
		return model.KindFloat
	case info&types.IsString != 0:
		return model.KindString
	default:
		return model.KindOther
	}
}

func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return strings.Join([]string{obj.Pkg().Path(), obj.Name()}, ".")
}
