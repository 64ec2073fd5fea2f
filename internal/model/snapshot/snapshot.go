// Package snapshot is an in-memory host model. It is filled either from a YAML
// dump of the host reflection data or by the Go package parser, and is
// immutable once handed to the generator.
package snapshot

import (
	"fmt"
	"sort"

	"github.com/seitarof/sk-gen/internal/model"
)

// Model owns every struct and enum of one snapshot.
type Model struct {
	structs []*Struct
	enums   []*Enum
	byName  map[string]*Struct
	enumsBy map[string]*Enum
}

// New returns an empty model.
func New() *Model {
	return &Model{
		byName:  map[string]*Struct{},
		enumsBy: map[string]*Enum{},
	}
}

// AddStruct registers s. Names are unique per model.
func (m *Model) AddStruct(s *Struct) error {
	if _, ok := m.byName[s.name]; ok {
		return fmt.Errorf("duplicate struct %q", s.name)
	}
	m.byName[s.name] = s
	m.structs = append(m.structs, s)
	return nil
}

// AddEnum registers e. Names are unique per model.
func (m *Model) AddEnum(e *Enum) error {
	if _, ok := m.enumsBy[e.name]; ok {
		return fmt.Errorf("duplicate enum %q", e.name)
	}
	m.enumsBy[e.name] = e
	m.enums = append(m.enums, e)
	return nil
}

// Struct looks up a struct by its host name.
func (m *Model) Struct(name string) (*Struct, bool) {
	s, ok := m.byName[name]
	return s, ok
}

// Enum looks up an enum by its host name.
func (m *Model) Enum(name string) (*Enum, bool) {
	e, ok := m.enumsBy[name]
	return e, ok
}

// Structs returns every struct in registration order.
func (m *Model) Structs() []model.Struct {
	out := make([]model.Struct, 0, len(m.structs))
	for _, s := range m.structs {
		out = append(out, s)
	}
	return out
}

// Enums returns every enum sorted by name.
func (m *Model) Enums() []model.Enum {
	sorted := make([]*Enum, len(m.enums))
	copy(sorted, m.enums)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })
	out := make([]model.Enum, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, e)
	}
	return out
}

type doc struct {
	name     string
	tooltip  string
	category string
}

func (d *doc) Name() string     { return d.name }
func (d *doc) Tooltip() string  { return d.tooltip }
func (d *doc) Category() string { return d.category }

// Struct is a snapshot class or struct.
type Struct struct {
	doc
	super *Struct
	flags model.StructFlags
	props []*Property
	funcs []*Function
}

// NewStruct creates a struct without parent or members.
func NewStruct(name string, flags model.StructFlags) *Struct {
	return &Struct{doc: doc{name: name}, flags: flags}
}

// SetSuper links s below parent.
func (s *Struct) SetSuper(parent *Struct) *Struct {
	s.super = parent
	return s
}

// SetDoc sets the tooltip and category.
func (s *Struct) SetDoc(tooltip, category string) *Struct {
	s.tooltip = tooltip
	s.category = category
	return s
}

// AddProperty appends a member and makes s its owner.
func (s *Struct) AddProperty(p *Property) *Struct {
	p.owner = s
	s.props = append(s.props, p)
	return s
}

// AddFunction appends a function.
func (s *Struct) AddFunction(f *Function) *Struct {
	s.funcs = append(s.funcs, f)
	return s
}

func (s *Struct) Super() model.Struct {
	if s.super == nil {
		return nil
	}
	return s.super
}

func (s *Struct) Flags() model.StructFlags { return s.flags }

func (s *Struct) Properties() []model.Property {
	out := make([]model.Property, 0, len(s.props))
	for _, p := range s.props {
		out = append(out, p)
	}
	return out
}

func (s *Struct) Functions() []model.Function {
	out := make([]model.Function, 0, len(s.funcs))
	for _, f := range s.funcs {
		out = append(out, f)
	}
	return out
}

// Property is a snapshot member, parameter or return value.
type Property struct {
	doc
	kind  model.Kind
	flags model.PropertyFlags
	elem  *Property
	strct *Struct
	class *Struct
	enum  *Enum
	owner *Struct
}

// PropertyOption configures a Property.
type PropertyOption func(*Property)

// WithElem sets the element of an array property.
func WithElem(elem *Property) PropertyOption {
	return func(p *Property) { p.elem = elem }
}

// WithStruct sets the struct of a struct-typed property.
func WithStruct(s *Struct) PropertyOption {
	return func(p *Property) { p.strct = s }
}

// WithClass sets the class referenced by an object or class reference.
func WithClass(c *Struct) PropertyOption {
	return func(p *Property) { p.class = c }
}

// WithEnum marks an integer property as enum-backed.
func WithEnum(e *Enum) PropertyOption {
	return func(p *Property) { p.enum = e }
}

// WithFlags sets the property flags.
func WithFlags(flags model.PropertyFlags) PropertyOption {
	return func(p *Property) { p.flags |= flags }
}

// WithDoc sets the tooltip and category.
func WithDoc(tooltip, category string) PropertyOption {
	return func(p *Property) {
		p.tooltip = tooltip
		p.category = category
	}
}

// NewProperty creates a property of the given kind.
func NewProperty(name string, kind model.Kind, opts ...PropertyOption) *Property {
	p := &Property{doc: doc{name: name}, kind: kind}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Property) Kind() model.Kind           { return p.kind }
func (p *Property) Flags() model.PropertyFlags { return p.flags }

func (p *Property) Elem() model.Property {
	if p.elem == nil {
		return nil
	}
	return p.elem
}

func (p *Property) Struct() model.Struct {
	if p.strct == nil {
		return nil
	}
	return p.strct
}

func (p *Property) Class() model.Struct {
	if p.class == nil {
		return nil
	}
	return p.class
}

func (p *Property) Enum() model.Enum {
	if p.enum == nil {
		return nil
	}
	return p.enum
}

func (p *Property) Owner() model.Struct {
	if p.owner == nil {
		return nil
	}
	return p.owner
}

// Enum is a snapshot enumeration.
type Enum struct {
	doc
	values []string
}

// NewEnum creates an enum with the given values.
func NewEnum(name string, values ...string) *Enum {
	return &Enum{doc: doc{name: name}, values: values}
}

// SetDoc sets the tooltip and category.
func (e *Enum) SetDoc(tooltip, category string) *Enum {
	e.tooltip = tooltip
	e.category = category
	return e
}

func (e *Enum) Values() []string {
	out := make([]string, len(e.values))
	copy(out, e.values)
	return out
}

// Function is a snapshot function.
type Function struct {
	doc
	params   []*Property
	ret      *Property
	isStatic bool
}

// NewFunction creates a function; ret may be nil.
func NewFunction(name string, isStatic bool, ret *Property, params ...*Property) *Function {
	return &Function{doc: doc{name: name}, params: params, ret: ret, isStatic: isStatic}
}

// SetDoc sets the tooltip and category.
func (f *Function) SetDoc(tooltip, category string) *Function {
	f.tooltip = tooltip
	f.category = category
	return f
}

func (f *Function) Params() []model.Property {
	out := make([]model.Property, 0, len(f.params))
	for _, p := range f.params {
		out = append(out, p)
	}
	return out
}

func (f *Function) Return() model.Property {
	if f.ret == nil {
		return nil
	}
	return f.ret
}

func (f *Function) IsStatic() bool { return f.isStatic }
