// Package typemap classifies host properties into SkookumScript types.
package typemap

import (
	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/naming"
)

const rootObjectName = "Object"

const excludedPropertyFlags = model.PropEditorOnly |
	model.PropLazyRef |
	model.PropWeakRef |
	model.PropSoftRef

// Mapper classifies properties and names their SkookumScript types.
type Mapper interface {
	Classify(p model.Property) TypeID
	IsPropertySupported(p model.Property) bool
	DisplayName(p model.Property) string
}

// Rule tries to classify one property. A rule that returns true decides the
// result, including None.
type Rule interface {
	Name() string
	Try(p model.Property) (TypeID, bool)
}

// MapperAware rules classify nested properties through the whole chain.
type MapperAware interface {
	SetMapper(Mapper)
}

type mapperImpl struct {
	rules []Rule
}

// New builds a mapper with a rule chain.
func New(rules ...Rule) Mapper {
	m := &mapperImpl{rules: rules}
	for _, rule := range rules {
		if aware, ok := rule.(MapperAware); ok {
			aware.SetMapper(m)
		}
	}
	return m
}

// Default builds a mapper with DefaultRules.
func Default() Mapper {
	return New(DefaultRules()...)
}

func (m *mapperImpl) Classify(p model.Property) TypeID {
	if p == nil {
		return None
	}
	for _, rule := range m.rules {
		if id, ok := rule.Try(p); ok {
			return id
		}
	}
	return None
}

func (m *mapperImpl) IsPropertySupported(p model.Property) bool {
	if p == nil || p.Flags().Has(excludedPropertyFlags) {
		return false
	}
	return m.Classify(p) != None
}

func (m *mapperImpl) DisplayName(p model.Property) string {
	id := m.Classify(p)
	switch id {
	case Object:
		return naming.ClassName(p.Class().Name())
	case Struct:
		return naming.ClassName(p.Struct().Name())
	case Enum:
		return p.Enum().Name()
	case List:
		return "List{" + m.DisplayName(p.Elem()) + "}"
	}
	return id.String()
}

// StructType maps a struct onto a built-in SkookumScript class, UStruct for
// other supported structs, or None.
func StructType(s model.Struct) TypeID {
	if s == nil {
		return None
	}
	if id, ok := wellKnownStructs[s.Name()]; ok {
		return id
	}
	if IsStructSupported(s) {
		return Struct
	}
	return None
}

// IsStructSupported reports whether a plain struct can be bound: it must have
// default values or be explicitly exported.
func IsStructSupported(s model.Struct) bool {
	if s == nil || model.IsClass(s) {
		return false
	}
	return s.Flags().Has(model.StructHasDefaults | model.StructRequiredAPI)
}

// IsPlainOldData reports whether a plain struct can be copied bytewise.
func IsPlainOldData(s model.Struct) bool {
	if s == nil || model.IsClass(s) {
		return false
	}
	return s.Flags().Has(model.StructPlainOldData)
}

// HasStaticClass reports whether scripts can reach the class accessor of c.
func HasStaticClass(c model.Struct) bool {
	return c != nil && c.Flags().Has(model.StructRequiredAPI|model.StructMinimalAPI)
}
