package typemap

import "github.com/seitarof/sk-gen/internal/model"

// DefaultRules returns built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		&SimpleKindRule{},
		&StructRule{},
		&EnumRule{},
		&ClassRule{},
		&ObjectRule{},
		&ListRule{},
	}
}

// SimpleKindRule: scalar host kinds map one to one.
type SimpleKindRule struct{}

func (r *SimpleKindRule) Name() string { return "simple-kind" }

func (r *SimpleKindRule) Try(p model.Property) (TypeID, bool) {
	switch p.Kind() {
	case model.KindInteger:
		if p.Enum() == nil {
			return Integer, true
		}
	case model.KindFloat:
		return Real, true
	case model.KindString:
		return String, true
	case model.KindName:
		return Name, true
	case model.KindBool:
		return Boolean, true
	}
	return None, false
}

// StructRule: well-known math structs, then supported plain structs.
type StructRule struct{}

func (r *StructRule) Name() string { return "struct" }

func (r *StructRule) Try(p model.Property) (TypeID, bool) {
	if p.Kind() != model.KindStruct {
		return None, false
	}
	return StructType(p.Struct()), true
}

// EnumRule: enum-backed integers.
type EnumRule struct{}

func (r *EnumRule) Name() string { return "enum" }

func (r *EnumRule) Try(p model.Property) (TypeID, bool) {
	if p.Enum() == nil {
		return None, false
	}
	return Enum, true
}

// ClassRule: class references.
type ClassRule struct{}

func (r *ClassRule) Name() string { return "class" }

func (r *ClassRule) Try(p model.Property) (TypeID, bool) {
	if p.Kind() != model.KindClass {
		return None, false
	}
	return Class, true
}

// ObjectRule: object references to classes scripts can name.
type ObjectRule struct{}

func (r *ObjectRule) Name() string { return "object" }

func (r *ObjectRule) Try(p model.Property) (TypeID, bool) {
	if p.Kind() != model.KindObject {
		return None, false
	}
	c := p.Class()
	if c == nil {
		return None, true
	}
	if HasStaticClass(c) || c.Name() == rootObjectName {
		return Object, true
	}
	return None, true
}

// ListRule: arrays of supported, non-list elements.
type ListRule struct {
	mapper Mapper
}

func (r *ListRule) Name() string { return "list" }

func (r *ListRule) SetMapper(m Mapper) { r.mapper = m }

func (r *ListRule) Try(p model.Property) (TypeID, bool) {
	if p.Kind() != model.KindArray {
		return None, false
	}
	elem := p.Elem()
	if elem == nil || r.mapper == nil {
		return None, true
	}
	// Arrays of arrays have no SkookumScript equivalent.
	if !r.mapper.IsPropertySupported(elem) || r.mapper.Classify(elem) == List {
		return None, true
	}
	return List, true
}
