// Package model describes the read-only view of the host object model that the
// generator consumes. Implementations are owned by the host; the generator
// never mutates them.
package model

// Kind is the coarse-grained declared kind of a host property.
type Kind int

const (
	KindOther Kind = iota
	KindInteger
	KindFloat
	KindString
	KindName
	KindBool
	KindStruct
	KindObject
	KindClass
	KindArray
)

var kindNames = [...]string{
	KindOther:   "other",
	KindInteger: "integer",
	KindFloat:   "float",
	KindString:  "string",
	KindName:    "name",
	KindBool:    "bool",
	KindStruct:  "struct",
	KindObject:  "object",
	KindClass:   "class",
	KindArray:   "array",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "other"
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to its Kind. Unknown names yield KindOther
// and false.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindOther, false
}

// PropertyFlags is the set of host property flags the generator cares about.
type PropertyFlags uint32

const (
	PropEditorOnly PropertyFlags = 1 << iota
	PropLazyRef
	PropWeakRef
	PropSoftRef
)

// Has reports whether any of the given flags is set.
func (f PropertyFlags) Has(flags PropertyFlags) bool { return f&flags != 0 }

// StructFlags is the set of host struct/class flags the generator cares about.
type StructFlags uint32

const (
	StructIsClass StructFlags = 1 << iota
	StructHasDefaults
	StructRequiredAPI
	StructMinimalAPI
	StructPlainOldData
	StructEditorOnly
)

// Has reports whether any of the given flags is set.
func (f StructFlags) Has(flags StructFlags) bool { return f&flags != 0 }

// Field is what every named host entity exposes.
type Field interface {
	Name() string
	// Tooltip is the host documentation text, empty when there is none.
	Tooltip() string
	// Category is the host editor category, empty when there is none.
	Category() string
}

// Struct is a host class or plain struct. Implementations must be comparable
// so that structs can key run-scoped sets.
type Struct interface {
	Field
	// Super returns the parent, or nil at the root of the chain.
	Super() Struct
	Flags() StructFlags
	// Properties returns the declared members in declaration order.
	Properties() []Property
	// Functions returns the declared functions in declaration order.
	Functions() []Function
}

// Property is a host member, parameter or return value.
type Property interface {
	Field
	Kind() Kind
	Flags() PropertyFlags
	// Elem is the element of an array property.
	Elem() Property
	// Struct is the struct of a struct-typed property.
	Struct() Struct
	// Class is the class referenced by an object or class reference.
	Class() Struct
	// Enum is non-nil when an integer property is enum-backed.
	Enum() Enum
	// Owner is the struct declaring the property, nil for parameters.
	Owner() Struct
}

// Enum is a host enumeration.
type Enum interface {
	Field
	Values() []string
}

// Function is a host function exposed on a struct.
type Function interface {
	Field
	Params() []Property
	// Return is nil for functions without a return value.
	Return() Property
	IsStatic() bool
}

// IsClass reports whether s is a class rather than a plain struct.
func IsClass(s Struct) bool {
	return s != nil && s.Flags().Has(StructIsClass)
}
