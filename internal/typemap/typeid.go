package typemap

// TypeID identifies a SkookumScript type. None doubles as the "unsupported"
// result of every classification.
type TypeID int

const (
	None TypeID = iota
	Integer
	Real
	Boolean
	String
	Vector2
	Vector3
	Vector4
	Rotation
	RotationAngles
	Transform
	Color
	Name
	Enum
	Struct
	Class
	Object
	List

	typeIDCount
)

var typeIDNames = [typeIDCount]string{
	None:           "nil",
	Integer:        "Integer",
	Real:           "Real",
	Boolean:        "Boolean",
	String:         "String",
	Vector2:        "Vector2",
	Vector3:        "Vector3",
	Vector4:        "Vector4",
	Rotation:       "Rotation",
	RotationAngles: "RotationAngles",
	Transform:      "Transform",
	Color:          "Color",
	Name:           "Name",
	Enum:           "Enum",
	Struct:         "UStruct",
	Class:          "EntityClass",
	Object:         "Entity",
	List:           "List",
}

// String returns the canonical SkookumScript class name of id.
func (id TypeID) String() string {
	if id < 0 || id >= typeIDCount {
		return typeIDNames[None]
	}
	return typeIDNames[id]
}

// Supported reports whether id is anything but None.
func (id TypeID) Supported() bool { return id > None && id < typeIDCount }

// wellKnownStructs maps host math and color structs onto built-in
// SkookumScript classes.
var wellKnownStructs = map[string]TypeID{
	"Vector2D":                 Vector2,
	"Vector":                   Vector3,
	"Vector_NetQuantize":       Vector3,
	"Vector_NetQuantizeNormal": Vector3,
	"Vector4":                  Vector4,
	"Quat":                     Rotation,
	"Rotator":                  RotationAngles,
	"Transform":                Transform,
	"Color":                    Color,
	"LinearColor":              Color,
}
