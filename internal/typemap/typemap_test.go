package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/model/snapshot"
)

func TestClassify_SimpleKinds(t *testing.T) {
	m := Default()
	color := snapshot.NewEnum("EColor", "Red", "Green")

	tests := []struct {
		name string
		prop *snapshot.Property
		want TypeID
	}{
		{name: "integer", prop: snapshot.NewProperty("Count", model.KindInteger), want: Integer},
		{name: "float", prop: snapshot.NewProperty("Speed", model.KindFloat), want: Real},
		{name: "string", prop: snapshot.NewProperty("Label", model.KindString), want: String},
		{name: "name", prop: snapshot.NewProperty("Tag", model.KindName), want: Name},
		{name: "bool", prop: snapshot.NewProperty("bHidden", model.KindBool), want: Boolean},
		{name: "enum backed integer", prop: snapshot.NewProperty("Tint", model.KindInteger, snapshot.WithEnum(color)), want: Enum},
		{name: "other", prop: snapshot.NewProperty("Delegate", model.KindOther), want: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Classify(tt.prop))
		})
	}
}

func TestClassify_Structs(t *testing.T) {
	m := Default()

	tests := []struct {
		name   string
		strct  *snapshot.Struct
		want   TypeID
		render string
	}{
		{name: "vector2d", strct: snapshot.NewStruct("Vector2D", 0), want: Vector2, render: "Vector2"},
		{name: "vector", strct: snapshot.NewStruct("Vector", 0), want: Vector3, render: "Vector3"},
		{name: "quantized vector", strct: snapshot.NewStruct("Vector_NetQuantizeNormal", 0), want: Vector3, render: "Vector3"},
		{name: "vector4", strct: snapshot.NewStruct("Vector4", 0), want: Vector4, render: "Vector4"},
		{name: "quat", strct: snapshot.NewStruct("Quat", 0), want: Rotation, render: "Rotation"},
		{name: "rotator", strct: snapshot.NewStruct("Rotator", 0), want: RotationAngles, render: "RotationAngles"},
		{name: "transform", strct: snapshot.NewStruct("Transform", 0), want: Transform, render: "Transform"},
		{name: "linear color", strct: snapshot.NewStruct("LinearColor", 0), want: Color, render: "Color"},
		{name: "struct with defaults", strct: snapshot.NewStruct("HitResult", model.StructHasDefaults), want: Struct, render: "HitResult"},
		{name: "struct with required api", strct: snapshot.NewStruct("Timecode", model.StructRequiredAPI), want: Struct, render: "Timecode"},
		{name: "opaque struct", strct: snapshot.NewStruct("Opaque", 0), want: None, render: "nil"},
		{name: "class is not a struct", strct: snapshot.NewStruct("Widget", model.StructIsClass|model.StructHasDefaults), want: None, render: "nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := snapshot.NewProperty("Value", model.KindStruct, snapshot.WithStruct(tt.strct))
			assert.Equal(t, tt.want, m.Classify(p))
			assert.Equal(t, tt.render, m.DisplayName(p))
		})
	}
}

func TestClassify_References(t *testing.T) {
	m := Default()
	object := snapshot.NewStruct("Object", model.StructIsClass)
	actor := snapshot.NewStruct("Actor", model.StructIsClass|model.StructRequiredAPI).SetSuper(object)
	statics := snapshot.NewStruct("GameplayStatics", model.StructIsClass|model.StructMinimalAPI).SetSuper(object)
	hidden := snapshot.NewStruct("InternalThing", model.StructIsClass).SetSuper(object)

	p := snapshot.NewProperty("Owner", model.KindObject, snapshot.WithClass(actor))
	assert.Equal(t, Object, m.Classify(p))
	assert.Equal(t, "Actor", m.DisplayName(p))

	p = snapshot.NewProperty("Statics", model.KindObject, snapshot.WithClass(statics))
	assert.Equal(t, "GameLib", m.DisplayName(p))

	p = snapshot.NewProperty("Any", model.KindObject, snapshot.WithClass(object))
	assert.Equal(t, Object, m.Classify(p))
	assert.Equal(t, "Entity", m.DisplayName(p))

	p = snapshot.NewProperty("Secret", model.KindObject, snapshot.WithClass(hidden))
	assert.Equal(t, None, m.Classify(p))

	p = snapshot.NewProperty("ActorClass", model.KindClass, snapshot.WithClass(actor))
	assert.Equal(t, Class, m.Classify(p))
	assert.Equal(t, "EntityClass", m.DisplayName(p))
}

func TestClassify_Lists(t *testing.T) {
	m := Default()
	hit := snapshot.NewStruct("HitResult", model.StructHasDefaults)

	intArray := snapshot.NewProperty("Inner", model.KindArray,
		snapshot.WithElem(snapshot.NewProperty("", model.KindInteger)))
	assert.Equal(t, List, m.Classify(intArray))
	assert.Equal(t, "List{Integer}", m.DisplayName(intArray))

	nested := snapshot.NewProperty("Grid", model.KindArray, snapshot.WithElem(intArray))
	assert.Equal(t, None, m.Classify(nested))
	assert.False(t, m.IsPropertySupported(nested))

	hits := snapshot.NewProperty("Hits", model.KindArray,
		snapshot.WithElem(snapshot.NewProperty("", model.KindStruct, snapshot.WithStruct(hit))))
	assert.Equal(t, List, m.Classify(hits))
	assert.Equal(t, "List{HitResult}", m.DisplayName(hits))

	opaque := snapshot.NewProperty("Opaque", model.KindArray,
		snapshot.WithElem(snapshot.NewProperty("", model.KindOther)))
	assert.Equal(t, None, m.Classify(opaque))

	weak := snapshot.NewProperty("Weak", model.KindArray,
		snapshot.WithElem(snapshot.NewProperty("", model.KindString, snapshot.WithFlags(model.PropWeakRef))))
	assert.Equal(t, None, m.Classify(weak))

	missing := snapshot.NewProperty("Missing", model.KindArray)
	assert.Equal(t, None, m.Classify(missing))
}

func TestIsPropertySupported_Exclusions(t *testing.T) {
	m := Default()
	for _, flag := range []model.PropertyFlags{model.PropEditorOnly, model.PropLazyRef, model.PropWeakRef, model.PropSoftRef} {
		p := snapshot.NewProperty("Value", model.KindInteger, snapshot.WithFlags(flag))
		assert.Equal(t, Integer, m.Classify(p))
		assert.False(t, m.IsPropertySupported(p), "flag %d", flag)
	}
	assert.True(t, m.IsPropertySupported(snapshot.NewProperty("Value", model.KindInteger)))
	assert.False(t, m.IsPropertySupported(nil))
}

func TestStructPredicates(t *testing.T) {
	pod := snapshot.NewStruct("IntPoint", model.StructPlainOldData|model.StructHasDefaults)
	assert.True(t, IsPlainOldData(pod))
	assert.True(t, IsStructSupported(pod))

	podClass := snapshot.NewStruct("Weird", model.StructIsClass|model.StructPlainOldData)
	assert.False(t, IsPlainOldData(podClass))
	assert.False(t, IsStructSupported(podClass))

	assert.False(t, IsPlainOldData(nil))
	assert.False(t, IsStructSupported(nil))
	assert.Equal(t, None, StructType(nil))
}

func TestTypeIDNames(t *testing.T) {
	seen := map[string]TypeID{}
	for id := None; id < typeIDCount; id++ {
		name := id.String()
		assert.NotEmpty(t, name)
		if prev, ok := seen[name]; ok {
			t.Fatalf("%v and %v share display name %q", prev, id, name)
		}
		seen[name] = id
	}
	assert.Equal(t, "nil", TypeID(-1).String())
	assert.False(t, None.Supported())
	assert.True(t, List.Supported())
}

func TestNew_CustomRuleChain(t *testing.T) {
	m := New(&ListRule{}, &SimpleKindRule{})
	p := snapshot.NewProperty("Names", model.KindArray,
		snapshot.WithElem(snapshot.NewProperty("", model.KindName)))
	assert.Equal(t, List, m.Classify(p))

	onlyStructs := New(&StructRule{})
	assert.Equal(t, None, onlyStructs.Classify(snapshot.NewProperty("Count", model.KindInteger)))
}

func BenchmarkClassify_NestedList(b *testing.B) {
	m := Default()
	hit := snapshot.NewStruct("HitResult", model.StructHasDefaults)
	p := snapshot.NewProperty("Hits", model.KindArray,
		snapshot.WithElem(snapshot.NewProperty("", model.KindStruct, snapshot.WithStruct(hit))))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.DisplayName(p)
	}
}
