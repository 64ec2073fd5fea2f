package snapshot

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/seitarof/sk-gen/internal/model"
)

type document struct {
	Enums   []enumDoc   `yaml:"enums"`
	Structs []structDoc `yaml:"structs"`
}

type enumDoc struct {
	Name     string   `yaml:"name"`
	Values   []string `yaml:"values"`
	Tooltip  string   `yaml:"tooltip"`
	Category string   `yaml:"category"`
}

type structDoc struct {
	Name       string        `yaml:"name"`
	Super      string        `yaml:"super"`
	Class      bool          `yaml:"class"`
	Flags      []string      `yaml:"flags"`
	Tooltip    string        `yaml:"tooltip"`
	Category   string        `yaml:"category"`
	Properties []propertyDoc `yaml:"properties"`
	Functions  []functionDoc `yaml:"functions"`
}

type propertyDoc struct {
	Name     string       `yaml:"name"`
	Kind     string       `yaml:"kind"`
	Struct   string       `yaml:"struct"`
	Class    string       `yaml:"class"`
	Enum     string       `yaml:"enum"`
	Elem     *propertyDoc `yaml:"elem"`
	Flags    []string     `yaml:"flags"`
	Tooltip  string       `yaml:"tooltip"`
	Category string       `yaml:"category"`
}

type functionDoc struct {
	Name     string        `yaml:"name"`
	Static   bool          `yaml:"static"`
	Return   *propertyDoc  `yaml:"return"`
	Params   []propertyDoc `yaml:"params"`
	Tooltip  string        `yaml:"tooltip"`
	Category string        `yaml:"category"`
}

var structFlagNames = map[string]model.StructFlags{
	"defaults":     model.StructHasDefaults,
	"required_api": model.StructRequiredAPI,
	"minimal_api":  model.StructMinimalAPI,
	"pod":          model.StructPlainOldData,
	"editor_only":  model.StructEditorOnly,
}

var propertyFlagNames = map[string]model.PropertyFlags{
	"editor_only": model.PropEditorOnly,
	"lazy":        model.PropLazyRef,
	"weak":        model.PropWeakRef,
	"soft":        model.PropSoftRef,
}

// LoadYAMLFile reads a model snapshot from a YAML file.
func LoadYAMLFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %q: %w", path, err)
	}
	defer f.Close()

	m, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", path, err)
	}
	return m, nil
}

// LoadYAML decodes a model snapshot. Struct, class and enum references are
// resolved by host name and must exist in the same document.
func LoadYAML(r io.Reader) (*Model, error) {
	var d document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode: %w", err)
	}

	m := New()
	for _, ed := range d.Enums {
		if ed.Name == "" {
			return nil, fmt.Errorf("enum without name")
		}
		if err := m.AddEnum(NewEnum(ed.Name, ed.Values...).SetDoc(ed.Tooltip, ed.Category)); err != nil {
			return nil, err
		}
	}

	// Register every struct first so references may point forward.
	for _, sd := range d.Structs {
		if sd.Name == "" {
			return nil, fmt.Errorf("struct without name")
		}
		flags, err := ParseStructFlags(sd.Flags)
		if err != nil {
			return nil, fmt.Errorf("struct %q: %w", sd.Name, err)
		}
		if sd.Class {
			flags |= model.StructIsClass
		}
		if err := m.AddStruct(NewStruct(sd.Name, flags).SetDoc(sd.Tooltip, sd.Category)); err != nil {
			return nil, err
		}
	}

	for _, sd := range d.Structs {
		s, _ := m.Struct(sd.Name)
		if sd.Super != "" {
			parent, ok := m.Struct(sd.Super)
			if !ok {
				return nil, fmt.Errorf("struct %q: unknown super %q", sd.Name, sd.Super)
			}
			s.SetSuper(parent)
		}
		for _, pd := range sd.Properties {
			p, err := m.buildProperty(pd)
			if err != nil {
				return nil, fmt.Errorf("struct %q: %w", sd.Name, err)
			}
			s.AddProperty(p)
		}
		for _, fd := range sd.Functions {
			f, err := m.buildFunction(fd)
			if err != nil {
				return nil, fmt.Errorf("struct %q: %w", sd.Name, err)
			}
			s.AddFunction(f)
		}
	}
	return m, nil
}

func (m *Model) buildFunction(fd functionDoc) (*Function, error) {
	if fd.Name == "" {
		return nil, fmt.Errorf("function without name")
	}
	var ret *Property
	if fd.Return != nil {
		p, err := m.buildProperty(*fd.Return)
		if err != nil {
			return nil, fmt.Errorf("function %q return: %w", fd.Name, err)
		}
		ret = p
	}
	params := make([]*Property, 0, len(fd.Params))
	for _, pd := range fd.Params {
		p, err := m.buildProperty(pd)
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", fd.Name, err)
		}
		params = append(params, p)
	}
	return NewFunction(fd.Name, fd.Static, ret, params...).SetDoc(fd.Tooltip, fd.Category), nil
}

func (m *Model) buildProperty(pd propertyDoc) (*Property, error) {
	label := pd.Name
	if label == "" {
		label = "<" + pd.Kind + ">"
	}

	kindName := pd.Kind
	if kindName == "enum" {
		kindName = model.KindInteger.String()
	}
	kind, ok := model.ParseKind(kindName)
	if !ok && pd.Kind != "" && pd.Kind != model.KindOther.String() {
		return nil, fmt.Errorf("property %q: unknown kind %q", label, pd.Kind)
	}

	flags, err := ParsePropertyFlags(pd.Flags)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", label, err)
	}
	opts := []PropertyOption{WithFlags(flags), WithDoc(pd.Tooltip, pd.Category)}

	if pd.Enum != "" {
		e, ok := m.Enum(pd.Enum)
		if !ok {
			return nil, fmt.Errorf("property %q: unknown enum %q", label, pd.Enum)
		}
		opts = append(opts, WithEnum(e))
	} else if pd.Kind == "enum" {
		return nil, fmt.Errorf("property %q: enum kind without enum name", label)
	}

	switch kind {
	case model.KindStruct:
		s, ok := m.Struct(pd.Struct)
		if !ok {
			return nil, fmt.Errorf("property %q: unknown struct %q", label, pd.Struct)
		}
		opts = append(opts, WithStruct(s))
	case model.KindObject, model.KindClass:
		c, ok := m.Struct(pd.Class)
		if !ok {
			return nil, fmt.Errorf("property %q: unknown class %q", label, pd.Class)
		}
		opts = append(opts, WithClass(c))
	case model.KindArray:
		if pd.Elem == nil {
			return nil, fmt.Errorf("property %q: array without elem", label)
		}
		elem, err := m.buildProperty(*pd.Elem)
		if err != nil {
			return nil, fmt.Errorf("property %q elem: %w", label, err)
		}
		opts = append(opts, WithElem(elem))
	}

	return NewProperty(pd.Name, kind, opts...), nil
}

// ParseStructFlags converts flag names such as "pod" into StructFlags.
func ParseStructFlags(names []string) (model.StructFlags, error) {
	var flags model.StructFlags
	for _, n := range names {
		f, ok := structFlagNames[n]
		if !ok {
			return 0, fmt.Errorf("unknown struct flag %q", n)
		}
		flags |= f
	}
	return flags, nil
}

// ParsePropertyFlags converts flag names such as "weak" into PropertyFlags.
func ParsePropertyFlags(names []string) (model.PropertyFlags, error) {
	var flags model.PropertyFlags
	for _, n := range names {
		f, ok := propertyFlagNames[n]
		if !ok {
			return 0, fmt.Errorf("unknown property flag %q", n)
		}
		flags |= f
	}
	return flags, nil
}
