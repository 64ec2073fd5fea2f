package parser

import (
	"go/types"
	"sort"

	"github.com/seitarof/sk-gen/internal/model/snapshot"
)

type declaredField struct {
	v     *types.Var
	index int
}

// parentOf returns the struct named by the first embedded field of st. Later
// embedded fields are ignored; the host model has single inheritance.
func (b *builder) parentOf(name string, st *types.Struct) *snapshot.Struct {
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}
		named := resolveEmbeddedStruct(f.Type())
		if named == nil {
			continue
		}
		parent := b.structFor(named)
		for j := i + 1; j < st.NumFields(); j++ {
			if st.Field(j).Embedded() {
				b.logger.Debug().
					Str("struct", name).
					Str("field", st.Field(j).Name()).
					Msg("additional embedded field ignored")
			}
		}
		return parent
	}
	return nil
}

// declaredFields returns the exported, non-embedded fields of st. Promoted
// fields belong to the parent and are not repeated.
func declaredFields(st *types.Struct) []declaredField {
	var fields []declaredField
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Embedded() || !f.Exported() {
			continue
		}
		fields = append(fields, declaredField{v: f, index: i})
	}
	return fields
}

// declaredMethods returns the exported methods declared on t, value and
// pointer receivers alike, in source order.
func declaredMethods(t *types.Named) []*types.Func {
	var methods []*types.Func
	for i := 0; i < t.NumMethods(); i++ {
		if m := t.Method(i); m.Exported() {
			methods = append(methods, m)
		}
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Pos() < methods[j].Pos() })
	return methods
}

func resolveEmbeddedStruct(t types.Type) *types.Named {
	switch v := t.(type) {
	case *types.Alias:
		return resolveEmbeddedStruct(v.Rhs())
	case *types.Named:
		if _, ok := v.Underlying().(*types.Struct); ok {
			return v
		}
	case *types.Pointer:
		return resolveEmbeddedStruct(v.Elem())
	}
	return nil
}
