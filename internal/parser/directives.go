package parser

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"strings"

	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/model/snapshot"
)

const (
	directivePrefix   = "//sk:"
	directiveClass    = "class"
	directiveStruct   = "struct"
	directiveEnum     = "enum"
	directiveStatic   = "static"
	directiveCategory = "category"

	tagKey = "sk"
)

// docIndex maps "Type", "Type.Field", "Type.Method" and "Func" to their doc
// comments.
type docIndex map[string]*ast.CommentGroup

func indexDocs(files []*ast.File) docIndex {
	idx := docIndex{}
	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					idx[ts.Name.Name] = doc
					if st, ok := ts.Type.(*ast.StructType); ok {
						indexFieldDocs(idx, ts.Name.Name, st)
					}
				}
			case *ast.FuncDecl:
				key := d.Name.Name
				if d.Recv != nil && len(d.Recv.List) > 0 {
					key = receiverName(d.Recv.List[0].Type) + "." + key
				}
				idx[key] = d.Doc
			}
		}
	}
	return idx
}

func indexFieldDocs(idx docIndex, typeName string, st *ast.StructType) {
	for _, f := range st.Fields.List {
		doc := f.Doc
		if doc == nil {
			doc = f.Comment
		}
		for _, n := range f.Names {
			idx[typeName+"."+n.Name] = doc
		}
	}
}

func receiverName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return receiverName(e.X)
	case *ast.IndexExpr:
		return receiverName(e.X)
	case *ast.IndexListExpr:
		return receiverName(e.X)
	case *ast.Ident:
		return e.Name
	}
	return ""
}

// docText is the doc comment without directive lines.
func docText(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(doc.Text())
}

// directives maps each "//sk:<name> args..." line to its arguments.
type directives map[string][]string

func parseDirectives(doc *ast.CommentGroup) directives {
	dirs := directives{}
	if doc == nil {
		return dirs
	}
	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, directivePrefix)
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		dirs[fields[0]] = append(dirs[fields[0]], fields[1:]...)
	}
	return dirs
}

func (d directives) has(name string) bool {
	_, ok := d[name]
	return ok
}

func (d directives) category() string {
	return strings.Join(d[directiveCategory], " ")
}

func (d directives) structFlags() (model.StructFlags, error) {
	if d.has(directiveClass) && d.has(directiveStruct) {
		return 0, fmt.Errorf("//sk:%s and //sk:%s are exclusive", directiveClass, directiveStruct)
	}
	if args, ok := d[directiveClass]; ok {
		flags, err := snapshot.ParseStructFlags(args)
		return flags | model.StructIsClass, err
	}
	return snapshot.ParseStructFlags(d[directiveStruct])
}

// fieldTag is the parsed `sk:"..."` struct tag. Options are comma separated:
// "-" skips the field, "name=X" renames it, "category=X" sets its category,
// "class" makes a pointer a class reference and the rest are property flags.
type fieldTag struct {
	skip     bool
	name     string
	category string
	class    bool
	flags    model.PropertyFlags
}

func parseTag(raw string) (fieldTag, error) {
	var tag fieldTag
	value, ok := reflect.StructTag(raw).Lookup(tagKey)
	if !ok || value == "" {
		return tag, nil
	}
	if value == "-" {
		tag.skip = true
		return tag, nil
	}

	var flagNames []string
	for _, opt := range strings.Split(value, ",") {
		opt = strings.TrimSpace(opt)
		key, arg, hasArg := strings.Cut(opt, "=")
		switch {
		case hasArg && key == "name":
			tag.name = arg
		case hasArg && key == directiveCategory:
			tag.category = arg
		case hasArg:
			return tag, fmt.Errorf("unknown tag option %q", opt)
		case opt == directiveClass:
			tag.class = true
		case opt != "":
			flagNames = append(flagNames, opt)
		}
	}
	flags, err := snapshot.ParsePropertyFlags(flagNames)
	if err != nil {
		return tag, err
	}
	tag.flags = flags
	return tag, nil
}
