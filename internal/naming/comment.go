package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// EntityKind labels the host entity a comment block describes.
type EntityKind string

const (
	EntityMethod   EntityKind = "method"
	EntityClass    EntityKind = "class"
	EntityStruct   EntityKind = "struct"
	EntityProperty EntityKind = "property"
	EntityEnum     EntityKind = "enum"
	EntityField    EntityKind = "field"
)

const paramTag = "@param"

// CommentBlock renders a host tooltip as a SkookumScript comment block.
// Parameter names after "@param" are renamed the way Variable renames them,
// and the host name plus editor category are appended for reference.
func CommentBlock(kind EntityKind, hostName, tooltip, category string) string {
	var b strings.Builder
	if tooltip != "" {
		b.WriteString("// ")
		b.WriteString(strings.ReplaceAll(renameParams(tooltip), "\n", "\n// "))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "//\n// UE4 name of this %s: %s\n", kind, hostName)
	if category != "" {
		fmt.Fprintf(&b, "// Blueprint category: %s\n", category)
	}
	b.WriteString("\n")
	return b.String()
}

func renameParams(text string) string {
	var b strings.Builder
	pos := 0
	for {
		idx := indexFold(text[pos:], paramTag)
		if idx < 0 {
			b.WriteString(text[pos:])
			return b.String()
		}
		tagEnd := pos + idx + len(paramTag)
		b.WriteString(text[pos:tagEnd])

		i := tagEnd
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		b.WriteString(text[tagEnd:i])

		begin := i
		for i < len(text) && isIdentChar(text[i]) {
			i++
		}
		b.WriteString(Variable(text[begin:i], false, false))
		pos = i
	}
}

// indexFold is a case-insensitive strings.Index for an ASCII needle.
func indexFold(s, needle string) int {
	for i := 0; i+len(needle) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

func isSpace(c byte) bool { return unicode.IsSpace(rune(c)) }

func isIdentChar(c byte) bool {
	return c == '_' || isDigit(c) || isUpper(c) || (c >= 'a' && c <= 'z')
}
