// Package naming converts host identifiers into SkookumScript identifiers.
//
// Host names are PascalCase, may carry a "b" boolean prefix and may contain
// colons or spaces. SkookumScript names are lower_snake_case, members carry a
// leading "@" and predicates a trailing "?".
package naming

import "strings"

const hashSuffixLen = 32

var reservedKeywords = map[string]struct{}{
	"branch":     {},
	"case":       {},
	"divert":     {},
	"else":       {},
	"exit":       {},
	"false":      {},
	"fork":       {},
	"if":         {},
	"loop":       {},
	"nil":        {},
	"race":       {},
	"rush":       {},
	"skip":       {},
	"sync":       {},
	"this":       {},
	"this_class": {},
	"this_code":  {},
	"true":       {},
	"unless":     {},
	"when":       {},

	// word operators
	"and":  {},
	"nand": {},
	"nor":  {},
	"not":  {},
	"nxor": {},
	"or":   {},
	"xor":  {},
}

// IsReserved reports whether name is a SkookumScript keyword.
func IsReserved(name string) bool {
	_, ok := reservedKeywords[name]
	return ok
}

// HasBoolPrefix reports whether name follows the host "bSomething" convention.
func HasBoolPrefix(name string) bool {
	return len(name) > 2 && name[0] == 'b' && isUpper(name[1])
}

// Variable converts a host variable name. Members get an "@" prefix and are
// never keyword-escaped; wantsQuestionMark appends "?".
func Variable(name string, wantsQuestionMark, isMember bool) string {
	if name == "" {
		return name
	}

	// Scanning splits letter/digit runs, so the hash is cut from the raw name
	// as well as from the result.
	name = stripHashSuffix(name)

	var b strings.Builder
	b.Grow(len(name) + 16)
	if isMember {
		b.WriteByte('@')
	}

	start := 0
	if HasBoolPrefix(name) {
		start = 1
	}
	wasUpper := true
	wasUnderscore := true
	for i := start; i < len(name); i++ {
		c := name[i]
		switch c {
		case '?':
			continue
		case ' ', ':', '_':
			if !wasUnderscore {
				b.WriteByte('_')
				wasUnderscore = true
			}
			continue
		}
		upper := isUpper(c) || isDigit(c)
		if upper && !wasUpper && !wasUnderscore {
			b.WriteByte('_')
		}
		b.WriteByte(toLower(c))
		wasUpper = upper
		wasUnderscore = false
	}

	out := stripHashSuffix(b.String())
	if !isMember && IsReserved(out) {
		out += "_"
	}
	if wantsQuestionMark {
		out += "?"
	}
	return out
}

// Method converts a host function name. The "?" suffix requires both a
// predicate-looking name and a confirmed boolean return.
func Method(name string, returnIsBoolean bool) string {
	out := Variable(name, false, false)
	isBoolean := false

	// k2_ comes from the visual scripting naming convention.
	if len(out) > 3 && !isDigit(out[3]) {
		out = strings.TrimPrefix(out, "k2_")
	}

	if len(out) > 4 && !isDigit(out[4]) {
		if rest, ok := strings.CutPrefix(out, "get_"); ok {
			out = rest
			isBoolean = true
		} else if rest, ok := strings.CutPrefix(out, "set_"); ok {
			out = rest + "_set"
		}
	}

	if HasBoolPrefix(name) ||
		strings.HasPrefix(out, "is_") ||
		strings.HasPrefix(out, "has_") ||
		strings.HasPrefix(out, "can_") {
		isBoolean = true
	}

	if isBoolean && returnIsBoolean {
		out += "?"
	}
	return out
}

// stripHashSuffix removes a trailing "_" + 32 lowercase hex digits, which
// upstream tools append to generated names.
func stripHashSuffix(s string) string {
	n := len(s)
	if n <= hashSuffixLen+1 {
		return s
	}
	tail := s[n-hashSuffixLen-1:]
	if tail[0] != '_' {
		return s
	}
	for i := 1; i < len(tail); i++ {
		c := tail[i]
		if !isDigit(c) && (c < 'a' || c > 'f') {
			return s
		}
	}
	return s[:n-hashSuffixLen-1]
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func toLower(c byte) byte {
	if isUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}
