// Package layout places generated script files in a directory tree that
// mirrors the host class hierarchy, flattening chains deeper than the
// configured nesting depth.
package layout

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/seitarof/sk-gen/internal/model"
	"github.com/seitarof/sk-gen/internal/naming"
)

const (
	// DefaultDepth is used when the project does not configure one.
	DefaultDepth = 4

	// MaxAncestors caps the parent walk of a single struct.
	MaxAncestors = 1024

	classRootDir  = "Object"
	structRootDir = "UStruct"

	instanceMethodSuffix = "().sk"
	classMethodSuffix    = "()C.sk"
	questionMarkFileTag  = "-Q"
)

var (
	// ErrInvalidDepth is returned for a nesting depth below 1.
	ErrInvalidDepth = errors.New("script path depth must be at least 1")

	// ErrAncestorCycle is returned when a parent chain revisits a struct or
	// exceeds MaxAncestors.
	ErrAncestorCycle = errors.New("ancestor chain does not terminate")
)

// Resolver computes script paths for one generation run and records every
// ancestor class it walks.
type Resolver struct {
	root  string
	depth int

	mu   sync.Mutex
	used []model.Struct
	seen map[model.Struct]struct{}
}

// New returns a resolver rooted at scriptsRoot. Depth 1 places every class
// directly below Object.
func New(scriptsRoot string, depth int) (*Resolver, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}
	return &Resolver{
		root:  scriptsRoot,
		depth: depth,
		seen:  map[model.Struct]struct{}{},
	}, nil
}

// Depth returns the configured nesting depth.
func (r *Resolver) Depth() int { return r.depth }

// ClassName returns the SkookumScript class name of s.
func (r *Resolver) ClassName(s model.Struct) string {
	return naming.ClassName(s.Name())
}

// ClassPath returns the directory holding the script files of s.
func (r *Resolver) ClassPath(s model.Struct) (string, error) {
	ancestors, err := ancestorsOf(s)
	if err != nil {
		return "", err
	}
	r.markUsed(ancestors)

	isClass := model.IsClass(s)
	nesting := r.depth - 2
	dir := filepath.Join(r.root, classRootDir, structRootDir)
	if isClass {
		nesting = r.depth - 1
		dir = filepath.Join(r.root, classRootDir)
	}
	nesting = max(nesting, 0)

	// ancestors is nearest first; directories are taken from the root down.
	remaining := len(ancestors)
	for i := 0; i < nesting && remaining > 0; i++ {
		remaining--
		dir = filepath.Join(dir, naming.ClassName(ancestors[remaining].Name()))
	}

	name := r.ClassName(s)
	if remaining > 0 {
		name = naming.ClassName(ancestors[0].Name()) + "." + name
	}
	return filepath.Join(dir, name), nil
}

// MethodPath returns the script file of a method of s. The method name is the
// already converted SkookumScript name.
func (r *Resolver) MethodPath(s model.Struct, method string, isStatic bool) (string, error) {
	dir, err := r.ClassPath(s)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, MethodFileName(method, isStatic)), nil
}

// MethodFileName maps a SkookumScript method name onto its file name. '?' is
// not portable in file names and is written as "-Q".
func MethodFileName(method string, isStatic bool) string {
	suffix := instanceMethodSuffix
	if isStatic {
		suffix = classMethodSuffix
	}
	return strings.ReplaceAll(method, "?", questionMarkFileTag) + suffix
}

// UsedClasses returns every ancestor recorded so far, in first-use order.
func (r *Resolver) UsedClasses() []model.Struct {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Struct, len(r.used))
	copy(out, r.used)
	return out
}

// MarkUsed records structs referenced by generated code.
func (r *Resolver) MarkUsed(structs ...model.Struct) {
	r.markUsed(structs)
}

func (r *Resolver) markUsed(structs []model.Struct) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range structs {
		if s == nil {
			continue
		}
		if _, ok := r.seen[s]; ok {
			continue
		}
		r.seen[s] = struct{}{}
		r.used = append(r.used, s)
	}
}

// ancestorsOf walks the parent chain of s, nearest parent first.
func ancestorsOf(s model.Struct) ([]model.Struct, error) {
	var out []model.Struct
	visited := map[model.Struct]struct{}{s: {}}
	for p := s.Super(); p != nil; p = p.Super() {
		if _, ok := visited[p]; ok || len(out) == MaxAncestors {
			return nil, fmt.Errorf("%w: %s", ErrAncestorCycle, s.Name())
		}
		visited[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
