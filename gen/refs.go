package gen

import (
	"strings"

	"github.com/dhamidi/dataclass/java"
)

// Resolver computes the shortest unambiguous reference to a symbol given a
// file's import set. The import set is fixed for a generation run, so every
// result is memoized unconditionally.
type Resolver struct {
	imports   []java.Import
	noImports bool
	types     map[string]string
	members   map[string]string
}

// NewResolver builds a resolver over the file's imports. With noImports set,
// no shortening happens at all; instead leading lowercase package segments
// are stripped, for files that intentionally avoid relying on imports.
func NewResolver(imports []java.Import, noImports bool) *Resolver {
	return &Resolver{
		imports:   imports,
		noImports: noImports,
		types:     make(map[string]string),
		members:   make(map[string]string),
	}
}

// Resolve shortens a fully qualified type name.
func (r *Resolver) Resolve(name string) string {
	if ref, ok := r.types[name]; ok {
		return ref
	}
	ref := r.resolve(name)
	r.types[name] = ref
	return ref
}

func (r *Resolver) resolve(name string) string {
	if r.noImports {
		return stripPackagePrefix(name)
	}
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return name
	}
	outer, simple := name[:dot], name[dot+1:]
	if r.imported(name) || r.wildcardImported(outer) {
		return simple
	}
	// Outer.Inner: shorten the outer path when its trailing segment looks
	// like a type name. Capitalized package segments misfire here; the
	// trade-off is accepted.
	if isTypeName(lastSegment(outer)) {
		return r.resolve(outer) + "." + simple
	}
	return name
}

// ResolveMember shortens a fully qualified static member reference, checking
// the static import set first and falling back to resolving the owning type.
func (r *Resolver) ResolveMember(name string) string {
	if ref, ok := r.members[name]; ok {
		return ref
	}
	ref := r.resolveMember(name)
	r.members[name] = ref
	return ref
}

func (r *Resolver) resolveMember(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return name
	}
	owner, member := name[:dot], name[dot+1:]
	if r.staticImported(name) || r.staticWildcardImported(owner) {
		return member
	}
	return r.Resolve(owner) + "." + member
}

func (r *Resolver) imported(name string) bool {
	for _, imp := range r.imports {
		if !imp.Static && !imp.Wildcard && imp.Name == name {
			return true
		}
	}
	return false
}

func (r *Resolver) wildcardImported(pkg string) bool {
	for _, imp := range r.imports {
		if !imp.Static && imp.Wildcard && imp.Name == pkg {
			return true
		}
	}
	return false
}

func (r *Resolver) staticImported(name string) bool {
	for _, imp := range r.imports {
		if imp.Static && !imp.Wildcard && imp.Name == name {
			return true
		}
	}
	return false
}

func (r *Resolver) staticWildcardImported(owner string) bool {
	for _, imp := range r.imports {
		if imp.Static && imp.Wildcard && imp.Name == owner {
			return true
		}
	}
	return false
}

// stripPackagePrefix drops leading lowercase segments, returning the name
// from the first capitalized segment onward.
func stripPackagePrefix(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if isTypeName(part) {
			return strings.Join(parts[i:], ".")
		}
	}
	return name
}

func lastSegment(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

func isTypeName(segment string) bool {
	return segment != "" && segment[0] >= 'A' && segment[0] <= 'Z'
}
