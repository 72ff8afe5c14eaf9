// Package typedef keeps the registry of named types: the predefined names
// seeded at startup plus those the user declares with typedef or using.
package typedef

import (
	"fmt"
	"sort"

	"github.com/appsworld/go-cdecl/ast"
)

// Filter selects which registry entries Visit yields.
type Filter int

const (
	All Filter = iota
	Predefined
	User
)

// Registry maps scoped names to typedefs. Entries are immutable after
// insertion; redefining a name with a structurally equal AST is a no-op.
type Registry struct {
	m map[string]*ast.Typedef
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]*ast.Typedef)}
}

// Define inserts td. If the name is already defined, the call succeeds only
// when the existing definition is structurally equal.
func (r *Registry) Define(td *ast.Typedef) error {
	key := td.Name.Full()
	if old, ok := r.m[key]; ok {
		if ast.Equal(old.AST, td.AST) {
			return nil
		}
		return fmt.Errorf("%q already defined as a different type", key)
	}
	r.m[key] = td
	return nil
}

// Lookup returns the typedef registered under name, or nil.
func (r *Registry) Lookup(name ast.ScopedName) *ast.Typedef {
	return r.m[name.Full()]
}

// LookupString is Lookup for a name already in "a::b" form.
func (r *Registry) LookupString(name string) *ast.Typedef {
	return r.m[name]
}

// Visit calls fn for each entry selected by filter, in name order, until fn
// returns false.
func (r *Registry) Visit(filter Filter, fn func(*ast.Typedef) bool) {
	for _, name := range r.names() {
		td := r.m[name]
		if filter == Predefined && !td.Predefined {
			continue
		}
		if filter == User && td.Predefined {
			continue
		}
		if !fn(td) {
			return
		}
	}
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	return r.names()
}

func (r *Registry) names() []string {
	names := make([]string, 0, len(r.m))
	for name := range r.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
