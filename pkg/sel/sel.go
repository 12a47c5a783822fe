package sel

import (
	"github.com/chkup/spec-tools/pkg/sel/ast"
	"github.com/chkup/spec-tools/pkg/sel/collect"
	"github.com/chkup/spec-tools/pkg/sel/form"
	"github.com/chkup/spec-tools/pkg/sel/walk"
)

// NewWalker is a convenience constructor for a walker wired to resolve
// named references through names. A nil lookup yields a registry-free
// walker.
func NewWalker(names form.NameLookup) *walk.Walker {
	return walk.New(&walk.Config{
		Resolver: form.RegistryResolver{Names: names},
	})
}

// Walk visits schema bottom-up with accept, resolving named references
// through names. It is the one entry point most callers need; build a
// walk.Walker directly to register extension handlers or wire metrics.
func Walk(schema ast.Node, names form.NameLookup, accept walk.Reducer, ctx any) (any, error) {
	return NewWalker(names).Walk(schema, accept, ctx)
}

// CollectNamed walks schema and returns every named schema definition
// encountered anywhere in the tree, keyed by name. A name referenced
// more than once is recorded on first encounter.
func CollectNamed(schema ast.Node, names form.NameLookup) (map[ast.QName]ast.Node, error) {
	c := collect.New(names)
	if _, err := NewWalker(names).Walk(schema, c.Reduce, nil); err != nil {
		return nil, err
	}
	return c.Definitions(), nil
}
