package collect

import (
	"github.com/chkup/spec-tools/pkg/sel/ast"
	"github.com/chkup/spec-tools/pkg/sel/form"
	"github.com/chkup/spec-tools/pkg/sel/walk"
)

// Collector is a stateful reducer that accumulates every named schema
// encountered anywhere in a walk into a name → definition mapping.
// Each name is recorded on first encounter; later references to the
// same name leave the mapping unchanged.
//
// A Collector owns its accumulator exclusively and is not safe for
// concurrent walks; give each concurrent walk its own Collector and
// merge afterwards.
type Collector struct {
	lookup form.NameLookup
	defs   map[ast.QName]ast.Node
	order  []ast.QName
}

// New creates a collector that resolves definitions through lookup.
func New(lookup form.NameLookup) *Collector {
	return &Collector{
		lookup: lookup,
		defs:   make(map[ast.QName]ast.Node),
	}
}

// Reduce is the walk.Reducer. On each named node with a registered,
// not-yet-recorded definition it records name → definition; it always
// returns the full accumulated mapping, so any node's result is usable
// by its parent's handler.
func (c *Collector) Reduce(key walk.Key, node ast.Node, children []any, ctx any) (any, error) {
	if named, ok := node.(*ast.Named); ok {
		if _, seen := c.defs[named.Name]; !seen {
			if def, ok := c.lookup.Lookup(named.Name); ok {
				c.defs[named.Name] = def
				c.order = append(c.order, named.Name)
			}
		}
	}
	return c.Definitions(), nil
}

// Definitions returns a copy of the accumulated name → definition
// mapping.
func (c *Collector) Definitions() map[ast.QName]ast.Node {
	out := make(map[ast.QName]ast.Node, len(c.defs))
	for name, def := range c.defs {
		out[name] = def
	}
	return out
}

// Names returns the accumulated names in first-encounter order.
func (c *Collector) Names() []ast.QName {
	out := make([]ast.QName, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of accumulated definitions.
func (c *Collector) Len() int {
	return len(c.defs)
}
