package form

import "github.com/chkup/spec-tools/pkg/sel/ast"

// NameLookup fetches the stored definition of a registered schema name.
// The registry package provides implementations; the walker and the
// sample reducers only ever depend on this interface.
type NameLookup interface {
	Lookup(name ast.QName) (ast.Node, bool)
}

// Resolver turns opaque schema handles and named references into
// inspectable literal expressions. A false return means the node has no
// known form; the walker then treats it as an opaque leaf rather than
// failing, since foreign predicates are a legitimate leaf case.
type Resolver interface {
	ResolveForm(node ast.Node) (ast.Node, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ast.Node) (ast.Node, bool)

func (f ResolverFunc) ResolveForm(node ast.Node) (ast.Node, bool) {
	return f(node)
}

// Former is implemented by handle values able to expose their own
// literal expression form.
type Former interface {
	SchemaForm() ast.Node
}

// RegistryResolver resolves named references through a name registry
// and opens handles whose value implements Former. With a nil Names
// lookup it still opens Former handles, so the zero value is a usable
// resolver for registry-free walks.
type RegistryResolver struct {
	Names NameLookup
}

func (r RegistryResolver) ResolveForm(node ast.Node) (ast.Node, bool) {
	switch n := node.(type) {
	case *ast.Named:
		if r.Names == nil {
			return nil, false
		}
		return r.Names.Lookup(n.Name)
	case *ast.Handle:
		if f, ok := n.Value.(Former); ok {
			return f.SchemaForm(), true
		}
	}
	return nil, false
}

// CollectionKind classifies the runtime collection a homogeneous
// collection schema describes.
type CollectionKind int

const (
	CollectionSequence CollectionKind = iota
	CollectionSet
	CollectionMap
)

// String returns the lower-case kind name.
func (k CollectionKind) String() string {
	switch k {
	case CollectionSet:
		return "set"
	case CollectionMap:
		return "map"
	default:
		return "sequence"
	}
}

// CollectionKindResolver decides whether the runtime collection of a
// homogeneous-collection expression is ordered-sequence, set, or map
// shaped. It is consulted only for the collection combinators; this is
// the one place where a dispatch key is data-dependent rather than
// purely syntactic.
type CollectionKindResolver interface {
	ResolveCollectionKind(app *ast.Application) CollectionKind
}

// HintResolver is the default CollectionKindResolver. It reads the
// expression's own collection hints: a ".kind" option naming a set or
// map predicate, or an ".into" option whose literal is map or set
// shaped. Without a hint the collection is a sequence.
type HintResolver struct{}

func (HintResolver) ResolveCollectionKind(app *ast.Application) CollectionKind {
	if v, ok := app.Opt("kind"); ok {
		if sym, ok := v.(*ast.Symbol); ok {
			switch Canonicalize(sym.Name).Local {
			case "set?":
				return CollectionSet
			case "map?":
				return CollectionMap
			}
		}
	}
	if v, ok := app.Opt("into"); ok {
		switch into := v.(type) {
		case *ast.Enumeration:
			// an empty set literal as the target collection
			if len(into.Members) == 0 {
				return CollectionSet
			}
		case *ast.Literal:
			switch into.Value.(type) {
			case map[string]any, map[any]any:
				return CollectionMap
			}
		}
	}
	return CollectionSequence
}
