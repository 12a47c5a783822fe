// Package walk implements the recursive schema-expression visitor: an
// open dispatch table mapping dispatch keys to handlers, folded through
// a caller-supplied reducer.
//
// # Control Flow
//
// Visit classifies a node into a dispatch key, looks up the handler
// registered for that key (falling back to a default handler), and
// invokes it. The handler extracts the node's structural children,
// recurses into each through Visit, and calls the reducer with the
// dispatch key, the original node, the ordered child results, and the
// caller's context. Results therefore propagate bottom-up: the reducer
// runs exactly once per node, children before parents.
//
//	w := walk.New(&walk.Config{Resolver: form.RegistryResolver{Names: reg}})
//	result, err := w.Walk(schema, func(key walk.Key, node ast.Node, children []any, ctx any) (any, error) {
//	    return fmt.Sprintf("%s%v", key, children), nil
//	}, nil)
//
// # Dispatch Keys
//
// A Key is a canonical combinator name, the enumeration sentinel, or,
// for nodes with no recognizable form, the node itself. Cross-dialect
// spellings converge on one canonical key, so the table carries one row
// per combinator. Homogeneous-collection nodes are the one
// data-dependent case: their handler refines the key to
// NameMapOf/NameSetOf/NameSequenceOf by consulting the collection-kind
// resolver.
//
// # Extension
//
// The table is open. Register adds handlers for new combinator kinds
// without touching existing rows; SetDefault replaces the fallback
// while keeping DefaultHandler reachable. Registration takes exclusive
// access to the table and must not race with in-flight walks; walks
// themselves share the table freely across goroutines.
//
// # Errors
//
// A combinator expression with the wrong argument shape fails the walk
// with an arity error. An unresolvable handle is not an error: it is an
// expected opaque leaf, dispatched by identity to the default handler.
// Unknown combinators likewise fall to the default handler with no
// children.
package walk
