// Package sel provides a generic, extensible tree-walker for
// declarative schema expressions (the Schema Expression Language).
//
// A schema expression is a value built from primitive predicates and a
// fixed set of compositional combinators: conjunction, disjunction,
// sequencing, repetition, keyed records, homogeneous collections,
// key-value collections, tuples, optional/nilable wrapping, and
// enumerations. The walker recursively classifies each node, recurses
// into its structural children, and folds the results bottom-up through
// a caller-supplied reducer, producing a transformed schema, a set of
// collected names, validation metadata, generated documentation, or
// any other aggregate the reducer builds.
//
// # Architecture
//
// The package is organized into subpackages, leaves first:
//
// - ast: typed schema-expression node variants
// - form: name canonicalization, wrapper stripping, collaborator interfaces
// - errors: typed walker errors
// - walk: dispatch keys, the open handler table, and the visitor core
// - collect: sample reducers (named-schema collector)
//
// The registry collaborator lives in pkg/registry, with in-memory and
// SQLite backends, a YAML definition loader, and a file-watching
// manager in pkg/registry/manager.
//
// # Basic Usage
//
// Walk a schema and fold it through a reducer:
//
//	reg := registry.NewMemory()
//	reg.Register(ast.ParseQName("user/email"), ast.NewSymbol("sel.core/string?"))
//
//	schema := &ast.Application{
//	    Head: ast.Keys,
//	    Opts: []ast.KeywordArg{
//	        {Key: "req", Value: &ast.Names{Refs: []ast.QName{ast.ParseQName("user/email")}}},
//	    },
//	}
//
//	names, err := sel.CollectNamed(schema, reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(names)) // 1
//
// # Extension
//
// The dispatch table is open: register a handler for a new combinator
// kind and existing rows are untouched.
//
//	w := sel.NewWalker(reg)
//	w.Register(ast.QName{Space: "acme.schemas", Local: "pair"},
//	    func(w *walk.Walker, key walk.Key, node ast.Node, accept walk.Reducer, ctx any) (any, error) {
//	        app, err := w.Form(node)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return w.ReduceChildren(key, node, app.Args, accept, ctx)
//	    })
//
// # Concurrency
//
// A walk is synchronous, single-threaded, and bounded by the schema's
// nesting depth. Any number of walks may share one walker concurrently
// as long as handler registration does not race with them; stateful
// reducers own their accumulators and are per-walk.
package sel
