package walk

import (
	"github.com/chkup/spec-tools/pkg/sel/ast"
	selerrors "github.com/chkup/spec-tools/pkg/sel/errors"
	"github.com/chkup/spec-tools/pkg/sel/form"
)

// registerBuiltins installs the handler table for the built-in
// combinators. Many spellings converge on few handlers: dialect
// aliasing is handled upstream by canonicalization, so each canonical
// name gets exactly one row here.
func registerBuiltins(w *Walker) {
	// keyed records
	w.Register(ast.Keys, recordHandler)
	w.Register(ast.KeysPos, recordHandler)

	// labeled alternatives and sequences
	w.Register(ast.Or, labeledHandler)
	w.Register(ast.Alt, labeledHandler)
	w.Register(ast.Cat, labeledHandler)

	// positional operands
	w.Register(ast.And, operandsHandler)
	w.Register(ast.Merge, operandsHandler)
	w.Register(ast.Tuple, operandsHandler)

	// homogeneous collections, refined by runtime kind
	w.Register(ast.Every, collectionHandler)
	w.Register(ast.CollOf, collectionHandler)

	// key/value pairs
	w.Register(ast.MapOf, pairHandler)
	w.Register(ast.EveryKV, pairHandler)

	// single-child wrappers
	w.Register(ast.ZeroOrMore, singleChildHandler)
	w.Register(ast.OneOrMore, singleChildHandler)
	w.Register(ast.Optional, singleChildHandler)
	w.Register(ast.Nilable, singleChildHandler)

	// sequence-suffix marker: wrapped schema first, then predicates
	w.Register(ast.Amp, suffixHandler)

	// opaque spec-with-metadata wrapper
	w.Register(ast.Spec, metadataHandler)

	// raw-set enumerations
	w.Register(NameEnum, enumHandler)
}

// DefaultHandler covers leaves: raw predicates, opaque nodes, and any
// combinator with no registered handler. The reducer is invoked with no
// child results. Unknown combinators landing here is deliberate
// forward compatibility, at the cost of not recursing into their
// arguments; callers needing deeper support register a handler.
func DefaultHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	return w.ReduceChildren(key, node, nil, accept, ctx)
}

// recordHandler extracts the key names declared by a keyed record
// (".req" and ".opt" declarations, in declaration order), each treated
// as a nested named-schema reference.
func recordHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	var children []ast.Node
	for _, kw := range app.Opts {
		if kw.Key != "req" && kw.Key != "opt" {
			continue
		}
		names, ok := kw.Value.(*ast.Names)
		if !ok {
			return nil, selerrors.Arity(key.Name, "name vectors for .req/.opt declarations", len(app.Args))
		}
		for _, ref := range names.Refs {
			children = append(children, &ast.Named{Name: ref})
		}
	}

	return w.ReduceChildren(key, node, children, accept, ctx)
}

// labeledHandler extracts the schema value of each labeled alternative
// or component, in declaration order. Labels ride in the keyword
// options; positional arguments are malformed here.
func labeledHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	if len(app.Args) != 0 {
		return nil, selerrors.Arity(key.Name, "labeled pairs only", len(app.Args))
	}

	children := make([]ast.Node, 0, len(app.Opts))
	for _, kw := range app.Opts {
		children = append(children, kw.Value)
	}

	return w.ReduceChildren(key, node, children, accept, ctx)
}

// operandsHandler extracts every positional operand schema, in order.
func operandsHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	return w.ReduceChildren(key, node, app.Args, accept, ctx)
}

// collectionHandler extracts the single element schema of a
// homogeneous collection and refines the dispatch key by asking the
// collection-kind resolver how the runtime collection is shaped. This
// is the one data-dependent dispatch key: the literal head is the same
// for all three variants.
func collectionHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	if len(app.Args) != 1 {
		return nil, selerrors.Arity(key.Name, "exactly one element schema", len(app.Args))
	}

	switch w.CollectionKind(app) {
	case form.CollectionMap:
		key = KeyFor(NameMapOf)
	case form.CollectionSet:
		key = KeyFor(NameSetOf)
	default:
		key = KeyFor(NameSequenceOf)
	}

	return w.ReduceChildren(key, node, app.Args, accept, ctx)
}

// pairHandler extracts exactly two children: the key schema and the
// value schema.
func pairHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	if len(app.Args) != 2 {
		return nil, selerrors.Arity(key.Name, "a key schema and a value schema", len(app.Args))
	}

	return w.ReduceChildren(key, node, app.Args, accept, ctx)
}

// singleChildHandler extracts exactly one child: the wrapped or
// repeated schema.
func singleChildHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	if len(app.Args) != 1 {
		return nil, selerrors.Arity(key.Name, "exactly one argument", len(app.Args))
	}

	return w.ReduceChildren(key, node, app.Args, accept, ctx)
}

// suffixHandler extracts the wrapped schema of a sequence-suffix
// marker. Trailing predicate arguments constrain matching, not
// structure, so they are not structural children.
func suffixHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	if len(app.Args) < 1 {
		return nil, selerrors.Arity(key.Name, "a wrapped schema", len(app.Args))
	}

	return w.ReduceChildren(key, node, app.Args[:1], accept, ctx)
}

// metadataHandler extracts the single inner schema carried in the
// ".spec" entry of an opaque spec-with-metadata wrapper.
func metadataHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	app, err := w.Form(node)
	if err != nil {
		return nil, err
	}

	inner, ok := app.Opt("spec")
	if !ok {
		return nil, selerrors.Arity(key.Name, "a .spec metadata entry", len(app.Opts))
	}

	return w.ReduceChildren(key, node, []ast.Node{inner}, accept, ctx)
}

// enumHandler extracts each set member as a standalone leaf schema.
// Iteration order follows the enumeration's stored member order, which
// is stable within one run.
func enumHandler(w *Walker, key Key, node ast.Node, accept Reducer, ctx any) (any, error) {
	enum, err := w.EnumForm(node)
	if err != nil {
		return nil, err
	}

	children := make([]ast.Node, 0, len(enum.Members))
	for _, member := range enum.Members {
		if n, ok := member.(ast.Node); ok {
			children = append(children, n)
			continue
		}
		children = append(children, &ast.Literal{Value: member})
	}

	return w.ReduceChildren(key, node, children, accept, ctx)
}
