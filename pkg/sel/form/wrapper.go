package form

import "github.com/chkup/spec-tools/pkg/sel/ast"

// StripWrapper unwraps a schema expression supplied as a
// single-parameter anonymous-function application:
//
//	["sel.core/fn", [x], ["sel.core/coll-of", ...]]
//
// becomes the body expression. Anything else is returned unchanged.
//
// The unwrap is shallow: exactly one level, matching the narrow case of
// predicates written as wrapper lambdas. Nested wrappers stay wrapped.
func StripWrapper(node ast.Node) ast.Node {
	app, ok := node.(*ast.Application)
	if !ok || Canonicalize(app.Head) != ast.Fn {
		return node
	}
	if len(app.Args) != 2 || len(app.Opts) != 0 {
		return node
	}
	binding, ok := app.Args[0].(*ast.Binding)
	if !ok || len(binding.Params) != 1 {
		return node
	}
	if body, ok := app.Args[1].(*ast.Application); ok {
		return body
	}
	return node
}
