package form

import "github.com/chkup/spec-tools/pkg/sel/ast"

// dialects maps alternate runtime-family namespaces to the canonical
// combinator namespace. Both families produce structurally identical
// combinators; without this rewrite the dispatch table would need a
// duplicate row per spelling.
var dialects = map[string]string{
	ast.NamespaceServer: ast.NamespaceCore,
	ast.NamespaceClient: ast.NamespaceCore,
}

// Canonicalize rewrites a qualified name spelled under an alternate
// dialect namespace to its canonical spelling. Names under unknown
// namespaces pass through untouched. Pure and total: there is no
// failure mode.
func Canonicalize(name ast.QName) ast.QName {
	if canonical, ok := dialects[name.Space]; ok {
		return ast.QName{Space: canonical, Local: name.Local}
	}
	return name
}
