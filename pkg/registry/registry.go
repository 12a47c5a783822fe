package registry

import (
	"github.com/chkup/spec-tools/pkg/sel/ast"
)

// Registry stores named schema definitions. It is the name-registry
// collaborator the walker and its reducers consume: Lookup satisfies
// form.NameLookup directly.
//
// Implementations must support any number of concurrent readers;
// writes may be serialized internally.
type Registry interface {
	// Register stores a definition under name, replacing any previous
	// definition for that name.
	Register(name ast.QName, def ast.Node) error

	// Lookup returns the stored definition for name.
	Lookup(name ast.QName) (ast.Node, bool)

	// Names returns every registered name in sorted order.
	Names() []ast.QName

	// Len returns the number of registered definitions.
	Len() int
}
