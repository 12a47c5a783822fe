package walk

import "github.com/chkup/spec-tools/pkg/sel/ast"

// NamespaceWalk is the namespace of dispatch keys the walker
// synthesizes itself: the enumeration sentinel and the refined
// collection kinds. Keeping them out of ast.NamespaceCore means they
// can never collide with a literal combinator spelling.
const NamespaceWalk = "sel.walk"

// Synthesized dispatch-key names.
var (
	// NameEnum is the sentinel key for raw-set enumeration nodes.
	NameEnum = ast.QName{Space: NamespaceWalk, Local: "enum-of"}

	// Refined keys for homogeneous-collection nodes. The literal head
	// is the same for all three; the collection-kind resolver decides
	// which one the reducer observes.
	NameMapOf      = ast.QName{Space: NamespaceWalk, Local: "map-of"}
	NameSetOf      = ast.QName{Space: NamespaceWalk, Local: "set-of"}
	NameSequenceOf = ast.QName{Space: NamespaceWalk, Local: "sequence-of"}
)

// Key identifies what kind of node is being dispatched. It is either a
// canonical combinator name (which may be a synthesized walker name),
// the enumeration sentinel, or (for unrecognized nodes) the node
// itself, carried in Opaque so that foreign values never need to be
// hashable.
type Key struct {
	// Name is the canonical combinator or sentinel name. Zero when the
	// key is opaque.
	Name ast.QName

	// Opaque holds the node itself when it has no recognizable form.
	Opaque ast.Node
}

// KeyFor returns the dispatch key for a canonical name.
func KeyFor(name ast.QName) Key {
	return Key{Name: name}
}

// OpaqueKey returns the identity dispatch key for an unrecognized node.
func OpaqueKey(node ast.Node) Key {
	return Key{Opaque: node}
}

// IsOpaque reports whether the key is the node's own identity.
func (k Key) IsOpaque() bool {
	return k.Opaque != nil
}

// IsEnum reports whether the key is the enumeration sentinel.
func (k Key) IsEnum() bool {
	return k.Name == NameEnum
}

// String returns the key's name, or "opaque" for identity keys. Used
// as the dispatch-kind label in logs and metrics.
func (k Key) String() string {
	if k.IsOpaque() {
		return "opaque"
	}
	return k.Name.String()
}
