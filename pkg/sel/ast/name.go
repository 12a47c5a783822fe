package ast

import "strings"

// Namespace constants for the schema expression language.
//
// A schema is defined once but may be evaluated under two different
// runtime families; each family spells the same combinators under its
// own namespace. Dispatch normalizes the alternates to NamespaceCore.
const (
	// NamespaceCore is the canonical combinator namespace.
	NamespaceCore = "sel.core"
	// NamespaceServer is the server-runtime spelling of NamespaceCore.
	NamespaceServer = "sel.server"
	// NamespaceClient is the client-runtime spelling of NamespaceCore.
	NamespaceClient = "sel.client"
)

// QName is a namespace-qualified name.
// The zero value is the empty name.
type QName struct {
	Space string // namespace, may be empty for bare names
	Local string // local name
}

// Core returns the canonical qualified name for a core combinator.
func Core(local string) QName {
	return QName{Space: NamespaceCore, Local: local}
}

// ParseQName parses a textual name of the form "namespace/local" or "local".
// Only the last slash separates the namespace from the local name, so
// namespaces may themselves contain slashes.
func ParseQName(s string) QName {
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return QName{Space: s[:i], Local: s[i+1:]}
	}
	return QName{Local: s}
}

// String returns the textual form of the name.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}
	return q.Space + "/" + q.Local
}

// IsZero reports whether the name is empty.
func (q QName) IsZero() bool {
	return q.Space == "" && q.Local == ""
}

// Canonical names of the built-in combinators.
var (
	And        = Core("and")     // conjunction of operand schemas
	Or         = Core("or")      // disjunction of labeled alternatives
	Merge      = Core("merge")   // structural merge of operand schemas
	Keys       = Core("keys")    // keyed record of named-schema references
	KeysPos    = Core("keys*")   // positional-keys variant of Keys
	Every      = Core("every")   // homogeneous collection of one element schema
	CollOf     = Core("coll-of") // bounded variant of Every
	MapOf      = Core("map-of")  // key-value map of two schemas
	EveryKV    = Core("every-kv") // generalized key/value predicate pair
	ZeroOrMore = Core("*")       // repetition: zero or more
	OneOrMore  = Core("+")       // repetition: one or more
	Optional   = Core("?")       // repetition: zero or one
	Alt        = Core("alt")     // labeled alternative sequence
	Cat        = Core("cat")     // labeled concatenation sequence
	Amp        = Core("&")       // sequence-suffix marker
	Tuple      = Core("tuple")   // fixed-arity tuple of positional schemas
	Nilable    = Core("nilable") // nilable wrapper
	Spec       = Core("spec")    // opaque spec-with-metadata wrapper
	Fn         = Core("fn")      // anonymous-function constructor
)
