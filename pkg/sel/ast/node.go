package ast

import (
	"fmt"
	"sort"
)

// NodeKind identifies the variant of a schema-expression node.
type NodeKind int

const (
	KindNamed NodeKind = iota
	KindSymbol
	KindHandle
	KindApplication
	KindBinding
	KindNames
	KindLiteral
	KindEnumeration
	KindPredicate
)

// Node is a schema-expression node. Nodes are immutable once built:
// a walk never mutates the expression it traverses.
type Node interface {
	Kind() NodeKind
}

// Named is a reference to a registered schema. Its literal form is
// obtained through a form resolver backed by a name registry.
type Named struct {
	Name QName
}

func (*Named) Kind() NodeKind { return KindNamed }

// NewNamed returns a reference to the registered schema called name.
func NewNamed(name string) *Named {
	return &Named{Name: ParseQName(name)}
}

// Symbol is a bare predicate name, such as "sel.core/string?".
// Unlike Named, it does not resolve through a registry; it is either a
// combinator head or an opaque leaf predicate.
type Symbol struct {
	Name QName
}

func (*Symbol) Kind() NodeKind { return KindSymbol }

// NewSymbol returns a bare predicate symbol for name.
func NewSymbol(name string) *Symbol {
	return &Symbol{Name: ParseQName(name)}
}

// Handle wraps an opaque schema value whose literal form is not
// directly inspectable. A form resolver may know how to open it;
// otherwise the walker treats it as an opaque leaf.
type Handle struct {
	Value any
}

func (*Handle) Kind() NodeKind { return KindHandle }

// KeywordArg is one ordered keyword option of an Application.
type KeywordArg struct {
	Key   string
	Value Node
}

// Application is a combinator expression: a head name applied to
// positional arguments and ordered keyword options. Labeled
// combinators (or, alt, cat) carry their label/schema pairs as
// options; record combinators carry their key declarations the same
// way.
type Application struct {
	Head QName
	Args []Node
	Opts []KeywordArg
}

func (*Application) Kind() NodeKind { return KindApplication }

// Opt returns the value of the named keyword option.
func (a *Application) Opt(key string) (Node, bool) {
	for _, kw := range a.Opts {
		if kw.Key == key {
			return kw.Value, true
		}
	}
	return nil, false
}

// Binding is the parameter list of an anonymous-function constructor.
type Binding struct {
	Params []string
}

func (*Binding) Kind() NodeKind { return KindBinding }

// Names is a vector of schema-name references, as declared by the
// record combinator's key options.
type Names struct {
	Refs []QName
}

func (*Names) Kind() NodeKind { return KindNames }

// Literal is a plain non-schema value embedded in an expression, such
// as a collection hint or a metadata scalar.
type Literal struct {
	Value any
}

func (*Literal) Kind() NodeKind { return KindLiteral }

// Enumeration is a raw set of members, treated as a
// membership-of-the-set predicate. Members holds the set in the
// iteration order used for the duration of one walk.
type Enumeration struct {
	Members []any
}

func (*Enumeration) Kind() NodeKind { return KindEnumeration }

// EnumOf builds an enumeration whose iteration order is the argument
// order.
func EnumOf(members ...any) *Enumeration {
	return &Enumeration{Members: members}
}

// EnumFromSet builds an enumeration from a Go set. Members are ordered
// by their formatted value so that iteration order is stable within one
// run regardless of map iteration order.
func EnumFromSet[T comparable](set map[T]struct{}) *Enumeration {
	members := make([]any, 0, len(set))
	for m := range set {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		return fmt.Sprint(members[i]) < fmt.Sprint(members[j])
	})
	return &Enumeration{Members: members}
}

// Predicate is a bare callable predicate with no symbolic form. It is
// an opaque leaf unless a form resolver can extract a form for it.
type Predicate struct {
	Fn func(any) bool
	// Desc is an optional human-readable description used in logs.
	Desc string
}

func (*Predicate) Kind() NodeKind { return KindPredicate }
