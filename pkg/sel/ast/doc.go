// Package ast provides the typed representation of schema expressions
// for the Schema Expression Language (SEL).
//
// A schema expression is a value built from primitive predicates and a
// fixed set of compositional combinators: conjunction, disjunction,
// sequencing, repetition, keyed records, homogeneous collections,
// key-value collections, tuples, optional/nilable wrapping, and
// enumerations. This package models that union as a small set of node
// variants so that walkers never have to re-derive node shape from
// untyped sequences.
//
// # Node Variants
//
// Named: reference to a registered schema, resolved through a registry
//
// Symbol: bare predicate name ("sel.core/string?"), combinator head or leaf
//
// Handle: opaque schema value, inspectable only through a form resolver
//
// Application: combinator head applied to positional arguments and
// ordered keyword options
//
// Binding: parameter list of an anonymous-function wrapper
//
// Names: vector of schema-name references (record key declarations)
//
// Literal: plain embedded value (collection hints, metadata scalars)
//
// Enumeration: raw set treated as a membership predicate
//
// Predicate: bare callable with no symbolic form
//
// # Building Expressions
//
// Expressions are assembled directly from the node structs:
//
//	// ["sel.core/or", .ok ":user/email", .id "sel.core/int?"]
//	schema := &ast.Application{
//	    Head: ast.Or,
//	    Opts: []ast.KeywordArg{
//	        {Key: "ok", Value: ast.NewNamed("user/email")},
//	        {Key: "id", Value: ast.NewSymbol("sel.core/int?")},
//	    },
//	}
//
// # Dialects
//
// The same combinator may be spelled under NamespaceServer or
// NamespaceClient depending on which runtime family evaluates the
// schema. The form package canonicalizes both to NamespaceCore before
// dispatch.
//
// # Immutability
//
// Nodes are immutable after construction. A walk reads the expression
// tree; it never creates, mutates, or destroys nodes.
package ast
