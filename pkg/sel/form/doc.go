// Package form provides form extraction and normalization for schema
// expressions, plus the collaborator interfaces the walker consumes.
//
// Two pure utilities underpin dispatch classification:
//
// Canonicalize rewrites cross-dialect qualified names (the server and
// client runtime spellings of a combinator) to one canonical reference
// name, so the dispatch table needs a single row per combinator.
//
// StripWrapper sees through the syntactic noise of a predicate supplied
// as a one-parameter wrapper lambda, returning the schema expression
// underneath. The unwrap is deliberately one level deep.
//
// The package also defines the walker's external collaborators:
//
// Resolver turns opaque handles and named references into literal
// expressions. RegistryResolver is the default, backed by a NameLookup
// (any registry) and the Former interface for self-describing handles.
//
// CollectionKindResolver classifies a homogeneous-collection node as
// map, set, or sequence shaped. HintResolver is the default, driven by
// the expression's ".kind" and ".into" hints.
package form
