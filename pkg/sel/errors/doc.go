// Package errors provides typed errors for the schema expression
// walker and its registry collaborators.
//
// The taxonomy is deliberately small:
//
// ErrorTypeArity: a combinator's literal expression has the wrong
// argument shape for its extraction rule. A hard failure: the walk
// stops rather than aggregating over a malformed node.
//
// ErrorTypeDecode: a stored or serialized expression cannot be read
// back into an AST.
//
// ErrorTypeInternal: a walker precondition was violated. Programmer
// error, not a data error.
//
// Two conditions are intentionally not errors: an unresolvable handle
// (an opaque leaf, dispatched by identity) and an unknown combinator
// (dispatched to the default no-children handler for forward
// compatibility).
//
// ErrorList accumulates errors across a batch operation such as
// loading a definition file, in the same shape as a single Error.
package errors
