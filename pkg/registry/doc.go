// Package registry stores named schema definitions and resolves them
// for walkers.
//
// Two backends are provided: Memory, a copy-on-write in-memory store
// suitable for hot reloading, and SQLite, a durable store for
// deployments where the definition set must survive restarts. Both
// satisfy the Registry interface and, through it, form.NameLookup.
//
// The package also defines the YAML surface for schema expressions
// (DecodeExpr, EncodeExpr) and loaders that populate a registry from
// schema files (LoadFile, LoadDir). Loading is permissive: entries
// that fail to decode are reported in an errors.ErrorList while the
// remaining entries are still registered.
package registry
