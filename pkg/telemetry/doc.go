// Package telemetry provides observability for the schema-walking
// library.
//
// Its single subpackage, metrics, exposes Prometheus instrumentation
// for walk traversal and registry reloads. Walkers and managers take
// metrics handles as optional configuration; everything works without
// them.
package telemetry
