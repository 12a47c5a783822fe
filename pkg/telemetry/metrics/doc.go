// Package metrics provides Prometheus instrumentation for schema walks
// and registry reloads.
//
// WalkMetrics is wired into a walker through its configuration; it
// counts visited nodes by dispatch kind and observes whole-walk
// durations and outcomes. RegistryMetrics is wired into the registry
// manager; it counts reloads and tracks the registered schema count.
//
// All metrics are registered against a caller-supplied
// *prometheus.Registry so embedding applications control exposure.
package metrics
