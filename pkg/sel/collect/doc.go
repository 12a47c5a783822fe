// Package collect provides sample reducers built on the walker.
//
// Collector accumulates every named schema a walk encounters into a
// name → definition mapping. It demonstrates the reducer contract for
// stateful consumers: side-effecting accumulation is legal, but every
// invocation still returns a value usable as the node's result by the
// parent handler.
//
// The accumulator is an explicit caller-owned value rather than
// process-wide state, so concurrent walks simply use one Collector
// each.
package collect
