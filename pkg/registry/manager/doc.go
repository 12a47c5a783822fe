// Package manager serves a live schema definition set from files on
// disk, with hot reload on change and optional scheduled resync.
//
// Reloads are staged and atomic: schema files are parsed into a fresh
// set, and only a clean load replaces the set walkers resolve against.
// A broken edit leaves the last good definitions live and reports the
// failure through logs, metrics, and the Events channel.
package manager
