// Package main hosts the coffer CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into
// operations against the two configuration stores: reads and edits of
// hierarchical objects, listings, signature verification, payload export,
// bulk default installs, and key or config scaffolding. It centralizes
// configuration resolution, store wiring, and logger setup so subcommands
// can focus on user experience.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags
// here.
package main
