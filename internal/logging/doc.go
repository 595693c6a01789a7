// Package logging constructs the slog loggers used across the project.
//
// Two output formats share one construction path: an aligned console
// format for interactive use and JSON for everything else. The "auto"
// format picks between them based on whether the output is a terminal.
// Components derive their loggers through NewComponentLogger so every
// record carries a component attribute; tests and optional dependencies
// use NewNop.
package logging
