// Package config loads, normalizes, and validates coffer configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads the TOML file, and manages the secret key file the
// signed store signs with. The Config type centralizes every knob the CLI
// needs: the store root, the active database location, the key file, and
// log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths and clear validation errors.
package config
