// Package config loads ShredGuard configuration from TOML files with a
// nearest-enclosing search, compiling pattern definitions into a rule set.
// It is internal; CLI code maps flags and files into engine configuration.
package config
