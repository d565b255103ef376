// Package core provides a small, stable facade over ShredGuard's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so pipelines and third-party tools can depend on a stable import
// path without reaching into internal implementation packages.
//
// Example:
//
//	set, err := core.CompileRules(defs)
//	if err != nil { /* handle */ }
//	matches, err := core.Check(core.Config{Root: "."}, set)
//	if err != nil { /* handle */ }
//	_ = core.MarshalMatches(os.Stdout, matches)
package core
