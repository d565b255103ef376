// Package engine contains the core scan logic for ShredGuard. It discovers
// candidate files, applies the compiled pattern set, and returns
// position-annotated matches. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
