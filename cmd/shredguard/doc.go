// Package shredguard provides the command-line interface for the ShredGuard
// tool. It configures subcommands (check, fix, init, etc.), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/shredguard/shredguard/cmd/shredguard"
//	func main() { shredguard.Execute() }
package shredguard
