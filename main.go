package main

import "github.com/shredguard/shredguard/cmd/shredguard"

func main() { shredguard.Execute() }
