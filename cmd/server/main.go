// Package main is the entry point for the Mesto API server. It loads
// configuration, establishes database connections, applies migrations,
// wires the auth and users plugins, and starts the HTTP server.
package main

import (
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
