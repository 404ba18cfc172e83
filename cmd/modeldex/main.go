// Package main provides the entry point for the modeldex CLI tool.
package main

import "github.com/modeldex/modeldex/cmd/modeldex/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
