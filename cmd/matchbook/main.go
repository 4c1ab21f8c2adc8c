// Package main provides the entry point for the matchbook CLI tool.
package main

import (
	"github.com/procurelab/matchbook/cmd/matchbook/cmd"
)

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
