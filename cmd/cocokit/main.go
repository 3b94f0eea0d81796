// Package main provides the entry point for the cocokit CLI tool.
package main

import "github.com/datasetlab/cocokit/cmd/cocokit/cmd"

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
