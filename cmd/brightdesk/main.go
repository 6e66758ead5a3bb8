// Package main is the single-binary entrypoint for BrightDesk.
package main

import "github.com/brightdesk/brightdesk/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
