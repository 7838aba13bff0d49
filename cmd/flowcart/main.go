package main

import (
	"os"

	"github.com/ankek/flow-cartography/internal/cli"
)

// Build-time version info, injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
