package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. Typically
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the flowcart CLI and returns an error if any command fails.
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext; --verbose switches it to debug level.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "flowcart",
		Short:        "flowcart renders flow definitions as diagrams",
		Long:         `flowcart turns record-triggered flow definitions (Salesforce Flow XML or HCL flow files) into Flow Builder-style PNG or JPEG diagrams.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("flowcart %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())

	return root.ExecuteContext(context.Background())
}
