// Package cli implements the myshortcuts command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Every call returns fresh commands, so
// tests can run them in isolation.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "myshortcuts",
		Short: "Address-bar shortcuts backed by your bookmarks",
		Long: `myshortcuts turns a bookmark folder into address-bar shortcuts.

Type part of a shortcut name to jump to it, "<alias> <terms>" to search
with a saved search engine, anything else to search the web.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr")

	root.AddCommand(
		newServeCmd(opts),
		newInitCmd(opts),
		newAddCmd(opts),
		newCheckCmd(opts),
		newEngineCmd(opts),
		newListCmd(opts),
		newSuggestCmd(opts),
		newOpenCmd(opts),
		newPickCmd(opts),
		newImportCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
