package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List shortcuts and search engines",
		Args:    cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, _ []string, s *session) error {
			snap := s.catalog.Snapshot(cmd.Context())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("Shortcuts (%d)", len(snap.Shortcuts))))
			for _, c := range snap.Shortcuts {
				fmt.Fprintf(out, "  %s  %s\n", c.Label, dimStyle.Render(c.Target))
			}
			fmt.Fprintln(out)
			printAliases(cmd, snap.Aliases)
			return nil
		}),
	}
}

func printAliases(cmd *cobra.Command, aliases []domain.Alias) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("Search engines (%d)", len(aliases))))
	for _, a := range aliases {
		fmt.Fprintf(out, "  %s  %s\n", strings.Join(a.Names, ", "), dimStyle.Render(a.URL))
	}
}
