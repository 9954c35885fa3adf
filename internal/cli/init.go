package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
)

func newInitCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the myshortcuts folders in the bookmark store",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, _ []string, s *session) error {
			st, err := s.catalog.EnsureStructure(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, okStyle.Render("✓ folders ready"))
			fmt.Fprintf(out, "  %s  %s\n", labelStyle.Render(catalog.RootFolder), dimStyle.Render(st.RootID))
			fmt.Fprintf(out, "  %s  %s\n", labelStyle.Render(catalog.RootFolder+"/"+catalog.ShortcutsFolder), dimStyle.Render(st.ShortcutsID))
			fmt.Fprintf(out, "  %s  %s\n", labelStyle.Render(catalog.RootFolder+"/"+catalog.SearchEnginesFolder), dimStyle.Render(st.SearchEnginesID))
			return nil
		}),
	}
}
