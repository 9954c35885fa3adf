package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

func newSuggestCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "suggest <query...>",
		Short: "Show the address-bar suggestions for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			query := strings.Join(args, " ")
			snap := s.catalog.Snapshot(cmd.Context())
			suggestions := domain.Suggest(query, snap.Shortcuts, snap.Aliases)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(suggestions)
			}

			for _, sg := range suggestions {
				fmt.Fprintf(out, "%d  %s\n", sg.Rank, sg.Description)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print suggestions as JSON")
	return cmd
}
