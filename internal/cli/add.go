package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

func newAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "add <name> <url>",
		Short:   "Save a shortcut",
		Example: `  myshortcuts add GitHub https://github.com`,
		Args:    cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			return save(cmd, args, s.catalog.SaveShortcut, "shortcut")
		}),
	}
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <name>",
		Short: "Tell whether a shortcut name is already used",
		Args:  cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			existing, err := s.catalog.CheckDuplicate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if existing == nil {
				fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("✓ %q is available", args[0])))
				return nil
			}
			fmt.Fprintf(out, "%s %s\n",
				errStyle.Render(fmt.Sprintf("✗ Name already used: %q", existing.Title)),
				dimStyle.Render(existing.URL))
			return nil
		}),
	}
}

func newEngineCmd(opts *globalOptions) *cobra.Command {
	engine := &cobra.Command{
		Use:   "engine",
		Short: "Manage search engine aliases",
	}

	engine.AddCommand(&cobra.Command{
		Use:   "add <name> <url-template>",
		Short: "Save a search engine; the URL must contain %s",
		Long: `Save a search engine. Typing "<name> <terms>" in the address bar
opens the template with %s replaced by the terms.`,
		Example: `  myshortcuts engine add g 'https://www.google.com/search?q=%s'`,
		Args:    cobra.ExactArgs(2),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			return save(cmd, args, s.catalog.SaveSearchEngine, "search engine")
		}),
	})

	engine.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List search engines",
		Args:  cobra.NoArgs,
		RunE: withSession(opts, func(cmd *cobra.Command, _ []string, s *session) error {
			aliases, err := s.catalog.SearchEngines(cmd.Context())
			if err != nil {
				return err
			}
			printAliases(cmd, aliases)
			return nil
		}),
	})

	return engine
}

func save(cmd *cobra.Command, args []string, fn func(context.Context, string, string) (store.Node, error), what string) error {
	n, err := fn(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("✓ %s %q saved", what, n.Title)))
	return nil
}
