package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/picker"
)

func newOpenCmd(opts *globalOptions) *cobra.Command {
	var (
		printOnly   bool
		disposition string
	)

	cmd := &cobra.Command{
		Use:   "open <query...>",
		Short: "Resolve a query like the address bar would and open it",
		Example: `  myshortcuts open git
  myshortcuts open g golang generics
  myshortcuts open --print docs`,
		Args: cobra.MinimumNArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			d, ok := domain.ParseDisposition(disposition)
			if !ok {
				return fmt.Errorf("invalid disposition %q", disposition)
			}

			snap := s.catalog.Snapshot(cmd.Context())
			res := domain.Resolve(strings.Join(args, " "), d, snap.Shortcuts, snap.Aliases, s.cfg.FallbackSearchURL)
			s.log.Debug("query resolved",
				logger.String("kind", string(res.Kind)),
				logger.String("url", res.URL),
				logger.String("disposition", string(res.Disposition)))

			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), res.URL)
				return nil
			}
			return launch(cmd, res.URL, res.Label)
		}),
	}
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the URL instead of opening it")
	cmd.Flags().StringVarP(&disposition, "disposition", "d", string(domain.DispositionCurrentTab),
		"currentTab, newForegroundTab or newBackgroundTab")
	return cmd
}

func newPickCmd(opts *globalOptions) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "pick [query...]",
		Short: "Type a query and choose among live suggestions",
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			snap := s.catalog.Snapshot(cmd.Context())
			p := picker.New(strings.Join(args, " "), snap.Shortcuts, snap.Aliases, s.cfg.FallbackSearchURL)

			program := tea.NewProgram(p,
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()))
			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("picker failed: %w", err)
			}

			choice, ok := final.(picker.Picker).Choice()
			if !ok {
				return nil
			}
			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), choice.URL)
				return nil
			}
			return launch(cmd, choice.URL, choice.Suggestion.Content)
		}),
	}
	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the URL instead of opening it")
	return cmd
}

func launch(cmd *cobra.Command, url, label string) error {
	if label == "" {
		label = url
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Opening: %s %s\n", label, dimStyle.Render(url))
	if err := openBrowser(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
