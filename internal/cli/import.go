package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/importer"
	"github.com/MrSnakeDoc/myshortcuts/internal/sources/homepage"
)

const (
	formatHTML              = "html"
	formatHomepageBookmarks = "homepage-bookmarks"
	formatHomepageServices  = "homepage-services"
)

func newImportCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		folder string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import shortcuts from a browser export or a homepage dashboard config",
		Long: `Import shortcuts. Names already in use are skipped.

Formats:
  html                 Netscape bookmark file exported by any browser
  homepage-bookmarks   bookmarks.yaml of a homepage dashboard
  homepage-services    services.yaml of a homepage dashboard`,
		Example: `  myshortcuts import bookmarks.html --folder myshortcuts/shortcuts
  myshortcuts import --format homepage-services services.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: withSession(opts, func(cmd *cobra.Command, args []string, s *session) error {
			entries, err := readImport(args[0], format, folder)
			if err != nil {
				return err
			}

			res, err := s.catalog.ImportShortcuts(cmd.Context(), entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(
				fmt.Sprintf("✓ imported %d shortcuts, skipped %d", res.Added, res.Skipped)))
			return nil
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatHTML,
		"html, homepage-bookmarks or homepage-services")
	cmd.Flags().StringVar(&folder, "folder", "",
		"html only: import the bookmarks of this folder path (matched as a suffix)")
	return cmd
}

func readImport(path, format, folder string) ([]domain.Candidate, error) {
	switch format {
	case formatHTML:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		entries, err := importer.ParseHTML(f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return importer.Candidates(importer.InFolder(entries, folder)), nil

	case formatHomepageBookmarks:
		cfg, err := homepage.LoadBookmarks(path)
		if err != nil {
			return nil, err
		}
		return homepage.MapBookmarks(cfg)

	case formatHomepageServices:
		cfg, err := homepage.LoadServices(path)
		if err != nil {
			return nil, err
		}
		return homepage.MapServices(cfg)

	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
