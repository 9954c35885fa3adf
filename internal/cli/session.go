package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/app"
	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/config"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

type globalOptions struct {
	verbose bool
}

// session is what a command needs to talk to the bookmark store.
type session struct {
	cfg     *config.Config
	log     logger.Logger
	tree    store.Tree
	catalog *catalog.Catalog
}

// loadConfig turns config.Load panics into errors; a CLI typo should not
// print a stack trace.
func loadConfig() (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return config.Load(), nil
}

func newLogger(opts *globalOptions, cfg *config.Config) logger.Logger {
	if !opts.verbose {
		return logger.NewNop()
	}
	return logger.New(cfg.LogLevel, true)
}

func openSession(ctx context.Context, opts *globalOptions) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(opts, cfg)

	tree, err := app.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		log:     log,
		tree:    tree,
		catalog: catalog.New(tree, log),
	}, nil
}

func (s *session) Close() {
	if err := s.tree.Close(); err != nil {
		s.log.Warn("failed to close store", logger.Error(err))
	}
	_ = s.log.Sync()
}

// withSession opens the store around fn.
func withSession(opts *globalOptions, fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(cmd, args, s)
	}
}
