package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/myshortcuts/internal/app"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
)

func newServeCmd(_ *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the suggestion and redirect HTTP service",
		Long: `Run the HTTP service browsers point their search engine at.

Configuration comes from MYSHORTCUTS_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// the server always logs
			log := logger.New(cfg.LogLevel, cfg.PrettyLog)
			defer func() { _ = log.Sync() }()

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
