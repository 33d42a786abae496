package main

import (
	"fmt"
	"go-portfolio-backend/config"
	"go-portfolio-backend/pkg/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "portfolio",
		Short: "Teacher portfolio backend",
		Long: `Serves the teacher portfolio REST API and ships the tools around it:
schema migrations, the development proxy, authoring tokens and file backups.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.LoadConfig(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			if err := logger.Init(logger.Config{
				Level:         cfg.LogLevel,
				ServiceName:   "portfolio",
				Console:       true,
				ConsolePretty: cfg.LogConsolePretty,
				FilePath:      cfg.LogFilePath,
			}); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			for _, w := range cfg.Warnings() {
				log.Warn().Msg(w)
			}
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
