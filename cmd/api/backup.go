package main

import (
	"go-portfolio-backend/internal/repository/postgres"
	"go-portfolio-backend/internal/usecase"
	"go-portfolio-backend/pkg/database"
	"go-portfolio-backend/pkg/storage"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy every evidence file to the configured S3 bucket",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		store, err := storage.NewS3Store(ctx, cfg.S3)
		if err != nil {
			return err
		}

		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return errors.Wrap(err, "connect database")
		}
		defer dbPool.Close()

		report, err := usecase.NewBackupUsecase(postgres.NewEvidenceRepository(dbPool), store).Run(ctx)
		if err != nil {
			return err
		}

		log.Info().
			Int("evidences", report.Evidences).
			Int64("uploaded", report.Uploaded).
			Int("skipped", report.Skipped).
			Int64("bytes", report.Bytes).
			Str("bucket", cfg.S3.Bucket).
			Msg("backup finished")
		return nil
	},
}
