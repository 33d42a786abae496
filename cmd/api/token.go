package main

import (
	"errors"
	"fmt"
	"go-portfolio-backend/pkg/auth"
	"time"

	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

func init() { //nolint: gochecknoinits
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "owner", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 30*24*time.Hour, "Token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the authoring routes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		signer := auth.NewSigner(cfg.AdminTokenSecret)
		if !signer.Enabled() {
			return errors.New("ADMIN_TOKEN_SECRET is not set; authoring routes accept requests without a token")
		}

		token, err := signer.Issue(tokenSubject, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
