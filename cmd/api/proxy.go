package main

import (
	"context"
	"go-portfolio-backend/internal/proxy"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var proxyPort string

func init() { //nolint: gochecknoinits
	proxyCmd.Flags().StringVar(&proxyPort, "port", "3001", "Port the proxy listens on")
	rootCmd.AddCommand(proxyCmd)
}

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Forward requests to UPSTREAM_API_URL for local front-end development",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return runProxy(ctx)
	},
}

func runProxy(ctx context.Context) error {
	if cfg.UpstreamAPIURL == "" {
		log.Warn().Msg("UPSTREAM_API_URL is empty; every request will fail")
	}
	log.Info().Str("port", proxyPort).Str("upstream", cfg.UpstreamAPIURL).Msg("starting proxy")

	f := proxy.NewForwarder(cfg.UpstreamAPIURL, nil)
	srv := &http.Server{
		Addr:              ":" + proxyPort,
		Handler:           proxy.NewRouter(f),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return runServer(ctx, srv)
}
