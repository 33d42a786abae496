package main

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"go-portfolio-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunServerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv) }()

	cancel()
	require.NoError(t, <-done)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_SECRET", "s3cret")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--subject", "teacher"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, Execute())

	subject, err := auth.NewSigner("s3cret").Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "teacher", subject)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_SECRET", "")
	t.Setenv("LOG_LEVEL", "error")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"token"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, Execute())
}
