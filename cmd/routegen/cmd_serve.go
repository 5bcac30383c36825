package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/zoro11031/routegen/internal/config"
	"github.com/zoro11031/routegen/internal/proxy"
)

var (
	serveEnvFile string
	serveJSONLog bool
	serveDebug   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the customer route handlers from a local proxy",
	Long: `Run the customer route handlers as a Go HTTP server.

Requests to /api/customers/:id are authenticated from the session cookie
(or an Authorization bearer header) and forwarded to the backend API.

Settings come from the environment, then the .env file, then the settings
file:
  NEXT_PUBLIC_API_URL        backend API base URL
  AUTH_SECRET                HS256 secret for session tokens (required)
  ROUTEGEN_LISTEN_ADDR       listen address
  ROUTEGEN_SESSION_COOKIE    session cookie name
  ROUTEGEN_ALLOWED_ORIGINS   comma separated CORS origins
  ROUTEGEN_UPSTREAM_TIMEOUT  backend request timeout`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveEnvFile, "env-file", ".env", "Dotenv file read for settings")
	serveCmd.Flags().BoolVar(&serveJSONLog, "json", false, "Log as JSON")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging and gin debug mode")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	settings, err := config.LoadServeSettings(config.New(configPath), serveEnvFile)
	if err != nil {
		return fmt.Errorf("failed to load serve settings: %w", err)
	}

	if serveDebug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := proxy.NewServer(settings, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if serveDebug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if serveJSONLog {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
