package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoro11031/routegen/internal/config"
	"github.com/zoro11031/routegen/internal/proxy"
)

var (
	tokenUserID   string
	tokenAPIToken string
	tokenTTL      time.Duration
	tokenEnvFile  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a session token for testing the proxy",
	Long: `Sign a session token with AUTH_SECRET and print it to stdout.

Send it as the session cookie or as "Authorization: Bearer <token>" when
calling 'routegen serve'.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User id stored in the session")
	tokenCmd.Flags().StringVar(&tokenAPIToken, "api-token", "", "Backend API token stored in the session")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")
	tokenCmd.Flags().StringVar(&tokenEnvFile, "env-file", ".env", "Dotenv file read for settings")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenUserID == "" && tokenAPIToken == "" {
		return fmt.Errorf("at least one of --user-id or --api-token is required")
	}
	if tokenTTL <= 0 {
		return fmt.Errorf("--ttl must be positive")
	}

	settings, err := config.LoadServeSettings(config.New(configPath), tokenEnvFile)
	if err != nil {
		return fmt.Errorf("failed to load serve settings: %w", err)
	}

	resolver := proxy.NewSessionResolver(settings.AuthSecret, settings.SessionCookie)
	token, err := resolver.Sign(proxy.Session{Token: tokenAPIToken, UserID: tokenUserID}, tokenTTL)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
