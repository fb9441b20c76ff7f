package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghprojects",
	Short: "File issues into GitHub Projects and set their fields",
	Long: `ghprojects talks to the GitHub GraphQL API to create issues, add them to a
Projects (v2) board and set custom field values by name.

Credentials come from GITHUB_TOKEN, or from GITHUB_APP_ID,
GITHUB_APP_INSTALLATION_ID and GITHUB_APP_PRIVATE_KEY_PATH.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		logger().Error("command failed", "error", err)
		os.Exit(1)
	}
}
