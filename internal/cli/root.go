// Package cli implements the BrightDesk command-line interface using
// Cobra. Each subcommand maps to one engine operation (record, profile,
// leaderboard, badges, history).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brightdesk",
	Short: "BrightDesk — Student gamification engine",
	Long: `BrightDesk tracks study activity as XP: an append-only ledger,
levels, daily-login streaks, and unlockable badges.

Record events with "brightdesk record", inspect state with
"profile", "leaderboard", "badges", and "history".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
