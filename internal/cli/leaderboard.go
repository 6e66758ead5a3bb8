package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brightdesk/brightdesk/internal/platform"
)

var leaderboardClass string

func init() {
	leaderboardCmd.Flags().StringVar(&leaderboardClass, "class", "", "rank a class roster instead of the global board")
	rootCmd.AddCommand(leaderboardCmd)
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the XP leaderboard",
	Args:  cobra.NoArgs,
	RunE:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	p, err := platform.Open(nil)
	if err != nil {
		return err
	}
	defer p.Close()

	entries, err := p.Gamify.Leaderboard(cmd.Context(), leaderboardClass)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No activity recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tNAME\tXP\tLEVEL\tSTREAK")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\n", e.Rank, e.Name, e.TotalXP, e.Level, e.Streak)
	}
	return w.Flush()
}
