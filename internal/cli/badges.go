package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightdesk/brightdesk/internal/platform"
)

func init() {
	rootCmd.AddCommand(badgesCmd)
}

var badgesCmd = &cobra.Command{
	Use:   "badges USER",
	Short: "Show the badge catalog with a student's earned state",
	Args:  cobra.ExactArgs(1),
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	p, err := platform.Open(nil)
	if err != nil {
		return err
	}
	defer p.Close()

	statuses, err := p.Gamify.AllBadges(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, s := range statuses {
		mark := " "
		when := ""
		if s.Earned {
			mark = "✓"
			when = "  earned " + s.EarnedAt.Format("2006-01-02")
		}
		fmt.Printf("[%s] %s %-16s %s%s\n", mark, s.Icon, s.Name, s.Description, when)
	}
	return nil
}
