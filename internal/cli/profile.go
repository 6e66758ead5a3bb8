package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brightdesk/brightdesk/internal/platform"
)

func init() {
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile USER",
	Short: "Show a student's XP, level, streak, and badges",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	p, err := platform.Open(nil)
	if err != nil {
		return err
	}
	defer p.Close()

	profile, err := p.Gamify.Profile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("User:    %s\n", profile.UserID)
	fmt.Printf("Level:   %d\n", profile.XP.Level)
	fmt.Printf("XP:      %d (%d/%d to next level, %.0f%%)\n",
		profile.XP.Total, profile.XP.Progress, profile.XP.XPNeeded, profile.XP.Pct)
	fmt.Printf("Streak:  %d day(s), longest %d\n", profile.Streak.Current, profile.Streak.Longest)
	if !profile.Streak.LastLogin.IsZero() {
		fmt.Printf("Login:   %s\n", profile.Streak.LastLogin)
	}

	if len(profile.Badges) == 0 {
		fmt.Println("Badges:  none yet")
		return nil
	}
	fmt.Printf("Badges:  %d\n", len(profile.Badges))
	for _, b := range profile.Badges {
		fmt.Printf("  %s %-16s %s (%s)\n",
			b.Icon, b.Name, b.Description, b.EarnedAt.Format("2006-01-02"))
	}
	return nil
}
