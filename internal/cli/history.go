package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brightdesk/brightdesk/internal/platform"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "max entries to show (default from config)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history USER",
	Short: "Show a student's recent XP ledger entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	p, err := platform.Open(nil)
	if err != nil {
		return err
	}
	defer p.Close()

	entries, err := p.Gamify.XPHistory(cmd.Context(), args[0], historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No XP recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tAMOUNT\tSOURCE\tREF")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t+%d\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Amount, e.Source, e.SourceID)
	}
	return w.Flush()
}
