package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brightdesk/brightdesk/internal/domain"
	"github.com/brightdesk/brightdesk/internal/platform"
)

func init() {
	recordCmd.AddCommand(recordLoginCmd, recordQuizCmd, recordFlashcardsCmd)
	rootCmd.AddCommand(recordCmd)
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a study event and award XP",
}

var recordLoginCmd = &cobra.Command{
	Use:   "login USER",
	Short: "Record a daily login",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordLogin,
}

var recordQuizCmd = &cobra.Command{
	Use:   "quiz USER QUIZ SCORE TOTAL",
	Short: "Record a completed quiz attempt",
	Args:  cobra.ExactArgs(4),
	RunE:  runRecordQuiz,
}

var recordFlashcardsCmd = &cobra.Command{
	Use:   "flashcards USER SET CORRECT TOTAL",
	Short: "Record a completed flashcard set",
	Args:  cobra.ExactArgs(4),
	RunE:  runRecordFlashcards,
}

func runRecordLogin(cmd *cobra.Command, args []string) error {
	p, err := platform.Open(nil)
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.Gamify.OnLogin(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if !result.IsNewDay {
		fmt.Printf("Already logged in today. Streak: %d day(s).\n", result.Streak)
		return nil
	}
	fmt.Printf("Login recorded. Streak: %d day(s), +%d XP", result.Streak, result.XPEarned)
	if result.BonusXP > 0 {
		fmt.Printf(" (includes %d streak bonus)", result.BonusXP)
	}
	fmt.Println()
	printNewBadges(result.NewBadges)
	return nil
}

func runRecordQuiz(cmd *cobra.Command, args []string) error {
	score, total, err := parseCounts(args[2], args[3])
	if err != nil {
		return err
	}

	p, err := platform.Open(nil)
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.Gamify.OnQuizComplete(cmd.Context(), args[0], args[1], score, total)
	if err != nil {
		return err
	}

	fmt.Printf("Quiz recorded: %d/%d, +%d XP, level %d (total %d XP)\n",
		score, total, result.XPEarned, result.Level, result.TotalXP)
	if result.IsPerfect {
		fmt.Println("Perfect score!")
	}
	printNewBadges(result.NewBadges)
	return nil
}

func runRecordFlashcards(cmd *cobra.Command, args []string) error {
	correct, total, err := parseCounts(args[2], args[3])
	if err != nil {
		return err
	}

	p, err := platform.Open(nil)
	if err != nil {
		return err
	}
	defer p.Close()

	result, err := p.Gamify.OnFlashcardSetComplete(cmd.Context(), args[0], args[1], correct, total)
	if err != nil {
		return err
	}

	fmt.Printf("Flashcard set recorded: %d/%d, +%d XP, level %d (total %d XP)\n",
		correct, total, result.XPEarned, result.Level, result.TotalXP)
	printNewBadges(result.NewBadges)
	return nil
}

func parseCounts(a, b string) (int, int, error) {
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, fmt.Errorf("not a number: %q", a)
	}
	second, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, fmt.Errorf("not a number: %q", b)
	}
	return first, second, nil
}

func printNewBadges(badges []domain.Badge) {
	for _, b := range badges {
		fmt.Printf("New badge: %s %s — %s\n", b.Icon, b.Name, b.Description)
	}
}
