package gamify

import (
	"context"
	"fmt"
	"time"

	"github.com/brightdesk/brightdesk/internal/domain"
	"github.com/brightdesk/brightdesk/internal/infra/sqlite"
)

// Evaluator grants catalog badges when a tracked metric meets a
// threshold. Callers supply the authoritative metric value; the
// evaluator never recomputes metrics itself.
type Evaluator struct {
	catalog []domain.Badge
	now     func() time.Time
}

// NewEvaluator creates an evaluator over a loaded catalog. Badges must
// carry store-assigned IDs.
func NewEvaluator(catalog []domain.Badge) *Evaluator {
	return &Evaluator{catalog: catalog, now: time.Now}
}

// Catalog returns the full badge catalog.
func (e *Evaluator) Catalog() []domain.Badge { return e.catalog }

// CheckAndAward grants every badge of the given criteria type whose
// threshold the value meets and that the user does not hold yet.
// Idempotent: re-checking with the same or a larger value awards
// nothing new. Returns the newly earned badges.
func (e *Evaluator) CheckAndAward(ctx context.Context, db *sqlite.DB, userID string, criteria domain.CriteriaType, value int64) ([]domain.Badge, error) {
	var earned []domain.Badge
	for _, b := range e.catalog {
		if b.Criteria != criteria || b.Threshold > value {
			continue
		}
		fresh, err := db.InsertAward(ctx, userID, b.ID, e.now())
		if err != nil {
			return nil, fmt.Errorf("award badge %q: %w", b.Name, err)
		}
		if fresh {
			earned = append(earned, b)
		}
	}
	return earned, nil
}

// DefaultCatalog returns the built-in badge catalog.
func DefaultCatalog() []domain.Badge {
	return []domain.Badge{
		{Name: "First Steps", Description: "Complete your first flashcard set", Icon: "🎯", Criteria: domain.CriteriaFlashcardSets, Threshold: 1},
		{Name: "Card Shark", Description: "Complete 5 flashcard sets", Icon: "🃏", Criteria: domain.CriteriaFlashcardSets, Threshold: 5},
		{Name: "Flash Master", Description: "Complete 20 flashcard sets", Icon: "⚡", Criteria: domain.CriteriaFlashcardSets, Threshold: 20},
		{Name: "Quiz Rookie", Description: "Complete your first quiz", Icon: "📝", Criteria: domain.CriteriaQuizzes, Threshold: 1},
		{Name: "Quiz Pro", Description: "Complete 10 quizzes", Icon: "🏆", Criteria: domain.CriteriaQuizzes, Threshold: 10},
		{Name: "Perfect Score", Description: "Get 100% on a quiz", Icon: "💯", Criteria: domain.CriteriaPerfectQuiz, Threshold: 1},
		{Name: "XP Hunter", Description: "Earn 100 XP", Icon: "✨", Criteria: domain.CriteriaTotalXP, Threshold: 100},
		{Name: "XP Champion", Description: "Earn 500 XP", Icon: "🌟", Criteria: domain.CriteriaTotalXP, Threshold: 500},
		{Name: "XP Legend", Description: "Earn 2000 XP", Icon: "👑", Criteria: domain.CriteriaTotalXP, Threshold: 2000},
		{Name: "Streak Starter", Description: "Maintain a 3-day streak", Icon: "🔥", Criteria: domain.CriteriaStreak, Threshold: 3},
		{Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "💪", Criteria: domain.CriteriaStreak, Threshold: 7},
		{Name: "Streak Legend", Description: "Maintain a 30-day streak", Icon: "🏅", Criteria: domain.CriteriaStreak, Threshold: 30},
		{Name: "Daily Learner", Description: "Log in for the first time", Icon: "📚", Criteria: domain.CriteriaDailyLogin, Threshold: 1},
	}
}
