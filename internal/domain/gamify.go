// Package domain holds the pure types of the BrightDesk gamification
// engine: XP ledger entries, level summaries, streaks, badges, and the
// result shapes returned to the calling controllers.
// Domain types carry no infrastructure dependency.
package domain

import "time"

// ─── XP Ledger ──────────────────────────────────────────────────────────────

// XPSource categorizes how XP was earned. Every ledger entry is tagged
// with exactly one source.
type XPSource string

const (
	SourceDailyLogin           XPSource = "daily_login"
	SourceStreakBonus3         XPSource = "streak_bonus_3"
	SourceStreakBonus7         XPSource = "streak_bonus_7"
	SourceStreakBonus30        XPSource = "streak_bonus_30"
	SourceFlashcardCorrect     XPSource = "flashcard_correct"
	SourceFlashcardSetComplete XPSource = "flashcard_set_complete"
	SourceQuizCorrect          XPSource = "quiz_correct"
	SourceQuizComplete         XPSource = "quiz_complete"
	SourceQuizPerfect          XPSource = "quiz_perfect"
)

// LedgerEntry is one immutable XP-earn event. The ledger is append-only
// and is the source of truth for a student's total XP.
type LedgerEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	Source    XPSource  `json:"source"`
	SourceID  string    `json:"source_id,omitempty"` // set/quiz that triggered the award
	CreatedAt time.Time `json:"created_at"`
}

// XPSummary is the cached per-user aggregate derived from the ledger.
// Invariant: TotalXP == SUM(ledger amounts) and Level == LevelForXP(TotalXP)
// after every write.
type XPSummary struct {
	UserID  string `json:"user_id"`
	TotalXP int64  `json:"total_xp"`
	Level   int    `json:"level"`
}

// ─── Streaks ────────────────────────────────────────────────────────────────

// StreakState tracks consecutive calendar days with at least one login.
// Invariant: Longest >= Current. LastLogin is empty until the first login.
type StreakState struct {
	UserID    string `json:"user_id"`
	Current   int    `json:"current_streak"`
	Longest   int    `json:"longest_streak"`
	LastLogin Date   `json:"last_login_date,omitempty"`
}

// ─── Badges ─────────────────────────────────────────────────────────────────

// CriteriaType is the metric a badge threshold is keyed against.
type CriteriaType string

const (
	CriteriaFlashcardSets CriteriaType = "flashcard_sets_completed"
	CriteriaQuizzes       CriteriaType = "quizzes_completed"
	CriteriaPerfectQuiz   CriteriaType = "perfect_quiz"
	CriteriaTotalXP       CriteriaType = "total_xp"
	CriteriaStreak        CriteriaType = "streak"
	CriteriaDailyLogin    CriteriaType = "daily_login"
)

// Badge is one catalog entry. The catalog is seeded once and immutable
// afterwards; ID is assigned by the store on first seed.
type Badge struct {
	ID          int64        `json:"id" toml:"-"`
	Name        string       `json:"name" toml:"name"`
	Description string       `json:"description" toml:"description"`
	Icon        string       `json:"icon" toml:"icon"`
	Criteria    CriteriaType `json:"criteria_type" toml:"criteria_type"`
	Threshold   int64        `json:"criteria_value" toml:"criteria_value"`
}

// EarnedBadge is a catalog badge together with when the user earned it.
type EarnedBadge struct {
	Badge
	EarnedAt time.Time `json:"earned_at"`
}

// BadgeStatus is a catalog badge annotated with a user's earned state.
type BadgeStatus struct {
	Badge
	Earned   bool      `json:"earned"`
	EarnedAt time.Time `json:"earned_at,omitzero"`
}

// ─── Quiz Attempts ──────────────────────────────────────────────────────────

// QuizAttempt records one scored quiz for history and the
// quizzes_completed metric.
type QuizAttempt struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	QuizSetID   string    `json:"quiz_set_id"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	XPEarned    int64     `json:"xp_earned"`
	CompletedAt time.Time `json:"completed_at"`
}

// ─── Facade Results ─────────────────────────────────────────────────────────

// LoginResult is returned by the login event handler.
type LoginResult struct {
	Streak    int     `json:"streak"`
	Longest   int     `json:"longest"`
	XPEarned  int64   `json:"xpEarned"`
	BonusXP   int64   `json:"bonusXP"`
	IsNewDay  bool    `json:"isNewDay"`
	NewBadges []Badge `json:"newBadges"`
}

// CompletionResult is the uniform shape returned by completion events.
type CompletionResult struct {
	XPEarned  int64   `json:"xpEarned"`
	TotalXP   int64   `json:"totalXp"`
	Level     int     `json:"level"`
	NewBadges []Badge `json:"newBadges"`
}

// QuizResult extends CompletionResult with the perfect-score flag.
type QuizResult struct {
	CompletionResult
	IsPerfect bool `json:"isPerfect"`
}

// XPProgress describes position on the level curve.
type XPProgress struct {
	Total       int64   `json:"total"`
	Level       int     `json:"level"`
	Progress    int64   `json:"progress"`    // XP earned past the current level threshold
	XPNeeded    int64   `json:"xpNeeded"`    // span of the current level
	NextLevelAt int64   `json:"nextLevelAt"` // cumulative XP threshold of the next level
	Pct         float64 `json:"pct"`
}

// Profile is the full gamification view of one student.
type Profile struct {
	UserID string        `json:"userId"`
	XP     XPProgress    `json:"xp"`
	Streak StreakState   `json:"streak"`
	Badges []EarnedBadge `json:"badges"`
}

// LeaderboardEntry is one ranked row. Rank is 1-based; ties keep their
// input order.
type LeaderboardEntry struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	TotalXP int64  `json:"totalXp"`
	Level   int    `json:"level"`
	Streak  int    `json:"streak"`
	Rank    int    `json:"rank"`
}

// ─── Collaborators ──────────────────────────────────────────────────────────

// Identity is the user value object supplied by the auth collaborator.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Directory is the enrollment collaborator: display names for ranked
// output and class rosters for scoped leaderboards. The engine never
// owns user records itself.
type Directory interface {
	// DisplayName returns a human-readable name for a user, or "" if
	// unknown (callers fall back to the raw user ID).
	DisplayName(userID string) string

	// ClassMembers returns the user IDs enrolled in a class, in roster
	// order. Roster order is the tie-break order for scoped leaderboards.
	ClassMembers(classID string) ([]string, error)
}
