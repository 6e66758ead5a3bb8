// Package gamify implements the BrightDesk gamification engine:
// an append-only XP ledger with a cached per-user summary, a daily-login
// streak state machine, a threshold-based badge evaluator, and the
// facade that ties them together per triggering event.
package gamify

import "github.com/brightdesk/brightdesk/internal/domain"

// XPValues holds the XP granted per event type. Defaults mirror the
// production economy; operators can retune them in config.toml.
type XPValues struct {
	DailyLogin           int64 `toml:"daily_login"`
	FlashcardCorrect     int64 `toml:"flashcard_correct"`
	FlashcardSetComplete int64 `toml:"flashcard_set_complete"`
	QuizCorrect          int64 `toml:"quiz_correct"`
	QuizComplete         int64 `toml:"quiz_complete"`
	QuizPerfect          int64 `toml:"quiz_perfect"`
	StreakBonus3         int64 `toml:"streak_bonus_3"`
	StreakBonus7         int64 `toml:"streak_bonus_7"`
	StreakBonus30        int64 `toml:"streak_bonus_30"`
}

// DefaultXPValues returns the standard XP economy.
func DefaultXPValues() XPValues {
	return XPValues{
		DailyLogin:           10,
		FlashcardCorrect:     5,
		FlashcardSetComplete: 25,
		QuizCorrect:          10,
		QuizComplete:         20,
		QuizPerfect:          50,
		StreakBonus3:         15,
		StreakBonus7:         30,
		StreakBonus30:        100,
	}
}

// StreakBonus returns the milestone bonus for the given streak length,
// or 0 if the length is not a milestone. Milestones pay out every time
// the streak reaches that exact value, including after a reset.
func (v XPValues) StreakBonus(streak int) (int64, domain.XPSource) {
	switch streak {
	case 3:
		return v.StreakBonus3, domain.SourceStreakBonus3
	case 7:
		return v.StreakBonus7, domain.SourceStreakBonus7
	case 30:
		return v.StreakBonus30, domain.SourceStreakBonus30
	}
	return 0, ""
}

// Config tunes the engine. Zero values fall back to defaults in New.
type Config struct {
	// MaxLevel caps the level curve. Default 150.
	MaxLevel int `toml:"max_level"`

	// LeaderboardLimit bounds global leaderboard queries. Default 50.
	LeaderboardLimit int `toml:"leaderboard_limit"`

	// HistoryLimit is the default XP history page size. Default 50.
	HistoryLimit int `toml:"history_limit"`

	// XP is the per-event XP economy.
	XP XPValues `toml:"xp"`

	// ExtraBadges are operator-defined catalog additions, seeded
	// alongside the built-in catalog.
	ExtraBadges []domain.Badge `toml:"badge"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxLevel:         150,
		LeaderboardLimit: 50,
		HistoryLimit:     50,
		XP:               DefaultXPValues(),
	}
}
