package gamify

import (
	"context"
	"fmt"

	"github.com/brightdesk/brightdesk/internal/domain"
	"github.com/brightdesk/brightdesk/internal/infra/sqlite"
)

// Tracker is the daily-login streak state machine. A second login on
// the same calendar day is a no-op; a login the day after the last one
// extends the streak; any larger gap resets it to 1. The caller
// supplies "today" as a calendar date so no timezone logic lives here.
type Tracker struct {
	xp     XPValues
	ledger *Ledger
	badges *Evaluator
}

// NewTracker creates a streak tracker.
func NewTracker(xp XPValues, ledger *Ledger, badges *Evaluator) *Tracker {
	return &Tracker{xp: xp, ledger: ledger, badges: badges}
}

// RecordLogin advances the user's streak for the given date and pays
// out daily-login XP plus any milestone bonus. Milestone bonuses fire
// each time the streak reaches 3, 7, or 30, including after a reset.
func (t *Tracker) RecordLogin(ctx context.Context, db *sqlite.DB, userID string, today domain.Date) (domain.LoginResult, error) {
	var result domain.LoginResult

	state, err := db.GetStreak(ctx, userID)
	if err != nil {
		return result, fmt.Errorf("load streak: %w", err)
	}

	switch {
	case state == nil:
		// First login ever: day 1.
		state = &domain.StreakState{UserID: userID, Current: 1, Longest: 1, LastLogin: today}

	case state.LastLogin == today:
		// Already logged in today.
		result.Streak = state.Current
		result.Longest = state.Longest
		return result, nil

	case state.LastLogin == today.Prev():
		state.Current++
		if state.Current > state.Longest {
			state.Longest = state.Current
		}
		state.LastLogin = today

	default:
		// Gap of two or more days: streak restarts.
		state.Current = 1
		if state.Longest < 1 {
			state.Longest = 1
		}
		state.LastLogin = today
	}

	if err := db.UpsertStreak(ctx, *state); err != nil {
		return result, fmt.Errorf("save streak: %w", err)
	}

	result.Streak = state.Current
	result.Longest = state.Longest
	result.IsNewDay = true

	_, xpBadges, err := t.ledger.Award(ctx, db, userID, t.xp.DailyLogin, domain.SourceDailyLogin, "")
	if err != nil {
		return result, err
	}
	result.XPEarned = t.xp.DailyLogin
	result.NewBadges = append(result.NewBadges, xpBadges...)

	if bonus, source := t.xp.StreakBonus(state.Current); bonus > 0 {
		_, xpBadges, err = t.ledger.Award(ctx, db, userID, bonus, source, "")
		if err != nil {
			return result, err
		}
		result.BonusXP = bonus
		result.XPEarned += bonus
		result.NewBadges = append(result.NewBadges, xpBadges...)
	}

	streakBadges, err := t.badges.CheckAndAward(ctx, db, userID, domain.CriteriaStreak, int64(state.Current))
	if err != nil {
		return result, err
	}
	result.NewBadges = append(result.NewBadges, streakBadges...)

	// Login badges are "have you ever logged in", not a count.
	loginBadges, err := t.badges.CheckAndAward(ctx, db, userID, domain.CriteriaDailyLogin, 1)
	if err != nil {
		return result, err
	}
	result.NewBadges = append(result.NewBadges, loginBadges...)

	return result, nil
}
