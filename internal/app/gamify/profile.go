package gamify

import (
	"context"
	"fmt"
	"sort"

	"github.com/brightdesk/brightdesk/internal/domain"
)

// ─── Read Side ──────────────────────────────────────────────────────────────

// Profile returns the full gamification view of one student. Users with
// no recorded activity get zero-value defaults, never an error.
func (s *Service) Profile(ctx context.Context, userID string) (domain.Profile, error) {
	var p domain.Profile
	if userID == "" {
		return p, fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	p.UserID = userID

	summary, err := s.store.GetSummary(ctx, userID)
	if err != nil {
		return p, fmt.Errorf("load summary: %w", err)
	}
	var total int64
	if summary != nil {
		total = summary.TotalXP
	}
	p.XP = s.curve.Progress(total)

	streak, err := s.store.GetStreak(ctx, userID)
	if err != nil {
		return p, fmt.Errorf("load streak: %w", err)
	}
	if streak != nil {
		p.Streak = *streak
	} else {
		p.Streak = domain.StreakState{UserID: userID}
	}

	p.Badges, err = s.store.ListAwards(ctx, userID)
	if err != nil {
		return p, fmt.Errorf("load badges: %w", err)
	}
	return p, nil
}

// Leaderboard ranks students by total XP, descending, rank 1-based.
// classID "" means global scope, limited to the configured size and
// stable in summary-creation order on ties. A non-empty classID ranks
// the class roster in roster order on ties; roster members with no
// activity yet appear with zero XP.
func (s *Service) Leaderboard(ctx context.Context, classID string) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	var err error

	if classID == "" {
		entries, err = s.store.LeaderboardRows(ctx, s.leaderboardLimit)
		if err != nil {
			return nil, fmt.Errorf("load leaderboard: %w", err)
		}
	} else {
		if s.dir == nil {
			return nil, fmt.Errorf("%w: no enrollment directory configured", domain.ErrValidation)
		}
		roster, err := s.dir.ClassMembers(classID)
		if err != nil {
			return nil, fmt.Errorf("class roster: %w", err)
		}
		entries, err = s.store.LeaderboardRowsFor(ctx, roster)
		if err != nil {
			return nil, fmt.Errorf("load leaderboard: %w", err)
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].TotalXP > entries[j].TotalXP
		})
	}

	for i := range entries {
		entries[i].Rank = i + 1
		entries[i].Name = s.displayName(entries[i].UserID)
	}
	return entries, nil
}

// AllBadges returns the full catalog annotated with the user's earned
// state.
func (s *Service) AllBadges(ctx context.Context, userID string) ([]domain.BadgeStatus, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	times, err := s.store.AwardTimes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load awards: %w", err)
	}

	catalog := s.badges.Catalog()
	statuses := make([]domain.BadgeStatus, 0, len(catalog))
	for _, b := range catalog {
		status := domain.BadgeStatus{Badge: b}
		if at, ok := times[b.ID]; ok {
			status.Earned = true
			status.EarnedAt = at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// XPHistory returns a user's most recent ledger entries, newest first.
// limit <= 0 uses the configured default.
func (s *Service) XPHistory(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	return s.store.LedgerHistory(ctx, userID, limit)
}

func (s *Service) displayName(userID string) string {
	if s.dir != nil {
		if name := s.dir.DisplayName(userID); name != "" {
			return name
		}
	}
	return userID
}
