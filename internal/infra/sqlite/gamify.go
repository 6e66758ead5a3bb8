package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brightdesk/brightdesk/internal/domain"
)

// ─── XP Summaries ───────────────────────────────────────────────────────────

// GetSummary retrieves a user's XP summary, or nil if none exists yet.
func (d *DB) GetSummary(ctx context.Context, userID string) (*domain.XPSummary, error) {
	row := d.q.QueryRowContext(ctx,
		`SELECT user_id, total_xp, level FROM xp_summaries WHERE user_id = ?`, userID,
	)
	var s domain.XPSummary
	err := row.Scan(&s.UserID, &s.TotalXP, &s.Level)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, fmt.Errorf("scan summary: %w", err)
	}
	return &s, nil
}

// UpsertSummary inserts or replaces a user's XP summary.
func (d *DB) UpsertSummary(ctx context.Context, s domain.XPSummary) error {
	_, err := d.q.ExecContext(ctx,
		`INSERT INTO xp_summaries (user_id, total_xp, level) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			total_xp=excluded.total_xp,
			level=excluded.level`,
		s.UserID, s.TotalXP, s.Level,
	)
	return err
}

// leaderboardQuery joins summaries with streaks. rowid breaks XP ties in
// summary-creation order so global ranking is stable across reads.
const leaderboardQuery = `
	SELECT s.user_id, s.total_xp, s.level, COALESCE(st.current, 0)
	FROM xp_summaries s
	LEFT JOIN streaks st ON st.user_id = s.user_id`

// LeaderboardRows returns all summaries joined with streaks, ordered by
// total XP descending.
func (d *DB) LeaderboardRows(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := d.q.QueryContext(ctx,
		leaderboardQuery+` ORDER BY s.total_xp DESC, s.rowid ASC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaderboard(rows)
}

// LeaderboardRowsFor returns summary/streak rows for the given users.
// Users with no summary yet are returned with zero XP at level 1, so a
// class roster always ranks all of its members.
func (d *DB) LeaderboardRowsFor(ctx context.Context, userIDs []string) ([]domain.LeaderboardEntry, error) {
	entries := make([]domain.LeaderboardEntry, 0, len(userIDs))
	for _, id := range userIDs {
		row := d.q.QueryRowContext(ctx,
			leaderboardQuery+` WHERE s.user_id = ?`, id,
		)
		var e domain.LeaderboardEntry
		err := row.Scan(&e.UserID, &e.TotalXP, &e.Level, &e.Streak)
		if err == sql.ErrNoRows {
			entries = append(entries, domain.LeaderboardEntry{UserID: id, Level: 1})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func scanLeaderboard(rows *sql.Rows) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.TotalXP, &e.Level, &e.Streak); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── XP Ledger ──────────────────────────────────────────────────────────────

// InsertLedgerEntry appends an XP earn event. Entries are never updated
// or deleted.
func (d *DB) InsertLedgerEntry(ctx context.Context, e domain.LedgerEntry) error {
	_, err := d.q.ExecContext(ctx,
		`INSERT INTO xp_ledger (id, user_id, amount, source, source_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Amount, string(e.Source), nullStr(e.SourceID), e.CreatedAt.Unix(),
	)
	return err
}

// LedgerSum returns the sum of all ledger amounts for a user — the
// authoritative total the cached summary must agree with.
func (d *DB) LedgerSum(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := d.q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM xp_ledger WHERE user_id = ?`, userID,
	).Scan(&sum)
	return sum, err
}

// CountLedgerBySource counts a user's ledger entries with the given
// source tag (e.g. lifetime flashcard_set_complete events).
func (d *DB) CountLedgerBySource(ctx context.Context, userID string, source domain.XPSource) (int64, error) {
	var count int64
	err := d.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM xp_ledger WHERE user_id = ? AND source = ?`,
		userID, string(source),
	).Scan(&count)
	return count, err
}

// LedgerHistory returns a user's most recent ledger entries, newest first.
func (d *DB) LedgerHistory(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	rows, err := d.q.QueryContext(ctx,
		`SELECT id, user_id, amount, source, source_id, created_at
		 FROM xp_ledger WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var sourceID sql.NullString
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Source, &sourceID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if sourceID.Valid {
			e.SourceID = sourceID.String
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ─── Streaks ────────────────────────────────────────────────────────────────

// GetStreak retrieves a user's streak state, or nil if no login was
// ever recorded.
func (d *DB) GetStreak(ctx context.Context, userID string) (*domain.StreakState, error) {
	row := d.q.QueryRowContext(ctx,
		`SELECT user_id, current, longest, last_login FROM streaks WHERE user_id = ?`, userID,
	)
	var s domain.StreakState
	var lastLogin sql.NullString
	err := row.Scan(&s.UserID, &s.Current, &s.Longest, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan streak: %w", err)
	}
	if lastLogin.Valid {
		s.LastLogin = domain.Date(lastLogin.String)
	}
	return &s, nil
}

// UpsertStreak inserts or replaces a user's streak state.
func (d *DB) UpsertStreak(ctx context.Context, s domain.StreakState) error {
	_, err := d.q.ExecContext(ctx,
		`INSERT INTO streaks (user_id, current, longest, last_login) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			current=excluded.current,
			longest=excluded.longest,
			last_login=excluded.last_login`,
		s.UserID, s.Current, s.Longest, nullStr(string(s.LastLogin)),
	)
	return err
}

// ─── Badge Catalog ──────────────────────────────────────────────────────────

// SeedBadges inserts catalog badges that are not present yet, keyed by
// unique name. Existing rows are left untouched, so re-seeding at every
// startup is safe.
func (d *DB) SeedBadges(ctx context.Context, badges []domain.Badge) error {
	for _, b := range badges {
		_, err := d.q.ExecContext(ctx,
			`INSERT OR IGNORE INTO badges (name, description, icon, criteria_type, criteria_value)
			 VALUES (?, ?, ?, ?, ?)`,
			b.Name, b.Description, b.Icon, string(b.Criteria), b.Threshold,
		)
		if err != nil {
			return fmt.Errorf("seed badge %q: %w", b.Name, err)
		}
	}
	return nil
}

// LoadCatalog returns the full badge catalog with store-assigned IDs,
// ordered by criteria type then threshold.
func (d *DB) LoadCatalog(ctx context.Context) ([]domain.Badge, error) {
	rows, err := d.q.QueryContext(ctx,
		`SELECT id, name, description, icon, criteria_type, criteria_value
		 FROM badges ORDER BY criteria_type, criteria_value`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		var b domain.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.Criteria, &b.Threshold); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// ─── Badge Awards ───────────────────────────────────────────────────────────

// InsertAward records a badge award. Returns false if the user already
// holds the badge (idempotent).
func (d *DB) InsertAward(ctx context.Context, userID string, badgeID int64, at time.Time) (bool, error) {
	result, err := d.q.ExecContext(ctx,
		`INSERT OR IGNORE INTO badge_awards (user_id, badge_id, earned_at) VALUES (?, ?, ?)`,
		userID, badgeID, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly earned
}

// ListAwards returns a user's earned badges with catalog details,
// newest first.
func (d *DB) ListAwards(ctx context.Context, userID string) ([]domain.EarnedBadge, error) {
	rows, err := d.q.QueryContext(ctx,
		`SELECT b.id, b.name, b.description, b.icon, b.criteria_type, b.criteria_value, a.earned_at
		 FROM badge_awards a
		 JOIN badges b ON b.id = a.badge_id
		 WHERE a.user_id = ?
		 ORDER BY a.earned_at DESC, a.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []domain.EarnedBadge
	for rows.Next() {
		var e domain.EarnedBadge
		var earnedAt int64
		err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Icon, &e.Criteria, &e.Threshold, &earnedAt)
		if err != nil {
			return nil, fmt.Errorf("scan award: %w", err)
		}
		e.EarnedAt = time.Unix(earnedAt, 0)
		earned = append(earned, e)
	}
	return earned, rows.Err()
}

// AwardTimes returns badge ID → earned time for a user.
func (d *DB) AwardTimes(ctx context.Context, userID string) (map[int64]time.Time, error) {
	rows, err := d.q.QueryContext(ctx,
		`SELECT badge_id, earned_at FROM badge_awards WHERE user_id = ?`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	times := make(map[int64]time.Time)
	for rows.Next() {
		var badgeID, earnedAt int64
		if err := rows.Scan(&badgeID, &earnedAt); err != nil {
			return nil, fmt.Errorf("scan award time: %w", err)
		}
		times[badgeID] = time.Unix(earnedAt, 0)
	}
	return times, rows.Err()
}

// ─── Quiz Attempts ──────────────────────────────────────────────────────────

// InsertAttempt records a scored quiz attempt.
func (d *DB) InsertAttempt(ctx context.Context, a domain.QuizAttempt) error {
	_, err := d.q.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id, user_id, quiz_set_id, score, total, xp_earned, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.QuizSetID, a.Score, a.Total, a.XPEarned, a.CompletedAt.Unix(),
	)
	return err
}

// CountAttempts returns a user's lifetime quiz attempt count — the
// quizzes_completed metric.
func (d *DB) CountAttempts(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := d.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = ?`, userID,
	).Scan(&count)
	return count, err
}

// RecentAttempts returns a user's latest quiz attempts, newest first.
func (d *DB) RecentAttempts(ctx context.Context, userID string, limit int) ([]domain.QuizAttempt, error) {
	rows, err := d.q.QueryContext(ctx,
		`SELECT id, user_id, quiz_set_id, score, total, xp_earned, completed_at
		 FROM quiz_attempts WHERE user_id = ?
		 ORDER BY completed_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []domain.QuizAttempt
	for rows.Next() {
		var a domain.QuizAttempt
		var completedAt int64
		err := rows.Scan(&a.ID, &a.UserID, &a.QuizSetID, &a.Score, &a.Total, &a.XPEarned, &completedAt)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.CompletedAt = time.Unix(completedAt, 0)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
