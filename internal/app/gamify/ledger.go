package gamify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brightdesk/brightdesk/internal/domain"
	"github.com/brightdesk/brightdesk/internal/infra/sqlite"
)

// Ledger appends XP-earn events and keeps the per-user summary cache
// consistent with the ledger sum.
type Ledger struct {
	curve  *Curve
	badges *Evaluator
	now    func() time.Time
}

// NewLedger creates a ledger over the given curve and badge evaluator.
func NewLedger(curve *Curve, badges *Evaluator) *Ledger {
	return &Ledger{curve: curve, badges: badges, now: time.Now}
}

// Award appends one ledger entry and applies it to the user's summary.
// A missing summary is created implicitly at zero, so first use never
// errors. Zero amounts are legal and still log an entry. Negative
// amounts are rejected with ErrValidation.
//
// The caller is responsible for serializing awards per user; callers
// that hold a transaction get all-or-nothing semantics.
func (l *Ledger) Award(ctx context.Context, db *sqlite.DB, userID string, amount int64, source domain.XPSource, sourceID string) (domain.XPSummary, []domain.Badge, error) {
	var zero domain.XPSummary
	if amount < 0 {
		return zero, nil, fmt.Errorf("%w: negative xp amount %d", domain.ErrValidation, amount)
	}

	summary, err := db.GetSummary(ctx, userID)
	if err != nil {
		return zero, nil, fmt.Errorf("load summary: %w", err)
	}
	if summary == nil {
		summary = &domain.XPSummary{UserID: userID, Level: 1}
	}

	entry := domain.LedgerEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Amount:    amount,
		Source:    source,
		SourceID:  sourceID,
		CreatedAt: l.now(),
	}
	if err := db.InsertLedgerEntry(ctx, entry); err != nil {
		return zero, nil, fmt.Errorf("append ledger: %w", err)
	}

	summary.TotalXP += amount
	summary.Level = l.curve.LevelForXP(summary.TotalXP)
	if err := db.UpsertSummary(ctx, *summary); err != nil {
		return zero, nil, fmt.Errorf("update summary: %w", err)
	}

	newBadges, err := l.badges.CheckAndAward(ctx, db, userID, domain.CriteriaTotalXP, summary.TotalXP)
	if err != nil {
		return zero, nil, err
	}
	return *summary, newBadges, nil
}
