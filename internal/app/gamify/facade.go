package gamify

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightdesk/brightdesk/internal/domain"
	"github.com/brightdesk/brightdesk/internal/infra/metrics"
	"github.com/brightdesk/brightdesk/internal/infra/sqlite"
)

// Service is the gamification facade. Each triggering event (login,
// flashcard-set completion, quiz completion) maps to one method; every
// method serializes per user, runs all of its writes in a single store
// transaction, and returns the aggregate outcome.
type Service struct {
	store  *sqlite.DB
	curve  *Curve
	xp     XPValues
	ledger *Ledger
	streak *Tracker
	badges *Evaluator
	dir    domain.Directory

	leaderboardLimit int
	historyLimit     int

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	now func() time.Time
}

// New wires the engine over an open store. The badge catalog (built-in
// plus any operator extras) is seeded idempotently and loaded back with
// store-assigned IDs. dir may be nil; ranked output then falls back to
// raw user IDs and only the global leaderboard scope is available.
func New(store *sqlite.DB, cfg Config, dir domain.Directory) (*Service, error) {
	if cfg.MaxLevel <= 0 {
		cfg.MaxLevel = 150
	}
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = 50
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	if cfg.XP == (XPValues{}) {
		cfg.XP = DefaultXPValues()
	}

	ctx := context.Background()
	seed := append(DefaultCatalog(), cfg.ExtraBadges...)
	if err := store.SeedBadges(ctx, seed); err != nil {
		return nil, fmt.Errorf("seed badge catalog: %w", err)
	}
	catalog, err := store.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load badge catalog: %w", err)
	}
	log.Printf("[gamify] engine ready: %d badges, max level %d", len(catalog), cfg.MaxLevel)

	curve := NewCurve(cfg.MaxLevel)
	badges := NewEvaluator(catalog)
	ledger := NewLedger(curve, badges)

	return &Service{
		store:            store,
		curve:            curve,
		xp:               cfg.XP,
		ledger:           ledger,
		streak:           NewTracker(cfg.XP, ledger, badges),
		badges:           badges,
		dir:              dir,
		leaderboardLimit: cfg.LeaderboardLimit,
		historyLimit:     cfg.HistoryLimit,
		locks:            make(map[string]*sync.Mutex),
		now:              time.Now,
	}, nil
}

// Curve exposes the level curve for read-side callers.
func (s *Service) Curve() *Curve { return s.curve }

// userLock returns the mutex serializing writes for one user.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// ─── Triggering Events ──────────────────────────────────────────────────────

// OnLogin records a daily login: streak transition, daily-login XP,
// milestone bonus, streak and login badge checks.
func (s *Service) OnLogin(ctx context.Context, userID string) (domain.LoginResult, error) {
	var result domain.LoginResult
	if userID == "" {
		return result, fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	today := domain.DateOf(s.now())
	var leveledUp bool
	err := s.store.WithTx(ctx, func(tx *sqlite.DB) error {
		prior, err := s.priorLevel(ctx, tx, userID)
		if err != nil {
			return err
		}
		result, err = s.streak.RecordLogin(ctx, tx, userID, today)
		if err != nil {
			return err
		}
		summary, err := tx.GetSummary(ctx, userID)
		if err != nil {
			return err
		}
		leveledUp = summary != nil && summary.Level > prior
		return nil
	})
	if err != nil {
		return domain.LoginResult{}, err
	}

	if leveledUp {
		metrics.LevelUps.Inc()
	}
	if result.IsNewDay {
		metrics.LoginsRecorded.Inc()
		metrics.XPAwarded.WithLabelValues(string(domain.SourceDailyLogin)).Add(float64(s.xp.DailyLogin))
		if result.BonusXP > 0 {
			metrics.XPAwarded.WithLabelValues("streak_bonus").Add(float64(result.BonusXP))
		}
		s.countBadges(result.NewBadges)
		log.Printf("[gamify] login user=%s streak=%d xp=%d badges=%d",
			userID, result.Streak, result.XPEarned, len(result.NewBadges))
	}
	return result, nil
}

// OnFlashcardSetComplete awards per-card XP plus a completion bonus and
// evaluates the flashcard-set badges against the lifetime completion
// count. A zero correct count skips the per-card entry; the completion
// bonus still applies.
func (s *Service) OnFlashcardSetComplete(ctx context.Context, userID, setID string, correct, total int) (domain.CompletionResult, error) {
	var result domain.CompletionResult
	if userID == "" {
		return result, fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	if correct < 0 || total < 0 || correct > total {
		return result, fmt.Errorf("%w: card counts %d/%d", domain.ErrValidation, correct, total)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	var leveledUp bool
	err := s.store.WithTx(ctx, func(tx *sqlite.DB) error {
		prior, err := s.priorLevel(ctx, tx, userID)
		if err != nil {
			return err
		}
		defer func() { leveledUp = result.Level > prior }()

		if correct > 0 {
			cardXP := int64(correct) * s.xp.FlashcardCorrect
			_, newBadges, err := s.ledger.Award(ctx, tx, userID, cardXP, domain.SourceFlashcardCorrect, setID)
			if err != nil {
				return err
			}
			result.XPEarned += cardXP
			result.NewBadges = append(result.NewBadges, newBadges...)
		}

		summary, newBadges, err := s.ledger.Award(ctx, tx, userID, s.xp.FlashcardSetComplete, domain.SourceFlashcardSetComplete, setID)
		if err != nil {
			return err
		}
		result.XPEarned += s.xp.FlashcardSetComplete
		result.TotalXP = summary.TotalXP
		result.Level = summary.Level
		result.NewBadges = append(result.NewBadges, newBadges...)

		// Lifetime completions = count of set-complete ledger entries,
		// including the one just written.
		sets, err := tx.CountLedgerBySource(ctx, userID, domain.SourceFlashcardSetComplete)
		if err != nil {
			return fmt.Errorf("count completed sets: %w", err)
		}
		setBadges, err := s.badges.CheckAndAward(ctx, tx, userID, domain.CriteriaFlashcardSets, sets)
		if err != nil {
			return err
		}
		result.NewBadges = append(result.NewBadges, setBadges...)
		return nil
	})
	if err != nil {
		return domain.CompletionResult{}, err
	}

	if leveledUp {
		metrics.LevelUps.Inc()
	}
	metrics.FlashcardSetsCompleted.Inc()
	metrics.XPAwarded.WithLabelValues(string(domain.SourceFlashcardSetComplete)).Add(float64(result.XPEarned))
	s.countBadges(result.NewBadges)
	log.Printf("[gamify] flashcards user=%s set=%s %d/%d xp=%d level=%d",
		userID, setID, correct, total, result.XPEarned, result.Level)
	return result, nil
}

// OnQuizComplete awards per-answer XP, a completion bonus, and a
// perfect bonus when every question was answered correctly. The attempt
// is recorded for history and the quizzes-completed badge metric.
// A quiz with no questions is never perfect.
func (s *Service) OnQuizComplete(ctx context.Context, userID, quizSetID string, score, total int) (domain.QuizResult, error) {
	var result domain.QuizResult
	if userID == "" {
		return result, fmt.Errorf("%w: empty user id", domain.ErrValidation)
	}
	if score < 0 || total < 0 || score > total {
		return result, fmt.Errorf("%w: quiz score %d/%d", domain.ErrValidation, score, total)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	result.IsPerfect = score == total && total > 0

	var leveledUp bool
	err := s.store.WithTx(ctx, func(tx *sqlite.DB) error {
		prior, err := s.priorLevel(ctx, tx, userID)
		if err != nil {
			return err
		}
		defer func() { leveledUp = result.Level > prior }()

		if score > 0 {
			answerXP := int64(score) * s.xp.QuizCorrect
			_, newBadges, err := s.ledger.Award(ctx, tx, userID, answerXP, domain.SourceQuizCorrect, quizSetID)
			if err != nil {
				return err
			}
			result.XPEarned += answerXP
			result.NewBadges = append(result.NewBadges, newBadges...)
		}

		summary, newBadges, err := s.ledger.Award(ctx, tx, userID, s.xp.QuizComplete, domain.SourceQuizComplete, quizSetID)
		if err != nil {
			return err
		}
		result.XPEarned += s.xp.QuizComplete
		result.NewBadges = append(result.NewBadges, newBadges...)

		if result.IsPerfect {
			summary, newBadges, err = s.ledger.Award(ctx, tx, userID, s.xp.QuizPerfect, domain.SourceQuizPerfect, quizSetID)
			if err != nil {
				return err
			}
			result.XPEarned += s.xp.QuizPerfect
			result.NewBadges = append(result.NewBadges, newBadges...)

			perfectBadges, err := s.badges.CheckAndAward(ctx, tx, userID, domain.CriteriaPerfectQuiz, 1)
			if err != nil {
				return err
			}
			result.NewBadges = append(result.NewBadges, perfectBadges...)
		}
		result.TotalXP = summary.TotalXP
		result.Level = summary.Level

		attempt := domain.QuizAttempt{
			ID:          uuid.NewString(),
			UserID:      userID,
			QuizSetID:   quizSetID,
			Score:       score,
			Total:       total,
			XPEarned:    result.XPEarned,
			CompletedAt: s.now(),
		}
		if err := tx.InsertAttempt(ctx, attempt); err != nil {
			return fmt.Errorf("record attempt: %w", err)
		}

		quizzes, err := tx.CountAttempts(ctx, userID)
		if err != nil {
			return fmt.Errorf("count attempts: %w", err)
		}
		quizBadges, err := s.badges.CheckAndAward(ctx, tx, userID, domain.CriteriaQuizzes, quizzes)
		if err != nil {
			return err
		}
		result.NewBadges = append(result.NewBadges, quizBadges...)
		return nil
	})
	if err != nil {
		return domain.QuizResult{}, err
	}

	if leveledUp {
		metrics.LevelUps.Inc()
	}
	metrics.QuizzesCompleted.WithLabelValues(boolLabel(result.IsPerfect)).Inc()
	metrics.XPAwarded.WithLabelValues(string(domain.SourceQuizComplete)).Add(float64(result.XPEarned))
	s.countBadges(result.NewBadges)
	log.Printf("[gamify] quiz user=%s quiz=%s %d/%d perfect=%v xp=%d level=%d",
		userID, quizSetID, score, total, result.IsPerfect, result.XPEarned, result.Level)
	return result, nil
}

// priorLevel reads the user's level before an event applies, for the
// level-up metric. Missing summary means level 1.
func (s *Service) priorLevel(ctx context.Context, tx *sqlite.DB, userID string) (int, error) {
	summary, err := tx.GetSummary(ctx, userID)
	if err != nil {
		return 0, err
	}
	if summary == nil {
		return 1, nil
	}
	return summary.Level, nil
}

func (s *Service) countBadges(badges []domain.Badge) {
	for _, b := range badges {
		metrics.BadgesAwarded.WithLabelValues(string(b.Criteria)).Inc()
	}
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
