// Package metrics provides Prometheus metrics for BrightDesk —
// counters for XP flow, logins, activity completions, and badge awards.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── XP ─────────────────────────────────────────────────────────────────────

// XPAwarded tracks XP granted by ledger source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "brightdesk",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded, by source.",
}, []string{"source"})

// LevelUps tracks level-up events.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "brightdesk",
	Name:      "level_ups_total",
	Help:      "Total level-up events.",
})

// ─── Activity ───────────────────────────────────────────────────────────────

// LoginsRecorded tracks daily logins that advanced a streak.
var LoginsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "brightdesk",
	Name:      "logins_recorded_total",
	Help:      "Total first-of-day logins recorded.",
})

// QuizzesCompleted tracks completed quiz attempts.
var QuizzesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "brightdesk",
	Name:      "quizzes_completed_total",
	Help:      "Total completed quizzes.",
}, []string{"perfect"})

// FlashcardSetsCompleted tracks completed flashcard study sessions.
var FlashcardSetsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "brightdesk",
	Name:      "flashcard_sets_completed_total",
	Help:      "Total completed flashcard sets.",
})

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgesAwarded tracks badge unlocks by criteria type.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "brightdesk",
	Name:      "badges_awarded_total",
	Help:      "Total badges awarded, by criteria type.",
}, []string{"criteria"})
