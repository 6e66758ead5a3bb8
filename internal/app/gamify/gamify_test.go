package gamify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brightdesk/brightdesk/internal/app/gamify"
	"github.com/brightdesk/brightdesk/internal/domain"
	"github.com/brightdesk/brightdesk/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// testEngine wires curve, evaluator, ledger, and tracker over a fresh
// store with the default catalog seeded.
func testEngine(t *testing.T) (*sqlite.DB, *gamify.Curve, *gamify.Evaluator, *gamify.Ledger, *gamify.Tracker) {
	t.Helper()
	db := testDB(t)
	ctx := context.Background()

	if err := db.SeedBadges(ctx, gamify.DefaultCatalog()); err != nil {
		t.Fatalf("seed badges: %v", err)
	}
	catalog, err := db.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	curve := gamify.NewCurve(150)
	ev := gamify.NewEvaluator(catalog)
	ledger := gamify.NewLedger(curve, ev)
	tracker := gamify.NewTracker(gamify.DefaultXPValues(), ledger, ev)
	return db, curve, ev, ledger, tracker
}

func testService(t *testing.T) *gamify.Service {
	t.Helper()
	svc, err := gamify.New(testDB(t), gamify.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func hasBadge(badges []domain.Badge, name string) bool {
	for _, b := range badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════════════════════
// Level Curve Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestCurve_XPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{1, 100},
		{9, 100},
		{10, 1000},
		{49, 1000},
		{50, 10000},
		{149, 10000},
	}
	for _, tt := range tests {
		if got := gamify.XPForLevel(tt.level); got != tt.want {
			t.Errorf("XPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestCurve_Thresholds(t *testing.T) {
	c := gamify.NewCurve(150)

	tests := []struct {
		level int
		want  int64
	}{
		{1, 0},
		{2, 100},
		{10, 900},              // 9 levels at 100
		{11, 1900},             // + one level at 1000
		{50, 900 + 40*1000},    // levels 10-49 at 1000
		{51, 900 + 40000 + 10000},
	}
	for _, tt := range tests {
		if got := c.Threshold(tt.level); got != tt.want {
			t.Errorf("Threshold(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestCurve_LevelForXP(t *testing.T) {
	c := gamify.NewCurve(150)

	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2}, // threshold rule is >=
		{899, 9},
		{900, 10},
		{1899, 10},
		{1900, 11},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := c.LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestCurve_Monotonic(t *testing.T) {
	c := gamify.NewCurve(150)

	prev := c.LevelForXP(0)
	for xp := int64(0); xp <= 5000; xp += 50 {
		level := c.LevelForXP(xp)
		if level < prev {
			t.Fatalf("LevelForXP not monotonic at %d XP: %d < %d", xp, level, prev)
		}
		prev = level
	}
}

func TestCurve_ThresholdRoundTrip(t *testing.T) {
	c := gamify.NewCurve(150)

	// Exactly at a threshold the level is reached; one below it is not.
	for level := 2; level <= 150; level++ {
		th := c.Threshold(level)
		if got := c.LevelForXP(th); got != level {
			t.Errorf("LevelForXP(Threshold(%d)) = %d, want %d", level, got, level)
		}
		if got := c.LevelForXP(th - 1); got != level-1 {
			t.Errorf("LevelForXP(Threshold(%d)-1) = %d, want %d", level, got, level-1)
		}
	}
}

func TestCurve_MaxLevelCap(t *testing.T) {
	c := gamify.NewCurve(150)

	if got := c.LevelForXP(1 << 40); got != 150 {
		t.Errorf("level above cap = %d, want 150", got)
	}
	p := c.Progress(1 << 40)
	if p.Pct != 100 {
		t.Errorf("progress pct at cap = %f, want 100", p.Pct)
	}
}

func TestCurve_Progress(t *testing.T) {
	c := gamify.NewCurve(150)

	p := c.Progress(150)
	if p.Level != 2 {
		t.Errorf("level = %d, want 2", p.Level)
	}
	if p.Progress != 50 {
		t.Errorf("progress = %d, want 50", p.Progress)
	}
	if p.XPNeeded != 100 {
		t.Errorf("xpNeeded = %d, want 100", p.XPNeeded)
	}
	if p.NextLevelAt != 200 {
		t.Errorf("nextLevelAt = %d, want 200", p.NextLevelAt)
	}
	if p.Pct != 50 {
		t.Errorf("pct = %f, want 50", p.Pct)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// XP Ledger Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestLedger_FirstAwardCreatesSummary(t *testing.T) {
	db, _, _, ledger, _ := testEngine(t)
	ctx := context.Background()

	summary, _, err := ledger.Award(ctx, db, "alice", 30, domain.SourceQuizCorrect, "q1")
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if summary.TotalXP != 30 {
		t.Errorf("totalXP = %d, want 30", summary.TotalXP)
	}
	if summary.Level != 1 {
		t.Errorf("level = %d, want 1", summary.Level)
	}
}

func TestLedger_SummaryMatchesLedgerSum(t *testing.T) {
	db, _, _, ledger, _ := testEngine(t)
	ctx := context.Background()

	amounts := []int64{10, 25, 0, 40, 5}
	for _, a := range amounts {
		if _, _, err := ledger.Award(ctx, db, "alice", a, domain.SourceQuizCorrect, ""); err != nil {
			t.Fatalf("award %d: %v", a, err)
		}
	}

	sum, err := db.LedgerSum(ctx, "alice")
	if err != nil {
		t.Fatalf("ledger sum: %v", err)
	}
	summary, err := db.GetSummary(ctx, "alice")
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if summary.TotalXP != sum {
		t.Errorf("summary %d != ledger sum %d", summary.TotalXP, sum)
	}
	if sum != 80 {
		t.Errorf("ledger sum = %d, want 80", sum)
	}
}

func TestLedger_ZeroAwardStillLogs(t *testing.T) {
	db, _, _, ledger, _ := testEngine(t)
	ctx := context.Background()

	if _, _, err := ledger.Award(ctx, db, "alice", 0, domain.SourceFlashcardCorrect, "s1"); err != nil {
		t.Fatalf("zero award: %v", err)
	}

	entries, err := db.LedgerHistory(ctx, "alice", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 logged entry, got %d", len(entries))
	}
	if entries[0].Amount != 0 {
		t.Errorf("amount = %d, want 0", entries[0].Amount)
	}
}

func TestLedger_NegativeRejected(t *testing.T) {
	db, _, _, ledger, _ := testEngine(t)

	_, _, err := ledger.Award(context.Background(), db, "alice", -10, domain.SourceQuizCorrect, "")
	if !errorsIsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestLedger_LevelUpAndXPBadge(t *testing.T) {
	db, _, _, ledger, _ := testEngine(t)
	ctx := context.Background()

	summary, newBadges, err := ledger.Award(ctx, db, "alice", 100, domain.SourceQuizComplete, "")
	if err != nil {
		t.Fatalf("award: %v", err)
	}
	if summary.Level != 2 {
		t.Errorf("level = %d, want 2", summary.Level)
	}
	if !hasBadge(newBadges, "XP Hunter") {
		t.Errorf("expected XP Hunter badge at 100 XP, got %v", newBadges)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streak Tracker Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestStreak_FirstLogin(t *testing.T) {
	db, _, _, _, tracker := testEngine(t)
	ctx := context.Background()

	result, err := tracker.RecordLogin(ctx, db, "alice", domain.Date("2026-08-01"))
	if err != nil {
		t.Fatalf("record login: %v", err)
	}
	if !result.IsNewDay {
		t.Error("expected isNewDay on first login")
	}
	if result.Streak != 1 || result.Longest != 1 {
		t.Errorf("streak = %d/%d, want 1/1", result.Streak, result.Longest)
	}
	if result.XPEarned != 10 {
		t.Errorf("xpEarned = %d, want 10", result.XPEarned)
	}
	if !hasBadge(result.NewBadges, "Daily Learner") {
		t.Errorf("expected Daily Learner badge, got %v", result.NewBadges)
	}
}

func TestStreak_SameDayIdempotent(t *testing.T) {
	db, _, _, _, tracker := testEngine(t)
	ctx := context.Background()
	day := domain.Date("2026-08-01")

	if _, err := tracker.RecordLogin(ctx, db, "alice", day); err != nil {
		t.Fatalf("first login: %v", err)
	}
	result, err := tracker.RecordLogin(ctx, db, "alice", day)
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if result.IsNewDay {
		t.Error("second same-day login must not be a new day")
	}
	if result.XPEarned != 0 {
		t.Errorf("second same-day login earned %d XP, want 0", result.XPEarned)
	}

	sum, _ := db.LedgerSum(ctx, "alice")
	if sum != 10 {
		t.Errorf("ledger sum = %d, want 10 (single daily award)", sum)
	}
}

func TestStreak_ThreeDayMilestone(t *testing.T) {
	db, _, _, _, tracker := testEngine(t)
	ctx := context.Background()

	days := []domain.Date{"2026-08-01", "2026-08-02", "2026-08-03"}
	var last domain.LoginResult
	for _, d := range days {
		var err error
		last, err = tracker.RecordLogin(ctx, db, "alice", d)
		if err != nil {
			t.Fatalf("login %s: %v", d, err)
		}
	}

	if last.Streak != 3 {
		t.Errorf("streak = %d, want 3", last.Streak)
	}
	if last.BonusXP != 15 {
		t.Errorf("bonus = %d, want 15", last.BonusXP)
	}
	if last.XPEarned != 25 {
		t.Errorf("xpEarned = %d, want 25 (10 daily + 15 bonus)", last.XPEarned)
	}
	if !hasBadge(last.NewBadges, "Streak Starter") {
		t.Errorf("expected Streak Starter badge, got %v", last.NewBadges)
	}
}

func TestStreak_GapResetsPreservingLongest(t *testing.T) {
	db, _, _, _, tracker := testEngine(t)
	ctx := context.Background()

	for _, d := range []domain.Date{"2026-08-01", "2026-08-02", "2026-08-03"} {
		if _, err := tracker.RecordLogin(ctx, db, "alice", d); err != nil {
			t.Fatalf("login %s: %v", d, err)
		}
	}

	// Two-day gap breaks the streak.
	result, err := tracker.RecordLogin(ctx, db, "alice", domain.Date("2026-08-06"))
	if err != nil {
		t.Fatalf("login after gap: %v", err)
	}
	if result.Streak != 1 {
		t.Errorf("streak after gap = %d, want 1", result.Streak)
	}
	if result.Longest != 3 {
		t.Errorf("longest after gap = %d, want 3", result.Longest)
	}
	if result.BonusXP != 0 {
		t.Errorf("bonus after reset = %d, want 0", result.BonusXP)
	}
}

func TestStreak_MilestoneRefiresAfterReset(t *testing.T) {
	db, _, _, _, tracker := testEngine(t)
	ctx := context.Background()

	for _, d := range []domain.Date{"2026-08-01", "2026-08-02", "2026-08-03"} {
		if _, err := tracker.RecordLogin(ctx, db, "alice", d); err != nil {
			t.Fatalf("login %s: %v", d, err)
		}
	}
	// Break, then climb back to 3.
	for _, d := range []domain.Date{"2026-08-10", "2026-08-11"} {
		if _, err := tracker.RecordLogin(ctx, db, "alice", d); err != nil {
			t.Fatalf("login %s: %v", d, err)
		}
	}
	result, err := tracker.RecordLogin(ctx, db, "alice", domain.Date("2026-08-12"))
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if result.BonusXP != 15 {
		t.Errorf("milestone bonus on re-reach = %d, want 15", result.BonusXP)
	}
	// The badge, unlike the bonus, stays one-time.
	if hasBadge(result.NewBadges, "Streak Starter") {
		t.Error("Streak Starter must not be re-awarded")
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Badge Evaluator Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestEvaluator_AwardsAtThreshold(t *testing.T) {
	db, _, ev, _, _ := testEngine(t)
	ctx := context.Background()

	earned, err := ev.CheckAndAward(ctx, db, "alice", domain.CriteriaQuizzes, 1)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(earned) != 1 || earned[0].Name != "Quiz Rookie" {
		t.Errorf("earned = %v, want [Quiz Rookie]", earned)
	}
}

func TestEvaluator_Idempotent(t *testing.T) {
	db, _, ev, _, _ := testEngine(t)
	ctx := context.Background()

	if _, err := ev.CheckAndAward(ctx, db, "alice", domain.CriteriaStreak, 7); err != nil {
		t.Fatalf("first check: %v", err)
	}
	earned, err := ev.CheckAndAward(ctx, db, "alice", domain.CriteriaStreak, 9)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if len(earned) != 0 {
		t.Errorf("re-check awarded %v, want none", earned)
	}

	awards, err := db.ListAwards(ctx, "alice")
	if err != nil {
		t.Fatalf("list awards: %v", err)
	}
	if len(awards) != 2 { // Streak Starter + Week Warrior, once each
		t.Errorf("award count = %d, want 2", len(awards))
	}
}

func TestEvaluator_MultipleThresholdsAtOnce(t *testing.T) {
	db, _, ev, _, _ := testEngine(t)
	ctx := context.Background()

	earned, err := ev.CheckAndAward(ctx, db, "alice", domain.CriteriaTotalXP, 600)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if len(earned) != 2 {
		t.Fatalf("earned %d badges, want 2 (XP Hunter + XP Champion)", len(earned))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Facade Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestFacade_QuizAwardsXPAndLevels(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	result, err := svc.OnQuizComplete(ctx, "alice", "quiz-1", 8, 10)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if result.XPEarned != 100 { // 8*10 answers + 20 completion
		t.Errorf("xpEarned = %d, want 100", result.XPEarned)
	}
	if result.Level != 2 {
		t.Errorf("level = %d, want 2", result.Level)
	}
	if result.IsPerfect {
		t.Error("8/10 must not be perfect")
	}
	if !hasBadge(result.NewBadges, "Quiz Rookie") {
		t.Errorf("expected Quiz Rookie, got %v", result.NewBadges)
	}
	if !hasBadge(result.NewBadges, "XP Hunter") {
		t.Errorf("expected XP Hunter at 100 XP, got %v", result.NewBadges)
	}
}

func TestFacade_PerfectQuiz(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	result, err := svc.OnQuizComplete(ctx, "alice", "quiz-1", 10, 10)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if !result.IsPerfect {
		t.Error("10/10 must be perfect")
	}
	if result.XPEarned != 170 { // 100 answers + 20 completion + 50 perfect
		t.Errorf("xpEarned = %d, want 170", result.XPEarned)
	}
	if !hasBadge(result.NewBadges, "Perfect Score") {
		t.Errorf("expected Perfect Score badge, got %v", result.NewBadges)
	}
}

func TestFacade_EmptyQuizNotPerfect(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	result, err := svc.OnQuizComplete(ctx, "alice", "quiz-1", 0, 0)
	if err != nil {
		t.Fatalf("quiz: %v", err)
	}
	if result.IsPerfect {
		t.Error("a quiz with no questions cannot be perfect")
	}
	if result.XPEarned != 20 { // completion bonus only
		t.Errorf("xpEarned = %d, want 20", result.XPEarned)
	}
	if hasBadge(result.NewBadges, "Perfect Score") {
		t.Error("Perfect Score must not be awarded for 0/0")
	}
}

func TestFacade_QuizValidation(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	cases := []struct {
		name         string
		user         string
		score, total int
	}{
		{"empty user", "", 5, 10},
		{"negative score", "alice", -1, 10},
		{"negative total", "alice", 0, -1},
		{"score beyond total", "alice", 11, 10},
	}
	for _, tc := range cases {
		_, err := svc.OnQuizComplete(ctx, tc.user, "q", tc.score, tc.total)
		if !errorsIsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestFacade_FlashcardSetComplete(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	result, err := svc.OnFlashcardSetComplete(ctx, "alice", "set-1", 10, 10)
	if err != nil {
		t.Fatalf("flashcards: %v", err)
	}
	if result.XPEarned != 75 { // 10*5 cards + 25 completion
		t.Errorf("xpEarned = %d, want 75", result.XPEarned)
	}
	if !hasBadge(result.NewBadges, "First Steps") {
		t.Errorf("expected First Steps badge, got %v", result.NewBadges)
	}
}

func TestFacade_FlashcardZeroCorrect(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	result, err := svc.OnFlashcardSetComplete(ctx, "alice", "set-1", 0, 10)
	if err != nil {
		t.Fatalf("flashcards: %v", err)
	}
	if result.XPEarned != 25 { // completion bonus only, no per-card entry
		t.Errorf("xpEarned = %d, want 25", result.XPEarned)
	}

	entries, _ := svc.XPHistory(ctx, "alice", 10)
	if len(entries) != 1 {
		t.Errorf("ledger entries = %d, want 1 (zero-card award skipped)", len(entries))
	}
}

func TestFacade_FlashcardSetCountBadges(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	var last domain.CompletionResult
	for i := 0; i < 5; i++ {
		var err error
		last, err = svc.OnFlashcardSetComplete(ctx, "alice", "set", 2, 4)
		if err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}
	if !hasBadge(last.NewBadges, "Card Shark") {
		t.Errorf("expected Card Shark on 5th set, got %v", last.NewBadges)
	}
}

func TestFacade_LoginSameDayNoOp(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	first, err := svc.OnLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	if !first.IsNewDay || first.XPEarned != 10 {
		t.Errorf("first login: newDay=%v xp=%d, want true/10", first.IsNewDay, first.XPEarned)
	}

	second, err := svc.OnLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if second.IsNewDay || second.XPEarned != 0 {
		t.Errorf("second login: newDay=%v xp=%d, want false/0", second.IsNewDay, second.XPEarned)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Read-Side Tests
// ═══════════════════════════════════════════════════════════════════════════

func TestProfile_DefaultsForUnknownUser(t *testing.T) {
	svc := testService(t)

	profile, err := svc.Profile(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.XP.Total != 0 || profile.XP.Level != 1 {
		t.Errorf("xp = %d level %d, want 0 at level 1", profile.XP.Total, profile.XP.Level)
	}
	if profile.Streak.Current != 0 {
		t.Errorf("streak = %d, want 0", profile.Streak.Current)
	}
	if len(profile.Badges) != 0 {
		t.Errorf("badges = %d, want 0", len(profile.Badges))
	}
}

func TestLeaderboard_GlobalRanking(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	// bob 170 XP, alice 100 XP, carol 20 XP.
	if _, err := svc.OnQuizComplete(ctx, "alice", "q", 8, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.OnQuizComplete(ctx, "bob", "q", 10, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.OnQuizComplete(ctx, "carol", "q", 0, 10); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.Leaderboard(ctx, "")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	wantOrder := []string{"bob", "alice", "carol"}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Errorf("rank %d = %s, want %s", i+1, entries[i].UserID, want)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("rank field = %d, want %d", entries[i].Rank, i+1)
		}
	}
}

type fakeDirectory struct {
	names  map[string]string
	roster map[string][]string
}

func (d *fakeDirectory) DisplayName(userID string) string { return d.names[userID] }

func (d *fakeDirectory) ClassMembers(classID string) ([]string, error) {
	return d.roster[classID], nil
}

func TestLeaderboard_ClassScope(t *testing.T) {
	db := testDB(t)
	dir := &fakeDirectory{
		names:  map[string]string{"alice": "Alice A", "bob": "Bob B"},
		roster: map[string][]string{"7b": {"alice", "bob", "dora"}},
	}
	svc, err := gamify.New(db, gamify.DefaultConfig(), dir)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.OnQuizComplete(ctx, "alice", "q", 5, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.OnQuizComplete(ctx, "bob", "q", 10, 10); err != nil {
		t.Fatal(err)
	}
	// "zed" has XP but is not in class 7b.
	if _, err := svc.OnQuizComplete(ctx, "zed", "q", 10, 10); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.Leaderboard(ctx, "7b")
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3 (full roster)", len(entries))
	}
	if entries[0].UserID != "bob" || entries[0].Name != "Bob B" {
		t.Errorf("rank 1 = %s (%s), want bob (Bob B)", entries[0].UserID, entries[0].Name)
	}
	// dora never played: zero XP, ranked last, name falls back to ID.
	if entries[2].UserID != "dora" || entries[2].TotalXP != 0 || entries[2].Name != "dora" {
		t.Errorf("rank 3 = %+v, want inactive dora at 0 XP", entries[2])
	}
}

func TestAllBadges_CatalogWithEarnedState(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.OnQuizComplete(ctx, "alice", "q", 10, 10); err != nil {
		t.Fatal(err)
	}

	statuses, err := svc.AllBadges(ctx, "alice")
	if err != nil {
		t.Fatalf("all badges: %v", err)
	}
	if len(statuses) != 13 {
		t.Fatalf("catalog size = %d, want 13", len(statuses))
	}

	earned := make(map[string]bool)
	for _, s := range statuses {
		if s.Earned {
			earned[s.Name] = true
			if s.EarnedAt.IsZero() {
				t.Errorf("badge %s earned without timestamp", s.Name)
			}
		}
	}
	for _, want := range []string{"Quiz Rookie", "Perfect Score", "XP Hunter"} {
		if !earned[want] {
			t.Errorf("expected %s earned", want)
		}
	}
	if earned["Week Warrior"] {
		t.Error("Week Warrior must not be earned without a streak")
	}
}

func TestXPHistory_NewestFirst(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.OnQuizComplete(ctx, "alice", "q1", 5, 10); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.OnFlashcardSetComplete(ctx, "alice", "s1", 3, 5); err != nil {
		t.Fatal(err)
	}

	entries, err := svc.XPHistory(ctx, "alice", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 4 { // quiz_correct, quiz_complete, flashcard_correct, flashcard_set_complete
		t.Fatalf("entries = %d, want 4", len(entries))
	}
	if entries[0].Source != domain.SourceFlashcardSetComplete {
		t.Errorf("newest entry source = %s, want flashcard_set_complete", entries[0].Source)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].CreatedAt.After(entries[i-1].CreatedAt) {
			t.Errorf("history not newest-first at index %d", i)
		}
	}
}

func errorsIsValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}
