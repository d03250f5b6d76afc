package srs

import (
	"testing"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
)

func testSettings() entity.SRSSettings {
	return entity.SRSSettings{
		Levels: []entity.Level{
			{ID: 1, Name: "New", PromoteAfter: 3, IntervalDays: 1},
			{ID: 2, Name: "Known", PromoteAfter: 2, IntervalDays: 7},
			{ID: 3, Name: "Mastered", PromoteAfter: 1, IntervalDays: 30},
		},
		WrongResetsStreak: true,
		WrongMakesDue:     true,
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	at := time.Date(2025, 3, 14, 23, 45, 12, 0, loc)
	got := StartOfDay(at)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("StartOfDay = %v, want %v", got, want)
	}
}

func TestApplyAnswerRightGrowsStreak(t *testing.T) {
	now := time.Date(2025, 3, 14, 18, 0, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 1}

	got := ApplyAnswer(w, true, testSettings(), true, now)

	if got.StreakCorrect != 1 {
		t.Fatalf("streak = %d, want 1", got.StreakCorrect)
	}
	if got.TotalRight != 1 || got.TotalWrong != 0 {
		t.Fatalf("counters = %d/%d, want 1/0", got.TotalRight, got.TotalWrong)
	}
	if got.LevelID != 1 {
		t.Fatalf("level = %d, want 1 (below threshold)", got.LevelID)
	}
	wantDue := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(wantDue) {
		t.Fatalf("due = %v, want %v", got.DueAt, wantDue)
	}
	if got.LastResult != entity.ResultRight {
		t.Fatalf("last result = %q, want right", got.LastResult)
	}
	if got.LastReviewedAt == nil || !got.LastReviewedAt.Equal(now) {
		t.Fatalf("last reviewed = %v, want %v", got.LastReviewedAt, now)
	}
}

func TestApplyAnswerPromotesAtThreshold(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 1, StreakCorrect: 2}

	got := ApplyAnswer(w, true, testSettings(), true, now)

	if got.LevelID != 2 {
		t.Fatalf("level = %d, want 2 after promotion", got.LevelID)
	}
	if got.StreakCorrect != 0 {
		t.Fatalf("streak = %d, want 0 after promotion", got.StreakCorrect)
	}
	// Promotion reschedules with the new level's interval.
	wantDue := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(wantDue) {
		t.Fatalf("due = %v, want %v", got.DueAt, wantDue)
	}
}

func TestApplyAnswerTerminalLevelNeverPromotes(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 3, StreakCorrect: 10}

	got := ApplyAnswer(w, true, testSettings(), true, now)

	if got.LevelID != 3 {
		t.Fatalf("level = %d, want terminal 3", got.LevelID)
	}
	wantDue := time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(wantDue) {
		t.Fatalf("due = %v, want %v", got.DueAt, wantDue)
	}
}

func TestApplyAnswerWrong(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 2, StreakCorrect: 1, TotalRight: 4}

	got := ApplyAnswer(w, false, testSettings(), true, now)

	if got.StreakCorrect != 0 {
		t.Fatalf("streak = %d, want 0 after wrong", got.StreakCorrect)
	}
	if got.TotalWrong != 1 {
		t.Fatalf("total wrong = %d, want 1", got.TotalWrong)
	}
	if got.LevelID != 2 {
		t.Fatalf("level = %d, wrong answers never demote", got.LevelID)
	}
	if !got.DueAt.Equal(now) {
		t.Fatalf("due = %v, want immediately due", got.DueAt)
	}
	if got.LastResult != entity.ResultWrong {
		t.Fatalf("last result = %q, want wrong", got.LastResult)
	}
}

func TestApplyAnswerWrongWithoutResetFlags(t *testing.T) {
	settings := testSettings()
	settings.WrongResetsStreak = false
	settings.WrongMakesDue = false
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	due := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 2, StreakCorrect: 1, DueAt: due}

	got := ApplyAnswer(w, false, settings, true, now)

	if got.StreakCorrect != 1 {
		t.Fatalf("streak = %d, want untouched 1", got.StreakCorrect)
	}
	if !got.DueAt.Equal(due) {
		t.Fatalf("due = %v, want untouched %v", got.DueAt, due)
	}
}

func TestApplyAnswerDirtyRunNeverPromotes(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 1, StreakCorrect: 2}

	got := ApplyAnswer(w, true, testSettings(), false, now)

	if got.StreakCorrect != 2 {
		t.Fatalf("streak = %d, dirty-run answers must not grow it", got.StreakCorrect)
	}
	if got.LevelID != 1 {
		t.Fatalf("level = %d, dirty-run answers must not promote", got.LevelID)
	}
	if got.TotalRight != 1 {
		t.Fatalf("total right = %d, want counted anyway", got.TotalRight)
	}
}

func TestApplyAnswerClampsUnknownLevel(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 42}

	got := ApplyAnswer(w, true, testSettings(), true, now)

	if got.LevelID != 3 {
		t.Fatalf("level = %d, want clamp to nearest configured 3", got.LevelID)
	}
}

func TestApplyAnswerEveningKeepsFullInterval(t *testing.T) {
	// Answering at 23:59 must still schedule a full day out, not one
	// minute out.
	now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	w := entity.UserWord{ID: 1, LevelID: 1}

	got := ApplyAnswer(w, true, testSettings(), true, now)

	wantDue := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.DueAt.Equal(wantDue) {
		t.Fatalf("due = %v, want %v", got.DueAt, wantDue)
	}
	if got.Due(now) {
		t.Fatal("word must not be due immediately after a right answer")
	}
}
