package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
)

func TestWordAdd(t *testing.T) {
	words := newFakeWords()
	u := &wordUsecase{words: words, settings: newFakeSettings(), clock: time.Now}

	added, err := u.Add(context.Background(), &entity.UserWord{Word: "  laconic ", Definition: "using few words"})
	if err != nil {
		t.Fatal(err)
	}
	if added.ID == 0 {
		t.Fatal("id must be assigned")
	}
	if added.Word != "laconic" {
		t.Fatalf("word = %q, want trimmed", added.Word)
	}
	if added.LevelID != 1 {
		t.Fatalf("level = %d, new words start at the bottom", added.LevelID)
	}
	if added.DueAt.IsZero() {
		t.Fatal("new words must be due immediately")
	}
}

func TestWordAddRejectsBlank(t *testing.T) {
	u := &wordUsecase{words: newFakeWords(), settings: newFakeSettings(), clock: time.Now}
	if _, err := u.Add(context.Background(), &entity.UserWord{Word: "   "}); !errors.Is(err, entity.ErrInvalidWordText) {
		t.Fatalf("err = %v, want ErrInvalidWordText", err)
	}
	if _, err := u.Add(context.Background(), nil); !errors.Is(err, entity.ErrInvalidWordText) {
		t.Fatalf("err = %v, want ErrInvalidWordText", err)
	}
}

func TestWordListDefaultsPagination(t *testing.T) {
	words := newFakeWords()
	u := &wordUsecase{words: words, settings: newFakeSettings(), clock: time.Now}
	if _, err := u.Add(context.Background(), &entity.UserWord{Word: "terse"}); err != nil {
		t.Fatal(err)
	}

	got, total, err := u.List(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("list = %d/%d, want 1/1", len(got), total)
	}
}

func TestWordStatsUsesTerminalLevel(t *testing.T) {
	words := newFakeWords()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	words.progress[9] = []entity.UserWord{
		{ID: 1, LevelID: 5, TotalRight: 10, DueAt: now.AddDate(0, 0, 30)},
		{ID: 2, LevelID: 2, TotalWrong: 3, DueAt: now.AddDate(0, 0, -1)},
		{ID: 3, LevelID: 1, DueAt: now},
	}
	u := &wordUsecase{words: words, settings: newFakeSettings(), clock: func() time.Time { return now }}

	stats, err := u.Stats(context.Background(), 9)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalWords != 3 {
		t.Fatalf("total = %d, want 3", stats.TotalWords)
	}
	if stats.DueWords != 2 {
		t.Fatalf("due = %d, want 2", stats.DueWords)
	}
	if stats.MasteredWords != 1 {
		t.Fatalf("mastered = %d, only the terminal level counts", stats.MasteredWords)
	}
	if stats.TotalRight != 10 || stats.TotalWrong != 3 {
		t.Fatalf("counters = %d/%d", stats.TotalRight, stats.TotalWrong)
	}
}

func TestSetLevelClampsToLadder(t *testing.T) {
	words := newFakeWords()
	words.progress[9] = []entity.UserWord{{ID: 1, LevelID: 2, StreakCorrect: 2}}
	u := &wordUsecase{words: words, settings: newFakeSettings(), clock: time.Now}

	if err := u.SetLevel(context.Background(), 9, 1, 99); err != nil {
		t.Fatal(err)
	}
	if got := words.progress[9][0].LevelID; got != 5 {
		t.Fatalf("level = %d, want clamp to terminal 5", got)
	}
	if words.progress[9][0].StreakCorrect != 0 {
		t.Fatal("manual override must reset the streak")
	}

	if err := u.SetLevel(context.Background(), 9, 42, 3); !errors.Is(err, entity.ErrWordNotFound) {
		t.Fatalf("err = %v, want ErrWordNotFound", err)
	}
}
