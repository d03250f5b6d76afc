package selection

import (
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
)

func poolOf(n int) []entity.UserWord {
	words := make([]entity.UserWord, 0, n)
	for i := 1; i <= n; i++ {
		words = append(words, entity.UserWord{ID: int64(i), Word: word(i)})
	}
	return words
}

func word(i int) string {
	names := []string{"apple", "banana", "cherry", "damson", "elder", "fig", "grape", "haw", "imbe", "jujube"}
	return names[(i-1)%len(names)]
}

func TestRandomWordsSamplesDistinct(t *testing.T) {
	picker := NewPicker(1)
	pool := poolOf(10)

	got, err := picker.RandomWords(pool, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("sampled %d, want 5", len(got))
	}
	seen := map[int64]bool{}
	for _, w := range got {
		if seen[w.ID] {
			t.Fatalf("word %d sampled twice", w.ID)
		}
		seen[w.ID] = true
	}
}

func TestRandomWordsShortPoolFails(t *testing.T) {
	picker := NewPicker(1)
	if _, err := picker.RandomWords(poolOf(3), 5); !errors.Is(err, entity.ErrInsufficientWords) {
		t.Fatalf("err = %v, want ErrInsufficientWords", err)
	}
}

func TestVersusWordsPrefersAttempted(t *testing.T) {
	picker := NewPicker(42)
	reviewed := time.Now()
	pool := poolOf(10)
	// Words 1-4 were attempted before; with a quota of 4 they must crowd
	// out every fresh word.
	for i := 0; i < 4; i++ {
		pool[i].LastReviewedAt = &reviewed
	}

	got, err := picker.VersusWords(pool, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 {
		t.Fatalf("drew %d, want 4", len(got))
	}
	for _, w := range got {
		if w.ID > 4 {
			t.Fatalf("fresh word %d drawn while attempted words remained", w.ID)
		}
	}
}

func TestVersusWordsShortPoolYieldsFewer(t *testing.T) {
	picker := NewPicker(7)
	got, err := picker.VersusWords(poolOf(3), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("drew %d, want the whole short pool", len(got))
	}
}

func TestVersusWordsEmptyPoolFails(t *testing.T) {
	picker := NewPicker(7)
	if _, err := picker.VersusWords(nil, 10); !errors.Is(err, entity.ErrInsufficientWords) {
		t.Fatalf("err = %v, want ErrInsufficientWords", err)
	}
}
