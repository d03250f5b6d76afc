// Package selection picks word subsets for lessons, duels and quiz
// questions. All randomness flows through an injected source so callers
// and tests can pin outcomes with a seed.
package selection

import (
	"math/rand"

	"github.com/samber/lo"

	"github.com/eslsoft/vocduel/internal/entity"
)

// Picker samples words from a pool using its own random source.
type Picker struct {
	rng *rand.Rand
}

// NewPicker creates a picker seeded for deterministic sampling.
func NewPicker(seed int64) *Picker {
	return &Picker{rng: rand.New(rand.NewSource(seed))}
}

// NewPickerFrom wraps an existing random source.
func NewPickerFrom(rng *rand.Rand) *Picker {
	return &Picker{rng: rng}
}

// RandomWords returns a uniform sample of n distinct words. It fails with
// ErrInsufficientWords when the pool is smaller than n.
func (p *Picker) RandomWords(pool []entity.UserWord, n int) ([]entity.UserWord, error) {
	if len(pool) < n {
		return nil, entity.ErrInsufficientWords
	}
	shuffled := p.shuffled(pool)
	return shuffled[:n], nil
}

// VersusWords draws up to n words favoring previously attempted ones:
// attempted and unattempted words are shuffled separately, concatenated
// attempted-first to fill the quota, and the selection is shuffled once
// more so the reading order does not betray the bias. Only an empty pool
// fails; a short pool simply yields fewer words.
func (p *Picker) VersusWords(pool []entity.UserWord, n int) ([]entity.UserWord, error) {
	if len(pool) == 0 {
		return nil, entity.ErrInsufficientWords
	}
	attempted := lo.Filter(pool, func(w entity.UserWord, _ int) bool { return w.Attempted() })
	fresh := lo.Filter(pool, func(w entity.UserWord, _ int) bool { return !w.Attempted() })

	ordered := append(p.shuffled(attempted), p.shuffled(fresh)...)
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	p.rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})
	return ordered, nil
}

func (p *Picker) shuffled(words []entity.UserWord) []entity.UserWord {
	out := make([]entity.UserWord, len(words))
	copy(out, words)
	p.rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
