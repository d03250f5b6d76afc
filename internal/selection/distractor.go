package selection

import (
	"sort"
	"strings"

	"github.com/eslsoft/vocduel/internal/entity"
)

// QuestionOptionCount is the number of choices in a reverse-quiz
// question: the target word plus two distractors.
const QuestionOptionCount = 3

// Distractors returns the count most plausible wrong options for the
// target, ranked by a similarity heuristic with a little random jitter so
// the same target does not always produce the same wrong answers.
func (p *Picker) Distractors(target entity.UserWord, pool []entity.UserWord, count int) ([]entity.UserWord, error) {
	type scored struct {
		word  entity.UserWord
		score int
	}

	candidates := make([]scored, 0, len(pool))
	for _, w := range pool {
		if w.ID == target.ID {
			continue
		}
		candidates = append(candidates, scored{word: w, score: p.similarity(target.Word, w.Word)})
	}
	if len(candidates) < count {
		return nil, entity.ErrInsufficientWords
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	out := make([]entity.UserWord, count)
	for i := range out {
		out[i] = candidates[i].word
	}
	return out, nil
}

// similarity scores how believable a candidate is as a stand-in for the
// target: close length +3, same first letter +2, +1 per shared trigram,
// -1 for very short candidates, plus jitter in [0,2].
func (p *Picker) similarity(target, candidate string) int {
	t := strings.ToLower(target)
	c := strings.ToLower(candidate)

	score := 0
	if diff := len(c) - len(t); diff >= -2 && diff <= 2 {
		score += 3
	}
	if len(t) > 0 && len(c) > 0 && t[0] == c[0] {
		score += 2
	}
	for i := 0; i+3 <= len(t); i++ {
		if strings.Contains(c, t[i:i+3]) {
			score++
		}
	}
	if len(c) <= 3 {
		score--
	}
	return score + p.rng.Intn(3)
}

// BuildQuestion assembles a multiple-choice question for the target:
// its definition plus three shuffled options. Options expose only word
// text so the payload cannot leak the answer.
func (p *Picker) BuildQuestion(target entity.UserWord, pool []entity.UserWord) (*entity.Question, error) {
	distractors, err := p.Distractors(target, pool, QuestionOptionCount-1)
	if err != nil {
		return nil, err
	}

	options := make([]entity.QuestionOption, 0, QuestionOptionCount)
	options = append(options, entity.QuestionOption{WordID: target.ID, Word: target.Word})
	for _, d := range distractors {
		options = append(options, entity.QuestionOption{WordID: d.ID, Word: d.Word})
	}
	p.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &entity.Question{
		WordID:     target.ID,
		Definition: target.Definition,
		Options:    options,
	}, nil
}
