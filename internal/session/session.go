// Package session drives a single learner through one bounded practice
// run: a fixed lesson plan over due words followed by a review loop over
// everything failed along the way. State lives purely in memory and is
// destroyed when the run stops or completes.
package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/selection"
	"github.com/eslsoft/vocduel/internal/srs"
)

// Phase is the controller's state machine position.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLesson   Phase = "lesson"
	PhaseReview   Phase = "review"
	PhaseFinished Phase = "finished"
)

// DefaultLessonSize bounds one practice run.
const DefaultLessonSize = 10

// ErrNotAnswerable is returned when an answer arrives after the run ended.
var ErrNotAnswerable = errors.New("session is not accepting answers")

// Session is one practice run. It is not safe for concurrent use; the
// owning usecase serializes access.
type Session struct {
	ID     string
	UserID int64

	phase     Phase
	plan      []int64
	pos       int
	wrongPool []int64
	failed    map[int64]struct{}
	words     map[int64]entity.UserWord
	current   int64

	Seen  int
	Right int
	Wrong int

	settings entity.SRSSettings
	rng      *rand.Rand
}

// New samples a lesson plan of up to limit words from the due set and
// starts the run. An empty due set fails with ErrInsufficientWords.
func New(id string, userID int64, due []entity.UserWord, settings entity.SRSSettings, rng *rand.Rand, limit int) (*Session, error) {
	if len(due) == 0 {
		return nil, entity.ErrInsufficientWords
	}
	if limit <= 0 {
		limit = DefaultLessonSize
	}
	n := limit
	if n > len(due) {
		n = len(due)
	}

	picker := selection.NewPickerFrom(rng)
	sample, err := picker.RandomWords(due, n)
	if err != nil {
		return nil, err
	}

	s := &Session{
		ID:       id,
		UserID:   userID,
		phase:    PhaseLesson,
		plan:     make([]int64, 0, n),
		failed:   make(map[int64]struct{}),
		words:    make(map[int64]entity.UserWord, n),
		settings: settings,
		rng:      rng,
	}
	for _, w := range sample {
		s.plan = append(s.plan, w.ID)
		s.words[w.ID] = w
	}
	s.current = s.plan[0]
	return s, nil
}

// Phase returns the controller's current phase.
func (s *Session) Phase() Phase { return s.phase }

// Progress returns the lesson position and plan length.
func (s *Session) Progress() (position, total int) { return s.pos, len(s.plan) }

// Remaining returns how many words are still in the review pool.
func (s *Session) Remaining() int { return len(s.wrongPool) }

// Current returns the word awaiting an answer.
func (s *Session) Current() (entity.UserWord, bool) {
	if s.phase != PhaseLesson && s.phase != PhaseReview {
		return entity.UserWord{}, false
	}
	return s.words[s.current], true
}

// Answer applies the outcome to the current word through the scheduler
// and advances the run. The updated progress row is returned so the
// caller can persist it best-effort.
func (s *Session) Answer(right bool, now time.Time) (entity.UserWord, error) {
	if s.phase != PhaseLesson && s.phase != PhaseReview {
		return entity.UserWord{}, ErrNotAnswerable
	}

	id := s.current
	_, cleanRun := s.failed[id]
	cleanRun = !cleanRun

	updated := srs.ApplyAnswer(s.words[id], right, s.settings, cleanRun, now)
	s.words[id] = updated

	s.Seen++
	if right {
		s.Right++
	} else {
		s.Wrong++
		if _, seen := s.failed[id]; !seen {
			s.wrongPool = append(s.wrongPool, id)
		}
		s.failed[id] = struct{}{}
	}

	switch s.phase {
	case PhaseLesson:
		s.pos++
		if s.pos < len(s.plan) {
			s.current = s.plan[s.pos]
			break
		}
		if len(s.wrongPool) == 0 {
			s.finish()
			break
		}
		s.phase = PhaseReview
		s.pickReview(id)
	case PhaseReview:
		if right {
			s.dropFromPool(id)
		}
		if len(s.wrongPool) == 0 {
			s.finish()
			break
		}
		s.pickReview(id)
	}

	return updated, nil
}

// Stop abandons the run.
func (s *Session) Stop() {
	s.finish()
}

func (s *Session) finish() {
	s.phase = PhaseFinished
	s.current = 0
}

// pickReview draws a uniformly random word from the wrong pool, avoiding
// an immediate repeat of the just-answered word when another candidate
// remains.
func (s *Session) pickReview(just int64) {
	candidates := s.wrongPool
	if len(candidates) > 1 {
		filtered := make([]int64, 0, len(candidates)-1)
		for _, id := range candidates {
			if id != just {
				filtered = append(filtered, id)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	s.current = candidates[s.rng.Intn(len(candidates))]
}

func (s *Session) dropFromPool(id int64) {
	for i, v := range s.wrongPool {
		if v == id {
			s.wrongPool = append(s.wrongPool[:i], s.wrongPool[i+1:]...)
			return
		}
	}
}
