package entity

import (
	"strings"
	"time"
)

// ReviewResult records the outcome of the most recent review of a word.
type ReviewResult string

const (
	ResultNone  ReviewResult = ""
	ResultRight ReviewResult = "right"
	ResultWrong ReviewResult = "wrong"
)

// UserWord is a word together with one learner's scheduling state. New
// words start at the lowest level and are due immediately; the row is only
// mutated by the scheduler or a manual level override.
type UserWord struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Word       string `json:"word"`
	Hint       string `json:"hint,omitempty"`
	Definition string `json:"definition,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`

	LevelID        int32        `json:"level_id"`
	StreakCorrect  int32        `json:"streak_correct"`
	TotalRight     int32        `json:"total_right"`
	TotalWrong     int32        `json:"total_wrong"`
	LastReviewedAt *time.Time   `json:"last_reviewed_at,omitempty"`
	DueAt          time.Time    `json:"due_at"`
	LastResult     ReviewResult `json:"last_result,omitempty"`
}

// Due reports whether the word's scheduled review time has passed.
func (w *UserWord) Due(now time.Time) bool {
	return !w.DueAt.After(now)
}

// Attempted reports whether the learner has ever been quizzed on the word.
func (w *UserWord) Attempted() bool {
	return w.LastReviewedAt != nil || w.TotalRight > 0 || w.TotalWrong > 0
}

// Normalize clamps counters and defaults before the scheduler or a
// repository touches the row.
func (w *UserWord) Normalize(now time.Time) {
	w.Word = strings.TrimSpace(w.Word)
	if w.LevelID < 1 {
		w.LevelID = 1
	}
	if w.StreakCorrect < 0 {
		w.StreakCorrect = 0
	}
	if w.TotalRight < 0 {
		w.TotalRight = 0
	}
	if w.TotalWrong < 0 {
		w.TotalWrong = 0
	}
	if w.DueAt.IsZero() {
		w.DueAt = now
	}
	switch w.LastResult {
	case ResultNone, ResultRight, ResultWrong:
	default:
		w.LastResult = ResultNone
	}
}
