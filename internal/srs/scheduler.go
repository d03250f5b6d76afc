// Package srs computes spaced-repetition state transitions. Everything
// here is a pure function of its inputs: time and configuration are
// passed in, nothing is read from the environment and nothing fails.
package srs

import (
	"time"

	"github.com/eslsoft/vocduel/internal/entity"
)

// StartOfDay truncates a timestamp to midnight in its own location. Due
// dates are anchored to the local day so that answering in the evening
// does not shave hours off the review interval.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// ApplyAnswer returns the next scheduling state of a word given an answer
// outcome. cleanRun reports that the word was not failed earlier in the
// current bounded session; only clean answers grow the streak or promote.
// Malformed inputs are clamped, never rejected.
func ApplyAnswer(w entity.UserWord, right bool, settings entity.SRSSettings, cleanRun bool, now time.Time) entity.UserWord {
	settings.Normalize()
	w.Normalize(now)

	reviewed := now
	w.LastReviewedAt = &reviewed

	if !right {
		w.TotalWrong++
		if settings.WrongResetsStreak {
			w.StreakCorrect = 0
		}
		if settings.WrongMakesDue {
			w.DueAt = now
		}
		w.LastResult = entity.ResultWrong
		return w
	}

	w.TotalRight++
	if cleanRun {
		w.StreakCorrect++
	}

	level := settings.LevelFor(w.LevelID)
	w.LevelID = level.ID
	anchor := StartOfDay(now)
	w.DueAt = anchor.AddDate(0, 0, int(level.IntervalDays))

	if cleanRun && w.StreakCorrect >= level.PromoteAfter && level.ID != settings.MaxLevelID() {
		if next, ok := settings.NextLevel(level.ID); ok {
			w.LevelID = next.ID
			w.StreakCorrect = 0
			w.DueAt = anchor.AddDate(0, 0, int(next.IntervalDays))
		}
	}

	w.LastResult = entity.ResultRight
	return w
}
