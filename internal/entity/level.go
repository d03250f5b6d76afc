package entity

import "sort"

// Clamping bounds applied when settings are normalized.
const (
	MinPromoteAfter = 1
	MaxPromoteAfter = 99
	MinIntervalDays = 0
	MaxIntervalDays = 3650
)

// Level is one rung of the proficiency ladder. The level with the highest
// ID is terminal: words there keep advancing their due date but never
// promote further.
type Level struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	PromoteAfter int32  `json:"promote_after"`
	IntervalDays int32  `json:"interval_days"`
}

// SRSSettings is the externally-sourced scheduler configuration. It is
// treated as untrusted and normalized on every load.
type SRSSettings struct {
	Levels            []Level `json:"levels"`
	WrongResetsStreak bool    `json:"wrong_resets_streak"`
	WrongMakesDue     bool    `json:"wrong_makes_due"`
}

// DefaultSettings returns the ladder used when no configuration is stored.
func DefaultSettings() SRSSettings {
	return SRSSettings{
		Levels: []Level{
			{ID: 1, Name: "New", PromoteAfter: 2, IntervalDays: 0},
			{ID: 2, Name: "Learning", PromoteAfter: 3, IntervalDays: 1},
			{ID: 3, Name: "Familiar", PromoteAfter: 3, IntervalDays: 7},
			{ID: 4, Name: "Strong", PromoteAfter: 2, IntervalDays: 30},
			{ID: 5, Name: "Mastered", PromoteAfter: 1, IntervalDays: 90},
		},
		WrongResetsStreak: true,
		WrongMakesDue:     true,
	}
}

// Normalize clamps every numeric field into its sane range, drops levels
// with non-positive ids and sorts the ladder. An empty ladder falls back to
// the default one so lookups never have to fail.
func (s *SRSSettings) Normalize() {
	levels := s.Levels[:0]
	for _, lvl := range s.Levels {
		if lvl.ID <= 0 {
			continue
		}
		if lvl.PromoteAfter < MinPromoteAfter {
			lvl.PromoteAfter = MinPromoteAfter
		}
		if lvl.PromoteAfter > MaxPromoteAfter {
			lvl.PromoteAfter = MaxPromoteAfter
		}
		if lvl.IntervalDays < MinIntervalDays {
			lvl.IntervalDays = MinIntervalDays
		}
		if lvl.IntervalDays > MaxIntervalDays {
			lvl.IntervalDays = MaxIntervalDays
		}
		levels = append(levels, lvl)
	}
	if len(levels) == 0 {
		levels = DefaultSettings().Levels
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].ID < levels[j].ID })
	s.Levels = levels
}

// LevelFor resolves a level id against the ladder, clamping to the nearest
// configured id when the exact one is gone. Configuration edits can remove
// levels out from under existing progress rows, so this never fails.
func (s SRSSettings) LevelFor(id int32) Level {
	if len(s.Levels) == 0 {
		s.Levels = DefaultSettings().Levels
	}
	best := s.Levels[0]
	bestDist := diff32(best.ID, id)
	for _, lvl := range s.Levels[1:] {
		if d := diff32(lvl.ID, id); d < bestDist {
			best, bestDist = lvl, d
		}
	}
	return best
}

// NextLevel returns the level with the smallest id strictly greater than
// the given one.
func (s SRSSettings) NextLevel(id int32) (Level, bool) {
	for _, lvl := range s.Levels {
		if lvl.ID > id {
			return lvl, true
		}
	}
	return Level{}, false
}

// MaxLevelID returns the terminal level's id.
func (s SRSSettings) MaxLevelID() int32 {
	if len(s.Levels) == 0 {
		s.Levels = DefaultSettings().Levels
	}
	return s.Levels[len(s.Levels)-1].ID
}

func diff32(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}
