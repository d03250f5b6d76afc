package entity

import "testing"

func TestNormalizeClampsAndSorts(t *testing.T) {
	s := SRSSettings{Levels: []Level{
		{ID: 3, PromoteAfter: 500, IntervalDays: 99999},
		{ID: 1, PromoteAfter: 0, IntervalDays: -5},
		{ID: -2, PromoteAfter: 1, IntervalDays: 1},
	}}
	s.Normalize()

	if len(s.Levels) != 2 {
		t.Fatalf("levels = %d, want non-positive ids dropped", len(s.Levels))
	}
	if s.Levels[0].ID != 1 || s.Levels[1].ID != 3 {
		t.Fatalf("ladder not sorted: %+v", s.Levels)
	}
	if s.Levels[0].PromoteAfter != MinPromoteAfter {
		t.Fatalf("promote_after = %d, want clamp to %d", s.Levels[0].PromoteAfter, MinPromoteAfter)
	}
	if s.Levels[0].IntervalDays != MinIntervalDays {
		t.Fatalf("interval = %d, want clamp to %d", s.Levels[0].IntervalDays, MinIntervalDays)
	}
	if s.Levels[1].PromoteAfter != MaxPromoteAfter {
		t.Fatalf("promote_after = %d, want clamp to %d", s.Levels[1].PromoteAfter, MaxPromoteAfter)
	}
	if s.Levels[1].IntervalDays != MaxIntervalDays {
		t.Fatalf("interval = %d, want clamp to %d", s.Levels[1].IntervalDays, MaxIntervalDays)
	}
}

func TestNormalizeEmptyFallsBackToDefault(t *testing.T) {
	s := SRSSettings{Levels: []Level{{ID: -1}}}
	s.Normalize()
	if len(s.Levels) != len(DefaultSettings().Levels) {
		t.Fatalf("levels = %d, want default ladder", len(s.Levels))
	}
}

func TestLevelForClampsToNearest(t *testing.T) {
	s := SRSSettings{Levels: []Level{{ID: 2}, {ID: 5}, {ID: 9}}}

	cases := []struct {
		in   int32
		want int32
	}{
		{1, 2},
		{2, 2},
		{3, 2},
		{4, 5},
		{7, 5},
		{8, 9},
		{100, 9},
	}
	for _, c := range cases {
		if got := s.LevelFor(c.in); got.ID != c.want {
			t.Errorf("LevelFor(%d) = %d, want %d", c.in, got.ID, c.want)
		}
	}
}

func TestNextLevel(t *testing.T) {
	s := SRSSettings{Levels: []Level{{ID: 1}, {ID: 3}, {ID: 7}}}

	next, ok := s.NextLevel(1)
	if !ok || next.ID != 3 {
		t.Fatalf("NextLevel(1) = %v/%v, want 3", next.ID, ok)
	}
	if _, ok := s.NextLevel(7); ok {
		t.Fatal("NextLevel(terminal) must report false")
	}
}

func TestMaxLevelID(t *testing.T) {
	s := SRSSettings{Levels: []Level{{ID: 1}, {ID: 4}}}
	if got := s.MaxLevelID(); got != 4 {
		t.Fatalf("MaxLevelID = %d, want 4", got)
	}
	if got := (SRSSettings{}).MaxLevelID(); got != 5 {
		t.Fatalf("MaxLevelID on empty = %d, want default terminal 5", got)
	}
}
