package fuzzydate

import (
	"testing"
	"time"
)

func at(day int) time.Time { return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC) }

func newSeries(days ...int) series {
	s := make(series, len(days))
	for i, d := range days {
		s[i] = point{at: at(d), row: i}
	}
	return s
}

func TestSeriesAsOf(t *testing.T) {
	s := newSeries(5, 9, 9, 20)
	testCases := []struct {
		day    int
		want   int
		wantOK bool
	}{
		{day: 1, want: -1, wantOK: false},
		{day: 5, want: 0, wantOK: true},
		{day: 9, want: 2, wantOK: true},
		{day: 10, want: 2, wantOK: true},
		{day: 25, want: 3, wantOK: true},
	}
	for _, tc := range testCases {
		got, ok := s.asOf(at(tc.day))
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("asOf(day %d) = %v, %v want %v, %v", tc.day, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSeriesNext(t *testing.T) {
	s := newSeries(5, 9, 9, 20)
	testCases := []struct {
		day    int
		want   int
		wantOK bool
	}{
		{day: 1, want: 0, wantOK: true},
		{day: 9, want: 1, wantOK: true},
		{day: 10, want: 3, wantOK: true},
		{day: 21, want: -1, wantOK: false},
	}
	for _, tc := range testCases {
		got, ok := s.next(at(tc.day))
		if got != tc.want || ok != tc.wantOK {
			t.Errorf("next(day %d) = %v, %v want %v, %v", tc.day, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSeriesNearest(t *testing.T) {
	s := newSeries(5, 9, 20)
	testCases := []struct {
		day      int
		want     int
		wantDist time.Duration
	}{
		{day: 1, want: 0, wantDist: 4 * 24 * time.Hour},
		{day: 7, want: 0, wantDist: 2 * 24 * time.Hour}, // tie between 5 and 9, earlier wins
		{day: 8, want: 1, wantDist: 24 * time.Hour},
		{day: 10, want: 1, wantDist: 24 * time.Hour},
		{day: 16, want: 2, wantDist: 4 * 24 * time.Hour},
		{day: 30, want: 2, wantDist: 10 * 24 * time.Hour},
	}
	for _, tc := range testCases {
		got, dist, ok := s.nearest(at(tc.day))
		if !ok || got != tc.want || dist != tc.wantDist {
			t.Errorf("nearest(day %d) = %v, %v, %v want %v, %v, true", tc.day, got, dist, ok, tc.want, tc.wantDist)
		}
	}

	if _, _, ok := series(nil).nearest(at(1)); ok {
		t.Errorf("nearest() on an empty series found a point")
	}
}

func TestSeriesWithin(t *testing.T) {
	s := newSeries(5, 9, 20)
	if got, ok := s.within(at(10), 24*time.Hour); !ok || got != 1 {
		t.Errorf("within(day 10, 1d) = %v, %v want 1, true", got, ok)
	}
	if _, ok := s.within(at(14), 24*time.Hour); ok {
		t.Errorf("within(day 14, 1d) found a point, want none")
	}
	if got, ok := s.within(at(9), 0); !ok || got != 1 {
		t.Errorf("within(day 9, 0) = %v, %v want 1, true", got, ok)
	}
}

func TestIndexGroups(t *testing.T) {
	tab := MustTable(
		Col("id", Str("A"), Str("B"), Str("A"), Null()),
		Col("on", day(1), day(2), Null(), day(4)),
	)
	g := index(tab, "on", []string{"id"})
	if len(g) != 3 {
		t.Fatalf("index() has %d groups want 3", len(g))
	}
	if got := g[groupKey(tab, 0, []string{"id"})]; len(got) != 1 || got[0].row != 0 {
		t.Errorf("group A = %v want the first row only", got)
	}
	if got := g[groupKey(tab, 3, []string{"id"})]; len(got) != 1 || got[0].row != 3 {
		t.Errorf("missing id group = %v want the last row", got)
	}
	if all := index(tab, "on", nil); len(all) != 1 || len(all[""]) != 3 {
		t.Errorf("index() without join columns = %v want a single group of 3 rows", all)
	}
}
