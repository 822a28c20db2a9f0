package fuzzydate

import (
	"sort"
	"strings"
	"time"
)

// point is an aux row located in time.
type point struct {
	at  time.Time
	row int
}

// series stores the points of a join group in chronological order.
// Points sharing the same instant keep the order of their rows.
type series []point

// asOf returns the position of the last point at or before t.
func (s series) asOf(t time.Time) (int, bool) {
	// The series is sorted, so we can use binary search.
	// i is the first point strictly after t, the one we want is just before.
	i := sort.Search(len(s), func(i int) bool { return s[i].at.After(t) })
	if i == 0 {
		return -1, false // No point on or before t.
	}
	return i - 1, true
}

// next returns the position of the first point at or after t.
func (s series) next(t time.Time) (int, bool) {
	i := sort.Search(len(s), func(i int) bool { return !s[i].at.Before(t) })
	if i == len(s) {
		return -1, false
	}
	return i, true
}

// nearest returns the position of the point closest to t and its distance.
// When two points are at the same distance the earlier one wins.
func (s series) nearest(t time.Time) (int, time.Duration, bool) {
	b, before := s.asOf(t)
	f, after := s.next(t)
	switch {
	case !before && !after:
		return -1, 0, false
	case !after:
		return b, t.Sub(s[b].at), true
	case !before:
		return f, s[f].at.Sub(t), true
	}
	db, df := t.Sub(s[b].at), s[f].at.Sub(t)
	if db <= df {
		return b, db, true
	}
	return f, df, true
}

// within is nearest restricted to points no further than tolerance from t.
func (s series) within(t time.Time, tolerance time.Duration) (int, bool) {
	i, d, ok := s.nearest(t)
	if !ok || d > tolerance {
		return -1, false
	}
	return i, true
}

// groups indexes the rows of a chronologically sorted table by join key.
type groups map[string]series

// groupKey is the canonical key of row i for the join columns.
func groupKey(t *Table, i int, by []string) string {
	if len(by) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range by {
		b.WriteString(t.values[name][i].key())
		b.WriteByte(0)
	}
	return b.String()
}

// index builds the groups of t, which must be sorted by its date column.
// Rows without a date never match and are left out.
func index(t *Table, dateColumn string, by []string) groups {
	g := make(groups)
	dates := t.values[dateColumn]
	for i := range t.n {
		at, ok := dates[i].Instant()
		if !ok {
			continue
		}
		k := groupKey(t, i, by)
		g[k] = append(g[k], point{at: at, row: i})
	}
	return g
}

// strategy selects, for an instant, at most one point of a series.
type strategy struct {
	column string // date alignment column, kept in debug mode
	suffix string // suffix of per-feature columns, kept in debug mode
	pick   func(s series, t time.Time) (int, bool)
}

// strategies returns the three attempts, in the order they are computed.
// The resolution priority is the reverse order.
func strategies(tolerance time.Duration) []strategy {
	return []strategy{
		{
			column: ColumnNearest,
			suffix: SuffixNearest,
			pick: func(s series, t time.Time) (int, bool) {
				i, _, ok := s.nearest(t)
				return i, ok
			},
		},
		{
			column: ColumnBackward,
			suffix: SuffixBackward,
			pick:   series.asOf,
		},
		{
			column: ColumnTolerant,
			suffix: SuffixTolerant,
			pick: func(s series, t time.Time) (int, bool) {
				return s.within(t, tolerance)
			},
		},
	}
}

// match returns for every main row the aux row picked by st, or -1.
func (st strategy) match(main *Table, keys []string, instants []time.Time, known []bool, g groups) []int {
	rows := make([]int, main.n)
	for i := range rows {
		rows[i] = -1
		if !known[i] {
			continue
		}
		s, ok := g[keys[i]]
		if !ok {
			continue
		}
		if j, ok := st.pick(s, instants[i]); ok {
			rows[i] = s[j].row
		}
	}
	return rows
}
