package app

import (
	"tableflip.dev/diary/pkg/day"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

// Query selects the visible part of the diary.
type Query struct {
	// Search is a case-insensitive substring over food, comment, symptoms
	// and date.
	Search string
	// Limit caps the number of entries shown; zero shows all.
	Limit int
	Order entry.Order
}

// DayView is one day of the visible list with its link runs.
type DayView struct {
	day.Bucket
	Runs []linking.Run
}

// View is the result of Visible.
type View struct {
	Days []DayView
	// Shown entries out of Matched search hits.
	Shown   int
	Matched int
}

// More reports whether a bigger limit would show more entries.
func (v View) More() bool {
	return v.Shown < v.Matched
}

// Visible filters, orders, pages and groups the list by day.
func (d *Diary) Visible(q Query) View {
	matched := make([]*entry.Entry, 0, len(d.entries))
	for _, e := range d.entries {
		if e.Matches(q.Search) {
			matched = append(matched, e)
		}
	}
	ordered := entry.Sort(matched, q.Order)
	shown := ordered
	if q.Limit > 0 && len(shown) > q.Limit {
		shown = shown[:q.Limit]
	}

	buckets := day.Group(shown)
	days := make([]DayView, len(buckets))
	for i, b := range buckets {
		days[i] = DayView{Bucket: b, Runs: linking.Runs(b.Entries)}
	}
	return View{Days: days, Shown: len(shown), Matched: len(matched)}
}

// Day returns the chronological view of one day.
func (d *Diary) Day(key string) (DayView, bool) {
	b, ok := day.Lookup(day.Group(d.entries), key)
	if !ok {
		return DayView{}, false
	}
	return DayView{Bucket: b, Runs: linking.Runs(b.Entries)}, true
}
