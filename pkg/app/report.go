package app

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"tableflip.dev/diary/pkg/entry"
)

// SymptomStat summarises one symptom over a report window.
type SymptomStat struct {
	Text         string   `json:"text"`
	Count        int      `json:"count"`
	MaxStrength  int      `json:"maxStrength"`
	AverageOnset int      `json:"averageOnset"`
	ExampleMeals []string `json:"exampleMeals,omitempty"`
}

// ReportSection groups the window's entries by tag.
type ReportSection struct {
	Tag     entry.Tag
	Entries []*entry.Entry
}

// ReportResult is a summary of the entries dated between Since and Until.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Symptoms []SymptomStat
	Total    int
}

// Report summarises entries dated within [since, until]. Sections follow the
// category order, symptoms are ranked by frequency.
func (d *Diary) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	res := ReportResult{Since: since, Until: until}

	byTag := make(map[entry.Tag][]*entry.Entry)
	stats := make(map[string]*SymptomStat)
	onsets := make(map[string]int)
	for _, e := range d.entries {
		at := entry.ParseDisplay(e.Date)
		if at.Equal(entry.EpochZero) || at.Before(since) || at.After(until) {
			continue
		}
		res.Total++
		byTag[e.Tag] = append(byTag[e.Tag], e)
		for _, s := range e.Symptoms {
			key := strings.ToLower(s.Text)
			st, ok := stats[key]
			if !ok {
				st = &SymptomStat{Text: s.Text}
				stats[key] = st
			}
			st.Count++
			st.MaxStrength = max(st.MaxStrength, s.Strength)
			onsets[key] += s.Time
			if e.Food != "" && len(st.ExampleMeals) < 3 && !slices.Contains(st.ExampleMeals, e.Food) {
				st.ExampleMeals = append(st.ExampleMeals, e.Food)
			}
		}
	}

	for _, t := range entry.Tags() {
		if list := byTag[t]; len(list) > 0 {
			res.Sections = append(res.Sections, ReportSection{Tag: t, Entries: list})
		}
	}
	for key, st := range stats {
		st.AverageOnset = onsets[key] / st.Count
		res.Symptoms = append(res.Symptoms, *st)
	}
	slices.SortFunc(res.Symptoms, func(a, b SymptomStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Text, b.Text)
	})
	return res
}
