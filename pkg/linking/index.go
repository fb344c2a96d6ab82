// Package linking connects entries of the same day into link groups. A link
// id is only meaningful together with the day of the entries wearing it.
package linking

import (
	"slices"

	"tableflip.dev/diary/pkg/entry"
)

// NextFreeID returns the smallest positive id not used on day.
func NextFreeID(entries []*entry.Entry, day string) int {
	used := make(map[int]bool)
	for _, e := range entries {
		if e.LinkID > 0 && e.Day() == day {
			used[e.LinkID] = true
		}
	}
	id := 1
	for used[id] {
		id++
	}
	return id
}

// MultiMemberGroups returns, ascending, the ids that label two or more
// entries on day.
func MultiMemberGroups(entries []*entry.Entry, day string) []int {
	counts := make(map[int]int)
	for _, e := range entries {
		if e.LinkID > 0 && e.Day() == day {
			counts[e.LinkID]++
		}
	}
	groups := make([]int, 0, len(counts))
	for id, n := range counts {
		if n >= 2 {
			groups = append(groups, id)
		}
	}
	slices.Sort(groups)
	return groups
}

// Members returns the indices of entries on day wearing id.
func Members(entries []*entry.Entry, day string, id int) []int {
	if id <= 0 {
		return nil
	}
	var out []int
	for i, e := range entries {
		if e.LinkID == id && e.Day() == day {
			out = append(out, i)
		}
	}
	return out
}

// relink returns a copy of entries with the link ids in changes applied. Only
// the changed entries are cloned.
func relink(entries []*entry.Entry, changes map[int]int) []*entry.Entry {
	out := slices.Clone(entries)
	for idx, id := range changes {
		cp := out[idx].Clone()
		cp.LinkID = id
		out[idx] = cp
	}
	return out
}

// Detach removes entries[idx] from its group. A group left with a single
// member is dissolved. The returned indices are every entry whose link was
// cleared.
func Detach(entries []*entry.Entry, idx int) ([]*entry.Entry, []int) {
	if idx < 0 || idx >= len(entries) || !entries[idx].Linked() {
		return entries, nil
	}
	e := entries[idx]
	members := Members(entries, e.Day(), e.LinkID)
	changes := map[int]int{idx: 0}
	if len(members) == 2 {
		for _, m := range members {
			changes[m] = 0
		}
	}
	cleared := make([]int, 0, len(changes))
	for i := range changes {
		cleared = append(cleared, i)
	}
	slices.Sort(cleared)
	return relink(entries, changes), cleared
}

// Dissolve clears the link id from every member of entries[idx]'s group.
func Dissolve(entries []*entry.Entry, idx int) ([]*entry.Entry, []int) {
	if idx < 0 || idx >= len(entries) || !entries[idx].Linked() {
		return entries, nil
	}
	e := entries[idx]
	members := Members(entries, e.Day(), e.LinkID)
	changes := make(map[int]int, len(members))
	for _, m := range members {
		changes[m] = 0
	}
	return relink(entries, changes), members
}
