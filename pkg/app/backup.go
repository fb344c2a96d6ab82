package app

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

// ImportMode selects how imported entries meet the existing list.
type ImportMode int

const (
	// Merge adds entries whose id is not present yet.
	Merge ImportMode = iota
	// Replace discards the current list.
	Replace
)

// ImportResult counts what an import did.
type ImportResult struct {
	Added   int
	Skipped int
}

// Import brings in a list from a backup or share link. Link ids of merged
// entries are remapped per day so they never collide with existing groups.
func (d *Diary) Import(ctx context.Context, list []*entry.Entry, mode ImportMode) ImportResult {
	if mode == Replace {
		next := entry.CloneAll(list)
		if d.pending != nil {
			d.pending = nil
			d.persistPending(ctx)
		}
		d.commit(ctx, "import", next)
		d.log.Info("imported", zap.Int("entries", len(next)), zap.String("mode", "replace"))
		return ImportResult{Added: len(next)}
	}

	seen := make(map[string]bool, len(d.entries))
	for _, e := range d.entries {
		seen[e.ID] = true
	}
	next := slices.Clone(d.entries)
	// remap[day][imported id] = id used in this diary
	remap := make(map[string]map[int]int)
	var res ImportResult
	for _, in := range list {
		if in == nil || seen[in.ID] {
			res.Skipped++
			continue
		}
		seen[in.ID] = true
		e := in.Clone()
		if e.Linked() {
			ids := remap[e.Day()]
			if ids == nil {
				ids = make(map[int]int)
				remap[e.Day()] = ids
			}
			id, ok := ids[e.LinkID]
			if !ok {
				id = linking.NextFreeID(next, e.Day())
				ids[e.LinkID] = id
			}
			e.LinkID = id
		}
		next = append(next, e)
		res.Added++
	}
	if res.Added > 0 {
		d.commit(ctx, "import", next)
	}
	d.log.Info("imported",
		zap.Int("added", res.Added),
		zap.Int("skipped", res.Skipped),
		zap.String("mode", "merge"))
	return res
}

// String renders the counts for the command line.
func (r ImportResult) String() string {
	return fmt.Sprintf("%d added, %d skipped", r.Added, r.Skipped)
}
