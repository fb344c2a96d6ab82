package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

// Add builds an entry from the draft, dated now, and inserts it.
func (d *Diary) Add(ctx context.Context, draft *entry.Draft) (*entry.Entry, error) {
	if draft == nil {
		draft = &entry.Draft{}
	}
	e, err := draft.Build(d.Now())
	if err != nil {
		return nil, err
	}
	// createdAt breaks ties within a minute and stays unique.
	for _, other := range d.entries {
		if other.CreatedAt >= e.CreatedAt {
			e.CreatedAt = other.CreatedAt + 1
		}
	}
	next := append(slices.Clone(d.entries), e)
	d.commit(ctx, "add", next)
	d.log.Debug("added", zap.String("id", e.ID), zap.String("tag", string(e.Tag)))
	return e, nil
}

// Update applies fn to a copy of the referenced entry and stores the copy.
// When fn fails nothing changes. A changed day detaches the entry from its
// link group.
func (d *Diary) Update(ctx context.Context, ref string, fn func(e *entry.Entry) error) (*entry.Entry, error) {
	idx, old, err := d.Find(ref)
	if err != nil {
		return nil, err
	}
	e := old.Clone()
	if err := fn(e); err != nil {
		return nil, err
	}
	if !entry.ValidDisplay(e.Date) {
		return nil, fmt.Errorf("%w: date %q", entry.ErrInvalid, e.Date)
	}
	if strings.TrimSpace(e.Food) == "" && len(e.Symptoms) == 0 {
		return nil, fmt.Errorf("%w: an entry needs food or at least one symptom", entry.ErrInvalid)
	}

	next := d.entries
	if e.Day() != old.Day() {
		if old.Linked() {
			next, _ = linking.Detach(next, idx)
			e.LinkID = 0
		}
		d.forgetPendingFor(ctx, old)
	}
	next = slices.Clone(next)
	next[idx] = e
	d.commit(ctx, "edit", next)
	return e, nil
}

// SetFood changes the food text and reclassifies unless the tag is pinned.
func (d *Diary) SetFood(ctx context.Context, ref, food string) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.Food = strings.TrimSpace(food)
		e.Retag()
		return nil
	})
}

// SetComment replaces the free-text comment.
func (d *Diary) SetComment(ctx context.Context, ref, comment string) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.Comment = strings.TrimSpace(comment)
		return nil
	})
}

// SetDate accepts the display format or the picker format.
func (d *Diary) SetDate(ctx context.Context, ref, date string) (*entry.Entry, error) {
	date = entry.NormalizeDate(date)
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.Date = date
		return nil
	})
}

// SetPortion sets or, with nil, clears the portion.
func (d *Diary) SetPortion(ctx context.Context, ref string, p *entry.Portion) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.Portion = p
		return nil
	})
}

// AddSymptom appends s and reclassifies.
func (d *Diary) AddSymptom(ctx context.Context, ref string, s entry.Symptom) (*entry.Entry, error) {
	s, err := entry.NewSymptom(s.Text, s.Time, s.Strength)
	if err != nil {
		return nil, err
	}
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.Symptoms = append(e.Symptoms, s)
		e.Retag()
		return nil
	})
}

// RemoveSymptom drops the i-th symptom and reclassifies.
func (d *Diary) RemoveSymptom(ctx context.Context, ref string, i int) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		if i < 0 || i >= len(e.Symptoms) {
			return fmt.Errorf("%w: no symptom %d", entry.ErrInvalid, i)
		}
		e.Symptoms = slices.Delete(e.Symptoms, i, i+1)
		e.Retag()
		return nil
	})
}

// SetSymptoms replaces all symptoms and reclassifies.
func (d *Diary) SetSymptoms(ctx context.Context, ref string, symptoms []entry.Symptom) (*entry.Entry, error) {
	checked := make([]entry.Symptom, 0, len(symptoms))
	for _, s := range symptoms {
		s, err := entry.NewSymptom(s.Text, s.Time, s.Strength)
		if err != nil {
			return nil, err
		}
		checked = append(checked, s)
	}
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.Symptoms = checked
		e.Retag()
		return nil
	})
}

// SetTag pins a manual tag.
func (d *Diary) SetTag(ctx context.Context, ref string, t entry.Tag) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.PinTag(t)
		return nil
	})
}

// ResetTag drops a manual tag and reclassifies.
func (d *Diary) ResetTag(ctx context.Context, ref string) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.ResetTag()
		return nil
	})
}

// AddImages appends encoded images (data URLs).
func (d *Diary) AddImages(ctx context.Context, ref string, images ...string) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		e.Images = append(e.Images, images...)
		return nil
	})
}

// RemoveImage drops the i-th image.
func (d *Diary) RemoveImage(ctx context.Context, ref string, i int) (*entry.Entry, error) {
	return d.Update(ctx, ref, func(e *entry.Entry) error {
		if i < 0 || i >= len(e.Images) {
			return fmt.Errorf("%w: no image %d", entry.ErrInvalid, i)
		}
		e.Images = slices.Delete(e.Images, i, i+1)
		return nil
	})
}

// Delete removes the entry. A group of two it belonged to is dissolved.
func (d *Diary) Delete(ctx context.Context, ref string) (*entry.Entry, error) {
	idx, e, err := d.Find(ref)
	if err != nil {
		return nil, err
	}
	next := d.entries
	if e.Linked() {
		next, _ = linking.Detach(next, idx)
	}
	next = slices.Delete(slices.Clone(next), idx, idx+1)
	d.forgetPendingFor(ctx, e)
	d.commit(ctx, "delete", next)
	return e, nil
}
