// Package edit changes fields of an existing entry.
package edit

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/images"
	"tableflip.dev/diary/pkg/printers"
)

// Edit holds the requested changes; nil and empty fields are left alone.
// All changes are applied together or not at all.
type Edit struct {
	Ref string

	Food    *string
	Comment *string
	Date    *string
	Portion *string
	Tag     string
	AutoTag bool

	AddSymptoms    []string
	RemoveSymptoms []int
	AddImages      []string
	RemoveImages   []int

	Encoder images.Encoder
	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Edit) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not edit, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	if n.Tag != "" && n.AutoTag {
		return errors.New("--tag and --auto-tag are exclusive")
	}

	var (
		portion *entry.Portion
		tag     entry.Tag
		added   []entry.Symptom
		err     error
	)
	if n.Portion != nil {
		if portion, err = entry.ParsePortion(*n.Portion); err != nil {
			return err
		}
	}
	if n.Tag != "" {
		if tag, err = entry.ParseTag(n.Tag); err != nil {
			return err
		}
	}
	for _, raw := range n.AddSymptoms {
		s, err := entry.ParseSymptom(raw)
		if err != nil {
			return err
		}
		added = append(added, s)
	}
	urls, err := n.encode(ctx)
	if err != nil {
		return err
	}

	e, err := d.Update(ctx, n.Ref, func(e *entry.Entry) error {
		if n.Food != nil {
			e.Food = strings.TrimSpace(*n.Food)
		}
		if n.Comment != nil {
			e.Comment = strings.TrimSpace(*n.Comment)
		}
		if n.Date != nil {
			e.Date = normalizeDate(*n.Date)
		}
		if n.Portion != nil {
			e.Portion = portion
		}
		if e.Symptoms, err = removeAt(e.Symptoms, n.RemoveSymptoms, "symptom"); err != nil {
			return err
		}
		e.Symptoms = append(e.Symptoms, added...)
		if e.Images, err = removeAt(e.Images, n.RemoveImages, "image"); err != nil {
			return err
		}
		e.Images = append(e.Images, urls...)

		switch {
		case tag != "":
			e.PinTag(tag)
		case n.AutoTag:
			e.ResetTag()
		default:
			e.Retag()
		}
		return nil
	})
	if err != nil {
		return err
	}

	if dv, ok := d.Day(e.Day()); ok {
		n.Printer.Day(dv)
	}
	return nil
}

// normalizeDate accepts the display format or the picker format.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if entry.ValidDisplay(s) {
		return s
	}
	if display := entry.FromPicker(s); display != "" {
		return display
	}
	return s
}

// removeAt drops the given indices, which refer to the list before removal.
func removeAt[T any](list []T, indices []int, what string) ([]T, error) {
	if len(indices) == 0 {
		return list, nil
	}
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, i := range sorted {
		if i < 0 || i >= len(list) {
			return nil, fmt.Errorf("%w: no %s %d", entry.ErrInvalid, what, i)
		}
	}
	out := slices.Clone(list)
	for i := len(sorted) - 1; i >= 0; i-- {
		out = slices.Delete(out, sorted[i], sorted[i]+1)
	}
	return out, nil
}

func (n *Edit) encode(ctx context.Context) ([]string, error) {
	if len(n.AddImages) == 0 {
		return nil, nil
	}
	warn := color.New(color.FgYellow)
	var urls []string
	for _, r := range n.Encoder.EncodeFiles(ctx, n.AddImages) {
		if r.Err != nil {
			_, _ = warn.Fprintf(color.Output, "! image %s: %v\n", r.Path, r.Err)
			continue
		}
		urls = append(urls, r.DataURL)
	}
	return urls, ctx.Err()
}
