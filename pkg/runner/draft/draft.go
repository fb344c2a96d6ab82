// Package draft keeps the new-entry form between invocations.
package draft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

// Action is what Draft does with the stored form.
type Action string

const (
	Set    Action = "set"
	Show   Action = "show"
	Clear  Action = "clear"
	Commit Action = "commit"
)

type Draft struct {
	Action Action
	// Patch is merged into the stored form by Set: non-empty fields replace,
	// symptoms are appended.
	Patch *entry.Draft

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Draft) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not edit the draft, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	switch n.Action {
	case Set:
		dr := Merge(d.Draft(ctx), n.Patch)
		d.SaveDraft(ctx, dr)
		n.print(dr)
	case Clear:
		d.SaveDraft(ctx, nil)
		_, _ = color.New(color.Faint).Fprintln(color.Output, "draft cleared")
	case Commit:
		e, err := d.CommitDraft(ctx)
		if err != nil {
			return err
		}
		if dv, ok := d.Day(e.Day()); ok {
			n.Printer.Day(dv)
		}
	default:
		n.print(d.Draft(ctx))
	}
	return nil
}

// Merge applies patch to base and returns the result; base is not changed.
func Merge(base, patch *entry.Draft) *entry.Draft {
	out := entry.Draft{}
	if base != nil {
		out = *base
		out.Symptoms = append([]entry.Symptom(nil), base.Symptoms...)
		out.Images = append([]string(nil), base.Images...)
	}
	if patch == nil {
		return &out
	}
	if strings.TrimSpace(patch.Food) != "" {
		out.Food = patch.Food
	}
	out.Symptoms = append(out.Symptoms, patch.Symptoms...)
	out.Images = append(out.Images, patch.Images...)
	if patch.Portion != nil {
		p := *patch.Portion
		out.Portion = &p
	}
	if patch.TagManual {
		out.Tag, out.TagManual = patch.Tag, true
	}
	return &out
}

func (n *Draft) print(dr *entry.Draft) {
	w := color.Output
	if dr.Empty() {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(w, " draft is empty")
		return
	}
	bold := color.New(color.Bold)
	_, _ = bold.Fprintln(w, "Draft")
	if dr.Food != "" {
		_, _ = fmt.Fprintf(w, "  food:     %s\n", dr.Food)
	}
	for _, s := range dr.Symptoms {
		_, _ = fmt.Fprintf(w, "  symptom:  %s\n", entry.FormatSymptom(s))
	}
	if dr.Portion != nil {
		_, _ = fmt.Fprintf(w, "  portion:  %s\n", dr.Portion)
	}
	if dr.TagManual {
		_, _ = fmt.Fprintf(w, "  tag:      %s\n", dr.Tag)
	}
	if count := len(dr.Images); count > 0 {
		_, _ = fmt.Fprintf(w, "  images:   %d\n", count)
	}
}
