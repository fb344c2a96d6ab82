package add

import (
	"context"
	"errors"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/images"
	"tableflip.dev/diary/pkg/printers"
)

// Asker reads free text from the user.
type Asker interface {
	Ask(label, def string, required bool) (string, error)
}

type Add struct {
	Draft *entry.Draft
	// FromDraft commits the stored draft; Draft is ignored.
	FromDraft bool
	Comment   string
	Images    []string
	// Asker fills in food and a symptom when Draft is empty.
	Asker Asker

	Encoder images.Encoder
	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Add) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not add, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	var (
		e   *entry.Entry
		err error
	)
	if n.FromDraft {
		e, err = d.CommitDraft(ctx)
	} else {
		draft := n.Draft
		if draft == nil {
			draft = &entry.Draft{}
		}
		if draft.Empty() && n.Asker != nil {
			if err := n.ask(draft); err != nil {
				return err
			}
		}
		e, err = d.Add(ctx, draft)
	}
	if err != nil {
		return err
	}

	if len(n.Images) > 0 {
		if e, err = n.attach(ctx, e); err != nil {
			return err
		}
	}
	if c := strings.TrimSpace(n.Comment); c != "" {
		if e, err = d.SetComment(ctx, e.ID, c); err != nil {
			return err
		}
	}

	if dv, ok := d.Day(e.Day()); ok {
		n.Printer.Day(dv)
	}
	return nil
}

func (n *Add) ask(draft *entry.Draft) error {
	food, err := n.Asker.Ask("Food", "", false)
	if err != nil {
		return err
	}
	draft.Food = food
	symptom, err := n.Asker.Ask("Symptom (text@onset#strength)", "", food == "")
	if err != nil {
		return err
	}
	if symptom == "" {
		return nil
	}
	s, err := entry.ParseSymptom(symptom)
	if err != nil {
		return err
	}
	draft.Symptoms = append(draft.Symptoms, s)
	return nil
}

// attach encodes the image files and adds those that worked. Each failure is
// printed; the entry stays either way.
func (n *Add) attach(ctx context.Context, e *entry.Entry) (*entry.Entry, error) {
	warn := color.New(color.FgYellow)
	var urls []string
	for _, r := range n.Encoder.EncodeFiles(ctx, n.Images) {
		if r.Err != nil {
			_, _ = warn.Fprintf(color.Output, "! image %s: %v\n", r.Path, r.Err)
			continue
		}
		urls = append(urls, r.DataURL)
	}
	if len(urls) == 0 {
		return e, nil
	}
	return n.Diary.AddImages(ctx, e.ID, urls...)
}
