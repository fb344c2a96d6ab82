package blur

import (
	"context"
	"errors"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

// Blur toggles masked categories and prints the legend.
type Blur struct {
	// Tags are toggled one by one.
	Tags []string
	// Clear unmasks everything before toggling.
	Clear bool

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Blur) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not blur, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	tags := make([]entry.Tag, 0, len(n.Tags))
	for _, s := range n.Tags {
		t, err := entry.ParseTag(s)
		if err != nil {
			return err
		}
		tags = append(tags, t)
	}
	if n.Clear {
		d.SetBlur(ctx, nil)
	}
	for _, t := range tags {
		d.ToggleBlur(ctx, t)
	}
	n.Printer.Legend()
	return nil
}
