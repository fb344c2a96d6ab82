// Package strike removes entries from the diary.
package strike

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// Confirmer asks before an entry is removed.
type Confirmer interface {
	Confirm(label string) (bool, error)
}

type Strike struct {
	Ref string
	// Yes skips the confirmation.
	Yes       bool
	Confirmer Confirmer

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Strike) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not delete, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	_, e, err := d.Find(n.Ref)
	if err != nil {
		return err
	}
	if !n.Yes && n.Confirmer != nil {
		ok, err := n.Confirmer.Confirm(fmt.Sprintf("Delete %s %s", e.Date, e.Title()))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = color.New(color.Faint).Fprintln(color.Output, "kept")
			return nil
		}
	}

	removed, err := d.Delete(ctx, e.ID)
	if err != nil {
		return err
	}
	_, _ = color.New(color.Bold).Fprintf(color.Output, "deleted %s %s\n", printers.ShortID(removed.ID), removed.Title())
	if dv, ok := d.Day(removed.Day()); ok {
		n.Printer.Day(dv)
	}
	return nil
}
