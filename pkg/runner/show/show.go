package show

import (
	"context"
	"errors"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// Show renders one entry as a markdown card.
type Show struct {
	Ref     string
	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Show) Do(_ context.Context) error {
	if n.Diary == nil {
		return errors.New("can not show, no diary")
	}
	_, e, err := n.Diary.Find(n.Ref)
	if err != nil {
		return err
	}
	return n.Printer.Show(e)
}
