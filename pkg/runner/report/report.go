package report

import (
	"context"
	"errors"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/timeutil"
)

// Report summarises the window that ends now.
type Report struct {
	// Window is written like "3d" or "2w"; empty means one week.
	Window string

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Report) Do(_ context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not report, no diary")
	}
	window := n.Window
	if window == "" {
		window = timeutil.DefaultWindow
	}
	span, label, err := timeutil.ParseWindow(window)
	if err != nil {
		return err
	}
	until := d.Now()
	n.Printer.Report(d.Report(until.Add(-span), until), label)
	return nil
}
