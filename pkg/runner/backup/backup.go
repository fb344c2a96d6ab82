// Package backup moves the diary in and out of files and share links.
package backup

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/export"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/share"
)

// ErrBadLink is returned when a share link does not decode.
var ErrBadLink = errors.New("share link is not a valid diary")

// Import reads a JSON backup file or a share link.
type Import struct {
	Link    string
	File    string
	Replace bool

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Import) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not import, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	var (
		list []*entry.Entry
		err  error
	)
	switch {
	case n.Link != "" && n.File != "":
		return errors.New("use either --link or --file")
	case n.Link != "":
		var ok bool
		if list, ok = share.FromLink(n.Link); !ok {
			return ErrBadLink
		}
	case n.File != "":
		list, err = readFile(n.File)
	default:
		return errors.New("nothing to import: pass --link or --file")
	}
	if err != nil {
		return err
	}

	mode := app.Merge
	if n.Replace {
		mode = app.Replace
	}
	res := d.Import(ctx, list, mode)
	_, _ = color.New(color.Bold).Fprintln(color.Output, res)
	return nil
}

func readFile(path string) ([]*entry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return export.ReadBackup(f, uuid.NewString)
}

// Export writes the diary as JSON or as a printable text report.
type Export struct {
	Format export.Format
	// Out is a file path; empty writes to stdout.
	Out    string
	Stdout io.Writer

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Export) Do(ctx context.Context) error {
	if n.Diary == nil {
		return errors.New("can not export, no diary")
	}
	printer := n.Printer
	if n.Out != "" {
		// Files get plain text.
		printer.Palette = printers.NewPalette(printer.Palette.Theme, false)
		color.NoColor = true
	}
	exp := export.New(n.Format, printer)
	entries := n.Diary.Entries()
	if n.Out == "" {
		w := n.Stdout
		if w == nil {
			w = color.Output
		}
		return exp.Export(ctx, w, entries)
	}
	if err := export.ToFile(ctx, exp, n.Out, entries); err != nil {
		return err
	}
	_, _ = color.New(color.Bold).Fprintf(color.Output, "exported %d entries to %s\n", len(entries), n.Out)
	return nil
}
