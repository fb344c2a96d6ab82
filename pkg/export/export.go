// Package export writes the diary for backup and printing.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/day"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
	"tableflip.dev/diary/pkg/printers"
)

// Format names an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat accepts "json" or "text" (also "txt", "print").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "text", "txt", "print":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown export format %q (expected json or text)", s)
	}
}

// Exporter writes entries to w.
type Exporter interface {
	Export(ctx context.Context, w io.Writer, entries []*entry.Entry) error
}

// JSON is the backup format, readable by Import.
type JSON struct {
	Indent bool
}

func (j JSON) Export(_ context.Context, w io.Writer, entries []*entry.Entry) error {
	data, err := entry.MarshalList(entries)
	if err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	if j.Indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("export: indent: %w", err)
		}
		data = buf.Bytes()
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// Text is the printable report: one section per day with link connectors.
// Blurred categories stay masked.
type Text struct {
	Title   string
	Printer printers.PrettyPrint
}

func (t Text) Export(ctx context.Context, w io.Writer, entries []*entry.Entry) error {
	pp := t.Printer
	pp.Out = w
	if t.Title != "" {
		pp.Title(t.Title)
		pp.NewLine()
	}
	for _, b := range day.Group(entries) {
		if err := ctx.Err(); err != nil {
			return err
		}
		pp.Day(app.DayView{Bucket: b, Runs: linking.Runs(b.Entries)})
	}
	return nil
}

// New returns the exporter for f.
func New(f Format, printer printers.PrettyPrint) Exporter {
	if f == FormatText {
		return Text{Title: "Food diary", Printer: printer}
	}
	return JSON{Indent: true}
}

// ToFile exports into path via a temporary file so a failed export never
// leaves a truncated file behind.
func ToFile(ctx context.Context, exp Exporter, path string, entries []*entry.Entry) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := exp.Export(ctx, tmp, entries); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ReadBackup reads a JSON backup written by JSON.Export.
func ReadBackup(r io.Reader, newID func() string) ([]*entry.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("import: read: %w", err)
	}
	list, err := entry.UnmarshalList(data, newID)
	if err != nil {
		return nil, fmt.Errorf("import: decode: %w", err)
	}
	return list, nil
}
