// Package printers renders diary entries for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
	"tableflip.dev/diary/pkg/timeutil"
)

// Mask replaces the content of blurred entries.
const Mask = "▒▒▒▒▒▒"

type PrettyPrint struct {
	Out     io.Writer
	ShowID  bool
	Width   int
	Palette Palette
	// Blurred reports whether entries with the tag are masked.
	Blurred func(entry.Tag) bool
}

const idWidth = 8

var spacing = strings.Repeat(" ", idWidth+2)

// ShortID is the id prefix shown next to entries; it is usually enough to
// address an entry.
func ShortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) blurred(t entry.Tag) bool {
	return pp.Blurred != nil && pp.Blurred(t)
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// View prints every day of v followed by a paging hint.
func (pp *PrettyPrint) View(v app.View) {
	if len(v.Days) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	for _, d := range v.Days {
		pp.Day(d)
	}
	if v.More() {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "%d of %d shown, use --limit to see more\n", v.Shown, v.Matched)
	}
}

// Day prints one day with connectors for linked runs.
func (pp *PrettyPrint) Day(d app.DayView) {
	pp.TitleWithCount(d.Key, len(d.Entries))
	runs := d.Runs
	if runs == nil {
		runs = linking.Runs(d.Entries)
	}
	for _, r := range runs {
		for i, e := range r.Entries {
			pp.Entry(e, connector(r, i))
		}
	}
	pp.NewLine()
}

// connector is the glyph drawn left of the i-th entry of r.
func connector(r linking.Run, i int) string {
	if !r.Connected() {
		return " "
	}
	switch i {
	case 0:
		return "┌"
	case len(r.Entries) - 1:
		return "└"
	default:
		return "├"
	}
}

// Entry prints one entry line plus its symptoms and comment.
func (pp *PrettyPrint) Entry(e *entry.Entry, conn string) {
	w := pp.out()
	blurred := pp.blurred(e.Tag)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	if pp.ShowID {
		id := ShortID(e.ID)
		_, _ = y.Fprint(w, id+strings.Repeat(" ", len(spacing)-len(id)))
	}
	_, _ = fmt.Fprintf(w, "%s %s %s %s\n",
		pp.Palette.Faint(clockOf(e.Date)),
		pp.Palette.Connector(conn),
		pp.Palette.Tag(e.Tag, blurred),
		pp.headline(e, blurred))

	if blurred {
		return
	}
	pad := uint(len(spacing)*btoi(pp.ShowID) + len("00:00 x "))
	for _, s := range e.Symptoms {
		line := fmt.Sprintf("%s %s %s", s.Text, pp.Palette.Faint(timeutil.FormatOnset(s.Time)), strength(s.Strength))
		_, _ = fmt.Fprintln(w, indent.String(line, pad+2))
	}
	if e.Comment != "" {
		wrapped := wordwrap.String(e.Comment, max(pp.width()-int(pad)-2, 20))
		_, _ = fmt.Fprintln(w, indent.String(pp.Palette.Faint(wrapped), pad+2))
	}
}

func (pp *PrettyPrint) headline(e *entry.Entry, blurred bool) string {
	if blurred {
		return Mask
	}
	title := e.Food
	if title == "" {
		title = e.Title()
	}
	if e.Portion != nil {
		title += " (" + e.Portion.String() + ")"
	}
	if n := len(e.Images); n > 0 {
		title += pp.Palette.Faint(fmt.Sprintf(" [%d img]", n))
	}
	return title
}

// Notices prints non-fatal failures in yellow.
func (pp *PrettyPrint) Notices(notices []app.Notice) {
	warn := color.New(color.FgYellow)
	for _, n := range notices {
		_, _ = warn.Fprintf(pp.out(), "! %s\n", n)
	}
}

func clockOf(date string) string {
	if _, t, ok := strings.Cut(date, " "); ok {
		return t
	}
	return "--:--"
}

func strength(n int) string {
	n = min(max(n, entry.MinStrength), entry.MaxStrength)
	return strings.Repeat("●", n) + strings.Repeat("○", entry.MaxStrength-n)
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
