package printers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/store"
	"tableflip.dev/diary/pkg/timeutil"
)

// Markdown describes one entry as a markdown document.
func Markdown(e *entry.Entry, blurred bool) string {
	var b strings.Builder
	title := e.Title()
	if blurred {
		title = Mask
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Date:** %s\n", e.Date)
	tag := string(e.Tag)
	if e.TagManual {
		tag += " (manual)"
	}
	fmt.Fprintf(&b, "- **Tag:** %s\n", tag)
	if e.Portion != nil {
		fmt.Fprintf(&b, "- **Portion:** %s\n", e.Portion)
	}
	if e.Linked() {
		fmt.Fprintf(&b, "- **Link group:** %d\n", e.LinkID)
	}
	fmt.Fprintf(&b, "- **Id:** `%s`\n", e.ID)
	if blurred {
		return b.String()
	}

	if len(e.Symptoms) > 0 {
		b.WriteString("\n## Symptoms\n\n| # | Symptom | Onset | Strength |\n|---|---|---|---|\n")
		for i, s := range e.Symptoms {
			fmt.Fprintf(&b, "| %d | %s | %s | %d/%d |\n", i, s.Text, timeutil.FormatOnset(s.Time), s.Strength, entry.MaxStrength)
		}
	}
	if e.Comment != "" {
		fmt.Fprintf(&b, "\n## Comment\n\n%s\n", e.Comment)
	}
	if n := len(e.Images); n > 0 {
		fmt.Fprintf(&b, "\n_%d image(s) attached._\n", n)
	}
	return b.String()
}

// Show renders an entry with glamour in the style matching theme. Without a
// terminal the markdown source is printed.
func (pp *PrettyPrint) Show(e *entry.Entry) error {
	md := Markdown(e, pp.blurred(e.Tag))
	if !pp.Palette.styled {
		_, err := fmt.Fprint(pp.out(), md)
		return err
	}
	style := "light"
	if pp.Palette.Theme == store.ThemeDark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return fmt.Errorf("render entry: %w", err)
	}
	_, err = fmt.Fprint(pp.out(), out)
	return err
}
