package printers

import (
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/store"
)

// tagHex is the badge colour of each tag.
var tagHex = map[entry.Tag]string{
	entry.TagMeal:       "#4caf50",
	entry.TagSymptom:    "#e53935",
	entry.TagStool:      "#8d6e63",
	entry.TagSupplement: "#1e88e5",
	entry.TagHistory:    "#8e24aa",
	entry.TagOther:      "#9e9e9e",
}

// Palette holds the styles for one theme.
type Palette struct {
	Theme      store.Theme
	background colorful.Color
	styled     bool
}

// NewPalette returns the palette for theme. With styled false every style
// renders plain text.
func NewPalette(theme store.Theme, styled bool) Palette {
	bg := colorful.Color{R: 1, G: 1, B: 1}
	if theme == store.ThemeDark {
		bg = colorful.Color{R: 0.08, G: 0.08, B: 0.1}
	}
	return Palette{Theme: theme, background: bg, styled: styled}
}

// Styled reports whether w is a terminal.
func Styled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TagColor is the badge colour of t; blurred tags fade toward the background.
func (p Palette) TagColor(t entry.Tag, blurred bool) color.Color {
	hex, ok := tagHex[t]
	if !ok {
		hex = tagHex[entry.TagOther]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 0.6, G: 0.6, B: 0.6}
	}
	if p.Theme == store.ThemeDark {
		// Lighter badges read better on dark backgrounds.
		c = c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.2)
	}
	if blurred {
		c = c.BlendLab(p.background, 0.6)
	}
	return c.Clamped()
}

// Tag renders a tag badge.
func (p Palette) Tag(t entry.Tag, blurred bool) string {
	label := string(t)
	if !p.styled {
		return "[" + label + "]"
	}
	return lipgloss.NewStyle().
		Foreground(p.TagColor(t, blurred)).
		Bold(!blurred).
		Render(label)
}

// Faint renders secondary text.
func (p Palette) Faint(s string) string {
	if !p.styled {
		return s
	}
	return lipgloss.NewStyle().Faint(true).Render(s)
}

// Connector renders link run connectors.
func (p Palette) Connector(s string) string {
	if !p.styled {
		return s
	}
	fg := lipgloss.Color("#607d8b")
	if p.Theme == store.ThemeDark {
		fg = lipgloss.Color("#b0bec5")
	}
	return lipgloss.NewStyle().Foreground(fg).Render(s)
}
