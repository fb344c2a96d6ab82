package theme

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

// Theme prints or sets the colour theme.
type Theme struct {
	// Set is "light" or "dark"; empty prints the current theme.
	Set string

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Theme) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not change theme, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	if n.Set != "" {
		t, err := store.ParseTheme(n.Set)
		if err != nil {
			return err
		}
		d.SetTheme(ctx, t)
	}
	_, err := fmt.Fprintln(color.Output, d.Preferences().Theme)
	return err
}
