// Package fav manages the favourite foods and symptoms.
package fav

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/printers"
)

// Action is what Fav does with the list.
type Action string

const (
	Add     Action = "add"
	Remove  Action = "remove"
	List    Action = "list"
	Suggest Action = "suggest"
)

// ParseAction accepts add, remove (rm), list (ls) and suggest.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add":
		return Add, nil
	case "remove", "rm":
		return Remove, nil
	case "list", "ls", "":
		return List, nil
	case "suggest":
		return Suggest, nil
	default:
		return "", fmt.Errorf("unknown action %q (expected add, remove, list or suggest)", s)
	}
}

type Fav struct {
	Action Action
	Kind   app.Favorites
	Text   string

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (n *Fav) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not change favourites, no diary")
	}
	defer func() { n.Printer.Notices(d.Notices()) }()

	switch n.Action {
	case Add:
		if strings.TrimSpace(n.Text) == "" {
			return errors.New("nothing to add")
		}
		d.AddFavorite(ctx, n.Kind, n.Text)
	case Remove:
		if !d.RemoveFavorite(ctx, n.Kind, n.Text) {
			return fmt.Errorf("%q is not a favourite %s", n.Text, n.Kind)
		}
	case Suggest:
		n.print(d.Suggest(n.Kind, n.Text))
		return nil
	}
	n.print(d.Favorites(n.Kind))
	return nil
}

func (n *Fav) print(list []string) {
	if len(list) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(color.Output, " none")
		return
	}
	for _, s := range list {
		_, _ = fmt.Fprintln(color.Output, s)
	}
}
