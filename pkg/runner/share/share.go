package share

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/share"
)

// Share prints a link that carries the whole diary.
type Share struct {
	Base  string
	Out   io.Writer
	Diary *app.Diary
}

func (n *Share) Do(_ context.Context) error {
	if n.Diary == nil {
		return errors.New("can not share, no diary")
	}
	link, err := share.Link(n.Base, n.Diary.Entries())
	if err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, err = fmt.Fprintln(out, link)
	return err
}
