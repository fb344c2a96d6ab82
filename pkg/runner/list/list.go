// Package list prints the visible part of the diary.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

type List struct {
	Query app.Query
	// Watch redraws on every change until ctx is done.
	Watch bool
	JSON  bool

	Diary   *app.Diary
	Printer printers.PrettyPrint
	Log     *zap.Logger
}

func (n *List) Do(ctx context.Context) error {
	d := n.Diary
	if d == nil {
		return errors.New("can not list, no diary")
	}
	if err := n.render(); err != nil {
		return err
	}
	if !n.Watch {
		return nil
	}

	events, err := d.Watch(ctx)
	if err != nil {
		return err
	}
	log := n.Log
	if log == nil {
		log = zap.NewNop()
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			log.Debug("diary changed", zap.Stringer("type", ev.Type), zap.String("key", ev.Key))
			if err := d.Reload(ctx); err != nil {
				log.Warn("reload failed", zap.Error(err))
				continue
			}
			if err := n.render(); err != nil {
				return err
			}
		}
	}
}

func (n *List) out() io.Writer {
	if n.Printer.Out != nil {
		return n.Printer.Out
	}
	return color.Output
}

func (n *List) render() error {
	v := n.Diary.Visible(n.Query)
	if n.JSON {
		return n.renderJSON(v)
	}
	if n.Watch {
		// Home and clear, so the redraw replaces the previous list.
		_, _ = fmt.Fprint(n.out(), "\x1b[H\x1b[2J")
	}
	n.Printer.NewLine()
	n.Printer.View(v)
	if p, ok := n.Diary.Pending(); ok {
		_, _ = color.New(color.FgCyan).Fprintf(n.out(), "link pending from %s\n", printers.ShortID(p.OriginID))
	}
	n.Printer.Notices(n.Diary.Notices())
	return nil
}

type dayJSON struct {
	Day     string         `json:"day"`
	Entries []*entry.Entry `json:"entries"`
}

type viewJSON struct {
	Days    []dayJSON `json:"days"`
	Shown   int       `json:"shown"`
	Matched int       `json:"matched"`
}

func (n *List) renderJSON(v app.View) error {
	out := viewJSON{Shown: v.Shown, Matched: v.Matched, Days: make([]dayJSON, 0, len(v.Days))}
	for _, dv := range v.Days {
		out.Days = append(out.Days, dayJSON{Day: dv.Key, Entries: dv.Entries})
	}
	enc := json.NewEncoder(n.out())
	if !n.Watch {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
