// Package link drives the link state machine from the command line.
package link

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/linking"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/prompt"
)

// Chooser answers the questions a link may raise.
type Chooser interface {
	ChooseGroup(day string, groups []prompt.Group) (linking.Choice, error)
	Confirm(label string) (bool, error)
}

// ErrNeedsChoice is returned when a group must be chosen and no chooser or
// preset choice is available.
var ErrNeedsChoice = errors.New("an existing group must be chosen: pass --join N, --new or --interactive")

// Link is one click on the link control, or a direct link of two entries.
type Link struct {
	Refs []string
	// Cancel abandons the pending link.
	Cancel bool
	// Choice answers a group choice without prompting when set.
	Choice *linking.Choice
	// Yes confirms dissolving a pair.
	Yes     bool
	Chooser Chooser

	Diary   *app.Diary
	Printer printers.PrettyPrint
}

func (l *Link) Do(ctx context.Context) error {
	d := l.Diary
	if d == nil {
		return errors.New("can not link, no diary")
	}
	defer func() { l.Printer.Notices(d.Notices()) }()

	var (
		res linking.Result
		err error
	)
	switch {
	case l.Cancel:
		res, err = d.CancelLink(ctx)
	case len(l.Refs) == 2:
		var c linking.Choice
		c, err = l.presetOrAsk(ctx, l.Refs[0])
		if err == nil {
			res, err = d.Link(ctx, l.Refs[0], l.Refs[1], c)
		}
	case len(l.Refs) == 1:
		res, err = l.toggle(ctx, l.Refs[0])
	default:
		return l.status()
	}
	if err != nil {
		return err
	}
	return l.report(res)
}

// presetOrAsk resolves the group choice that linking ref could require up
// front, since Link answers it in one go.
func (l *Link) presetOrAsk(ctx context.Context, ref string) (linking.Choice, error) {
	if l.Choice != nil {
		return *l.Choice, nil
	}
	_, e, err := l.Diary.Find(ref)
	if err != nil {
		return linking.Choice{}, err
	}
	ids := linking.MultiMemberGroups(l.Diary.Entries(), e.Day())
	if e.Linked() || len(ids) == 0 {
		return linking.NewGroup, nil
	}
	if l.Chooser == nil {
		return linking.Choice{}, ErrNeedsChoice
	}
	return l.Chooser.ChooseGroup(e.Day(), l.groups(e.Day(), ids))
}

func (l *Link) toggle(ctx context.Context, ref string) (linking.Result, error) {
	d := l.Diary
	res, err := d.ToggleLink(ctx, ref)
	// ErrChoiceRequired marks a partner click while the pending link waits for a
	// group. Answer that first, then replay the click.
	partner := errors.Is(err, linking.ErrChoiceRequired)
	if partner {
		err = nil
	}
	if err != nil {
		return res, err
	}

	switch res.Outcome {
	case linking.ChoiceRequired:
		p, _ := d.Pending()
		c := linking.Cancel
		switch {
		case l.Choice != nil:
			c = *l.Choice
		case l.Chooser != nil:
			if c, err = l.Chooser.ChooseGroup(p.Day, l.groups(p.Day, res.Choices)); err != nil {
				_, _ = d.ChooseLink(ctx, linking.Cancel)
				return res, err
			}
		default:
			// Nothing was linked yet; a rerun with --join or --new starts over.
			if _, err := d.ChooseLink(ctx, linking.Cancel); err != nil {
				return res, err
			}
			return res, ErrNeedsChoice
		}
		if res, err = d.ChooseLink(ctx, c); err != nil || !partner || res.Outcome != linking.Started {
			return res, err
		}
		return d.ToggleLink(ctx, ref)

	case linking.ConfirmDissolve:
		ok := l.Yes
		if !ok && l.Chooser != nil {
			if ok, err = l.Chooser.Confirm(fmt.Sprintf("Dissolve link group %d", res.GroupID)); err != nil {
				return res, err
			}
		}
		if !ok {
			return res, nil
		}
		if _, err := d.DissolveLink(ctx, ref); err != nil {
			return res, err
		}
		return linking.Result{Outcome: linking.Removed, GroupID: res.GroupID}, nil
	}
	return res, nil
}

func (l *Link) groups(dayKey string, ids []int) []prompt.Group {
	entries := l.Diary.Entries()
	out := make([]prompt.Group, 0, len(ids))
	for _, id := range ids {
		g := prompt.Group{ID: id}
		for _, i := range linking.Members(entries, dayKey, id) {
			g.Members = append(g.Members, entries[i])
		}
		out = append(out, g)
	}
	return out
}

func (l *Link) report(res linking.Result) error {
	msg := map[linking.Outcome]string{
		linking.Started:         "link started, pick the entry to link with",
		linking.ChoiceRequired:  "a group must be chosen",
		linking.Linked:          "linked",
		linking.Cancelled:       "link cancelled",
		linking.Aborted:         "link aborted, entries of different days can not be linked",
		linking.Removed:         "removed from group",
		linking.ConfirmDissolve: "left unchanged, pass --yes to dissolve the pair",
	}[res.Outcome]
	if res.GroupID > 0 && res.Outcome != linking.Aborted {
		msg = fmt.Sprintf("%s (group %d)", msg, res.GroupID)
	}
	_, _ = color.New(color.Bold).Fprintln(color.Output, msg)
	return l.status()
}

// status prints the pending link and the day it belongs to.
func (l *Link) status() error {
	d := l.Diary
	p, ok := d.Pending()
	if !ok {
		_, _ = color.New(color.Faint).Fprintln(color.Output, "no link pending")
		return nil
	}
	origin := d.Entries()[p.Origin]
	_, _ = fmt.Fprintf(color.Output, "pending link from %s %s\n", printers.ShortID(origin.ID), origin.Title())

	if dv, ok := d.Day(p.Day); ok {
		l.Printer.Day(dv)
	}
	return nil
}
