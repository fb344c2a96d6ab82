package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

// Pending returns the unfinished link, if any.
func (d *Diary) Pending() (linking.PendingLink, bool) {
	if d.pending == nil || d.originIndex() < 0 {
		return linking.PendingLink{}, false
	}
	p := *d.pending
	p.Origin = d.originIndex()
	return p, true
}

func (d *Diary) originIndex() int {
	if d.pending == nil {
		return -1
	}
	for i, e := range d.entries {
		if e.ID == d.pending.OriginID {
			return i
		}
	}
	return -1
}

// linker resumes the state machine with the origin resolved to its current
// index.
func (d *Diary) linker() *linking.Linker {
	p, ok := d.Pending()
	if !ok {
		return linking.Resume(nil)
	}
	return linking.Resume(&p)
}

func (d *Diary) settle(ctx context.Context, l *linking.Linker) {
	if p, ok := l.Pending(); ok {
		d.pending = &p
	} else {
		d.pending = nil
	}
	d.persistPending(ctx)
}

func (d *Diary) persistPending(ctx context.Context) {
	if err := d.store.SavePendingLink(ctx, d.pending); err != nil {
		d.notify("link", err)
	}
}

// forgetPendingFor drops the pending link when e was its origin.
func (d *Diary) forgetPendingFor(ctx context.Context, e *entry.Entry) {
	if d.pending != nil && d.pending.OriginID == e.ID {
		d.pending = nil
		d.persistPending(ctx)
	}
}

// ToggleLink is a click on the link control of the referenced entry.
// ConfirmDissolve leaves everything unchanged; follow up with DissolveLink.
func (d *Diary) ToggleLink(ctx context.Context, ref string) (linking.Result, error) {
	idx, e, err := d.Find(ref)
	if err != nil {
		return linking.Result{}, err
	}
	l := d.linker()
	next, res, err := l.Toggle(d.entries, idx)
	if err != nil {
		return res, err
	}
	d.log.Debug("link toggled",
		zap.String("id", e.ID),
		zap.Stringer("outcome", res.Outcome),
		zap.Int("group", res.GroupID))
	d.commitLinks(ctx, next)
	d.settle(ctx, l)
	return res, nil
}

// ChooseLink answers a pending link that offers existing groups.
func (d *Diary) ChooseLink(ctx context.Context, c linking.Choice) (linking.Result, error) {
	if _, ok := d.Pending(); !ok {
		return linking.Result{}, ErrNoPending
	}
	l := d.linker()
	next, res, err := l.Choose(d.entries, c)
	if err != nil {
		return res, err
	}
	d.commitLinks(ctx, next)
	d.settle(ctx, l)
	return res, nil
}

// CancelLink abandons the pending link.
func (d *Diary) CancelLink(ctx context.Context) (linking.Result, error) {
	p, ok := d.Pending()
	if !ok {
		return linking.Result{}, ErrNoPending
	}
	if p.AwaitingChoice() {
		return d.ChooseLink(ctx, linking.Cancel)
	}
	return d.ToggleLink(ctx, p.OriginID)
}

// DissolveLink clears the link id of every member of the referenced entry's
// group.
func (d *Diary) DissolveLink(ctx context.Context, ref string) ([]*entry.Entry, error) {
	idx, e, err := d.Find(ref)
	if err != nil {
		return nil, err
	}
	if !e.Linked() {
		return nil, nil
	}
	next, cleared := linking.Dissolve(d.entries, idx)
	members := make([]*entry.Entry, 0, len(cleared))
	for _, i := range cleared {
		members = append(members, next[i])
		d.forgetPendingFor(ctx, next[i])
	}
	d.commitLinks(ctx, next)
	return members, nil
}

// Link puts a and b in one group: b joins a's group when a is linked,
// otherwise a is toggled, c answers a group choice if one is offered, and b
// is toggled. Any pending link is cancelled first.
func (d *Diary) Link(ctx context.Context, refA, refB string, c linking.Choice) (linking.Result, error) {
	if _, ok := d.Pending(); ok {
		if _, err := d.CancelLink(ctx); err != nil {
			return linking.Result{}, err
		}
	}
	_, a, err := d.Find(refA)
	if err != nil {
		return linking.Result{}, err
	}
	_, b, err := d.Find(refB)
	if err != nil {
		return linking.Result{}, err
	}
	if a.Day() != b.Day() {
		return linking.Result{}, ErrCrossDay
	}
	if a.ID == b.ID {
		return linking.Result{}, errors.New("app: cannot link an entry to itself")
	}
	if a.Linked() {
		if b.LinkID == a.LinkID {
			return linking.Result{Outcome: linking.Linked, GroupID: a.LinkID}, nil
		}
		// Resume a pending link whose origin already wears the group id.
		l := linking.Resume(&linking.PendingLink{OriginID: a.ID, Day: a.Day(), GroupID: a.LinkID, Origin: -1})
		idx, _, _ := d.Find(b.ID)
		next, res, err := l.Toggle(d.entries, idx)
		if err != nil {
			return res, err
		}
		d.commitLinks(ctx, next)
		return res, nil
	}

	res, err := d.ToggleLink(ctx, a.ID)
	if err != nil {
		return res, err
	}
	if res.Outcome == linking.ChoiceRequired {
		res, err = d.ChooseLink(ctx, c)
		switch {
		case err != nil:
			return res, err
		case res.Outcome == linking.Linked:
			// a joined an existing group; bring b along.
			return d.Link(ctx, a.ID, b.ID, c)
		case res.Outcome != linking.Started:
			return res, nil
		}
	}
	return d.ToggleLink(ctx, b.ID)
}

func (d *Diary) commitLinks(ctx context.Context, next []*entry.Entry) {
	d.commit(ctx, "link", next)
}
