package linking

import (
	"fmt"

	"tableflip.dev/diary/pkg/entry"
)

// Outcome names what a Toggle did.
type Outcome int

const (
	// Started: the origin wears a fresh id and waits for a partner.
	Started Outcome = iota
	// ChoiceRequired: existing groups must be offered before continuing.
	ChoiceRequired
	// Linked: the clicked entry joined the pending group.
	Linked
	// Cancelled: the origin was clicked again; its transient id is gone.
	Cancelled
	// Aborted: an entry of another day was clicked; nothing was linked.
	Aborted
	// Removed: the clicked entry left a group of three or more.
	Removed
	// ConfirmDissolve: the clicked entry is in a group of two; call Dissolve
	// once the user confirms.
	ConfirmDissolve
)

func (o Outcome) String() string {
	switch o {
	case Started:
		return "started"
	case ChoiceRequired:
		return "choice required"
	case Linked:
		return "linked"
	case Cancelled:
		return "cancelled"
	case Aborted:
		return "aborted"
	case Removed:
		return "removed"
	case ConfirmDissolve:
		return "confirm dissolve"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result of a transition. GroupID is the group involved, Choices is set for
// ChoiceRequired.
type Result struct {
	Outcome Outcome
	GroupID int
	Choices []int
}

// Linker is the click-driven link state machine: Idle until an unlinked
// entry is clicked, Pending until a partner, the origin again, or an entry
// of another day is clicked.
type Linker struct {
	pending *PendingLink
}

// Resume returns a machine in the given state; nil means Idle.
func Resume(p *PendingLink) *Linker {
	if p == nil {
		return &Linker{}
	}
	cp := *p
	return &Linker{pending: &cp}
}

// Phase reports the current phase.
func (l *Linker) Phase() Phase {
	if l.pending != nil {
		return Pending
	}
	return Idle
}

// Pending returns the pending link, if any.
func (l *Linker) Pending() (PendingLink, bool) {
	if l.pending == nil {
		return PendingLink{}, false
	}
	return *l.pending, true
}

// Choose answers ChoiceRequired.
func (l *Linker) Choose(entries []*entry.Entry, c Choice) ([]*entry.Entry, Result, error) {
	if l.pending == nil {
		return entries, Result{}, ErrNotPending
	}
	p := *l.pending
	out, next, err := Choose(entries, p, c)
	if err != nil {
		return entries, Result{Outcome: ChoiceRequired, Choices: p.Choices}, err
	}
	l.pending = next
	switch {
	case c.Cancel:
		return out, Result{Outcome: Cancelled, GroupID: p.GroupID}, nil
	case next == nil:
		return out, Result{Outcome: Linked, GroupID: c.Group}, nil
	default:
		return out, Result{Outcome: Started, GroupID: next.GroupID}, nil
	}
}

// Toggle applies a click on entries[idx].
func (l *Linker) Toggle(entries []*entry.Entry, idx int) ([]*entry.Entry, Result, error) {
	if idx < 0 || idx >= len(entries) {
		return entries, Result{}, fmt.Errorf("linking: index %d out of range", idx)
	}
	if l.pending != nil {
		return l.togglePending(entries, idx)
	}

	e := entries[idx]
	day := e.Day()
	if !e.Linked() {
		out, p := Begin(entries, day, idx)
		l.pending = &p
		if p.AwaitingChoice() {
			return out, Result{Outcome: ChoiceRequired, Choices: p.Choices}, nil
		}
		return out, Result{Outcome: Started, GroupID: p.GroupID}, nil
	}

	id := e.LinkID
	if len(Members(entries, day, id)) == 2 {
		return entries, Result{Outcome: ConfirmDissolve, GroupID: id}, nil
	}
	out, _ := Detach(entries, idx)
	return out, Result{Outcome: Removed, GroupID: id}, nil
}

func (l *Linker) togglePending(entries []*entry.Entry, idx int) ([]*entry.Entry, Result, error) {
	p := *l.pending
	if idx == p.Origin {
		l.pending = nil
		return clearPending(entries, p), Result{Outcome: Cancelled, GroupID: p.GroupID}, nil
	}
	if entries[idx].Day() != p.Day {
		l.pending = nil
		return clearPending(entries, p), Result{Outcome: Aborted, GroupID: p.GroupID}, nil
	}
	if p.AwaitingChoice() {
		return entries, Result{Outcome: ChoiceRequired, Choices: p.Choices}, ErrChoiceRequired
	}

	out := entries
	if target := entries[idx]; target.Linked() && target.LinkID != p.GroupID {
		out, _ = Detach(out, idx)
	}
	out = relink(out, map[int]int{idx: p.GroupID})
	l.pending = nil
	return out, Result{Outcome: Linked, GroupID: p.GroupID}, nil
}
