package linking

import (
	"errors"
	"fmt"
	"slices"

	"tableflip.dev/diary/pkg/entry"
)

var (
	// ErrChoiceRequired is returned when a pending link still waits for the
	// user to pick an existing group or a new one.
	ErrChoiceRequired = errors.New("linking: choose an existing group or a new one first")
	// ErrUnknownGroup is returned when joining a group that was not offered.
	ErrUnknownGroup = errors.New("linking: group not offered")
	// ErrNotPending is returned by Choose when no link is pending.
	ErrNotPending = errors.New("linking: no pending link")
)

// Phase of the link state machine.
type Phase int

const (
	Idle Phase = iota
	Pending
)

func (p Phase) String() string {
	if p == Pending {
		return "pending"
	}
	return "idle"
}

// PendingLink is an unfinished link. While GroupID is 0 the user has to pick
// one of Choices or a new group; otherwise the origin already wears GroupID
// and waits for a partner.
type PendingLink struct {
	Origin   int    `json:"-"`
	OriginID string `json:"originId"`
	Day      string `json:"day"`
	GroupID  int    `json:"groupId,omitempty"`
	Choices  []int  `json:"choices,omitempty"`
}

// AwaitingChoice reports whether the user still has to pick a group.
func (p PendingLink) AwaitingChoice() bool {
	return p.GroupID == 0
}

// Begin starts a link from entries[origin]. Without existing multi-member
// groups on day the origin gets a fresh id. Otherwise nothing changes and the
// returned PendingLink offers the existing groups as Choices.
func Begin(entries []*entry.Entry, day string, origin int) ([]*entry.Entry, PendingLink) {
	p := PendingLink{Origin: origin, OriginID: entries[origin].ID, Day: day}
	if groups := MultiMemberGroups(entries, day); len(groups) > 0 {
		p.Choices = groups
		return entries, p
	}
	p.GroupID = NextFreeID(entries, day)
	return relink(entries, map[int]int{origin: p.GroupID}), p
}

// Choice answers a pending link that awaits a choice.
type Choice struct {
	Group  int
	Cancel bool
}

var (
	// NewGroup starts a brand-new group for the origin.
	NewGroup = Choice{}
	// Cancel abandons the pending link.
	Cancel = Choice{Cancel: true}
)

// Join picks the existing group id.
func Join(id int) Choice {
	return Choice{Group: id}
}

// Choose resolves a pending link. Joining an existing group finishes the
// link; a new group leaves it pending until a partner is picked; cancelling
// clears the origin's transient id. A nil PendingLink means the machine is
// idle again.
func Choose(entries []*entry.Entry, p PendingLink, c Choice) ([]*entry.Entry, *PendingLink, error) {
	switch {
	case c.Cancel:
		return clearPending(entries, p), nil, nil
	case c.Group > 0:
		if !slices.Contains(p.Choices, c.Group) {
			return entries, &p, fmt.Errorf("%w: %d", ErrUnknownGroup, c.Group)
		}
		return relink(entries, map[int]int{p.Origin: c.Group}), nil, nil
	default:
		if !p.AwaitingChoice() {
			return entries, &p, nil
		}
		next := p
		next.GroupID = NextFreeID(entries, p.Day)
		next.Choices = nil
		return relink(entries, map[int]int{p.Origin: next.GroupID}), &next, nil
	}
}

func clearPending(entries []*entry.Entry, p PendingLink) []*entry.Entry {
	if p.GroupID == 0 || p.Origin < 0 || p.Origin >= len(entries) {
		return entries
	}
	if entries[p.Origin].LinkID != p.GroupID {
		return entries
	}
	return relink(entries, map[int]int{p.Origin: 0})
}
