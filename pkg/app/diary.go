// Package app holds the authoritative in-memory diary and applies every
// mutation to it. Persistence is injected; a failed save never undoes a
// mutation and is reported as a Notice instead.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
	"tableflip.dev/diary/pkg/store"
)

var (
	ErrNotFound  = errors.New("app: entry not found")
	ErrAmbiguous = errors.New("app: entry reference is ambiguous")
	ErrCrossDay  = errors.New("app: entries are on different days")
	ErrNoPending = errors.New("app: no link is pending")
)

// Notice is a non-fatal failure the user should see, typically a save that
// hit the storage quota.
type Notice struct {
	Op  string
	Err error
}

func (n Notice) String() string {
	if errors.Is(n.Err, store.ErrQuotaExceeded) {
		return fmt.Sprintf("%s: storage is full, changes are kept for this session only", n.Op)
	}
	return fmt.Sprintf("%s: %v", n.Op, n.Err)
}

// Diary owns the chronologically sorted entry list. The list is only ever
// replaced as a whole; entries handed out are never mutated afterwards.
type Diary struct {
	store store.Persistence
	log   *zap.Logger
	// Now is the clock used for new entries.
	Now func() time.Time

	entries []*entry.Entry
	pending *linking.PendingLink
	prefs   store.Preferences
	notices []Notice
}

// Open loads the diary from p. A nil logger is replaced by a no-op logger.
func Open(ctx context.Context, p store.Persistence, log *zap.Logger) (*Diary, error) {
	if p == nil {
		return nil, errors.New("app: no persistence configured")
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Diary{store: p, log: log.Named("app"), Now: time.Now}
	if err := d.Reload(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Reload replaces the in-memory state with what is stored.
func (d *Diary) Reload(ctx context.Context) error {
	list, err := d.store.Entries(ctx)
	if err != nil {
		return err
	}
	prefs, err := d.store.Preferences(ctx)
	if err != nil {
		return err
	}
	pending, err := d.store.PendingLink(ctx)
	if err != nil {
		d.log.Warn("dropping unreadable pending link", zap.Error(err))
		pending = nil
	}
	d.entries = entry.Sort(list, entry.OrderChronological)
	d.prefs = prefs
	d.pending = pending
	if d.pending != nil && d.originIndex() < 0 {
		d.log.Info("pending link origin is gone", zap.String("id", d.pending.OriginID))
		d.pending = nil
		d.persistPending(ctx)
	}
	return nil
}

// Entries returns the current chronologically sorted list. Callers must not
// modify it.
func (d *Diary) Entries() []*entry.Entry {
	return d.entries
}

// Notices returns and clears the pending notices.
func (d *Diary) Notices() []Notice {
	out := d.notices
	d.notices = nil
	return out
}

// Watch forwards store change events.
func (d *Diary) Watch(ctx context.Context) (<-chan store.Event, error) {
	return d.store.Watch(ctx)
}

func (d *Diary) notify(op string, err error) {
	d.log.Warn("save failed", zap.String("op", op), zap.Error(err))
	d.notices = append(d.notices, Notice{Op: op, Err: err})
}

// commit makes next the authoritative list and tries to persist it.
func (d *Diary) commit(ctx context.Context, op string, next []*entry.Entry) {
	d.entries = entry.Sort(next, entry.OrderChronological)
	if err := d.store.SaveEntries(ctx, d.entries); err != nil {
		d.notify(op, err)
	}
}

// Find resolves an id or a unique id prefix to its index and entry.
func (d *Diary) Find(ref string) (int, *entry.Entry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, nil, ErrNotFound
	}
	for i, e := range d.entries {
		if e.ID == ref {
			return i, e, nil
		}
	}
	found := -1
	for i, e := range d.entries {
		if !strings.HasPrefix(e.ID, ref) {
			continue
		}
		if found >= 0 {
			return -1, nil, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
		}
		found = i
	}
	if found < 0 {
		return -1, nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return found, d.entries[found], nil
}
