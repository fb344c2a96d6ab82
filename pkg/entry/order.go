package entry

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Order selects a display order.
type Order string

const (
	OrderChronological Order = "chrono"
	OrderCategory      Order = "category"
)

// ParseOrder accepts "chrono" (default when empty) or "category".
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "", OrderChronological, "chronological":
		return OrderChronological, nil
	case OrderCategory:
		return OrderCategory, nil
	default:
		return "", fmt.Errorf("unknown order %q (expected chrono or category)", s)
	}
}

// Chronological puts newer dates first and, on equal dates, the later
// created entry first.
func Chronological(a, b *Entry) int {
	ta := ParseDisplay(a.Date).UnixMilli()
	tb := ParseDisplay(b.Date).UnixMilli()
	if c := cmp.Compare(tb, ta); c != 0 {
		return c
	}
	return cmp.Compare(b.CreatedAt, a.CreatedAt)
}

// ByCategory orders by tag rank, then chronologically.
func ByCategory(a, b *Entry) int {
	if c := cmp.Compare(a.Tag.Rank(), b.Tag.Rank()); c != 0 {
		return c
	}
	return Chronological(a, b)
}

// Comparator returns the comparator for o.
func (o Order) Comparator() func(a, b *Entry) int {
	if o == OrderCategory {
		return ByCategory
	}
	return Chronological
}

// Sort returns a stably sorted copy of entries; the input is not modified.
func Sort(entries []*Entry, o Order) []*Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, o.Comparator())
	return out
}
