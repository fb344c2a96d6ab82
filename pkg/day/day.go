// Package day buckets an already ordered entry list by calendar day.
package day

import (
	"tableflip.dev/diary/pkg/entry"
)

// Bucket is one day of entries in the order they arrived.
type Bucket struct {
	Key     string
	Entries []*entry.Entry
}

// Key returns the day key of an entry; a date without a space is its own key.
func Key(e *entry.Entry) string {
	return entry.DayKey(e.Date)
}

// Group buckets entries by day. Buckets appear in order of each day's first
// entry and nothing is re-sorted.
func Group(entries []*entry.Entry) []Bucket {
	var buckets []Bucket
	index := make(map[string]int)
	for _, e := range entries {
		k := Key(e)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, Bucket{Key: k})
		}
		buckets[i].Entries = append(buckets[i].Entries, e)
	}
	return buckets
}

// Lookup returns the bucket for key.
func Lookup(buckets []Bucket, key string) (Bucket, bool) {
	for _, b := range buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}
