package linking

import "tableflip.dev/diary/pkg/entry"

// Run is a stretch of a day's entries drawn as one block. Entries of a run
// with two or more members share LinkID and are connected.
type Run struct {
	LinkID  int
	Entries []*entry.Entry
}

// Connected reports whether the run draws a connector.
func (r Run) Connected() bool {
	return r.LinkID > 0 && len(r.Entries) >= 2
}

// Runs splits a day's entries, in display order, into runs. Only adjacent
// entries with the same link id merge: A(1) B(1) C D(1) gives [A B] [C] [D].
func Runs(dayEntries []*entry.Entry) []Run {
	var runs []Run
	for _, e := range dayEntries {
		if n := len(runs); n > 0 && e.Linked() && runs[n-1].LinkID == e.LinkID {
			runs[n-1].Entries = append(runs[n-1].Entries, e)
			continue
		}
		runs = append(runs, Run{LinkID: e.LinkID, Entries: []*entry.Entry{e}})
	}
	return runs
}
