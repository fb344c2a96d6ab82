package linking

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/diary/pkg/entry"
)

func mk(id, date string, link int) *entry.Entry {
	return &entry.Entry{ID: id, Date: date, LinkID: link}
}

func links(entries []*entry.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.LinkID
	}
	return out
}

func TestNextFreeID(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "01.01.2024 08:00", 0),
		mk("b", "01.01.2024 09:00", 0),
		mk("c", "02.01.2024 09:00", 1),
	}
	if got := NextFreeID(entries, "01.01.2024"); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	entries[0].LinkID = 1
	entries[1].LinkID = 1
	if got := NextFreeID(entries, "01.01.2024"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}

	gaps := []*entry.Entry{
		mk("a", "01.01.2024 08:00", 1),
		mk("b", "01.01.2024 09:00", 3),
	}
	if got := NextFreeID(gaps, "01.01.2024"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestMultiMemberGroups(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "01.01.2024 08:00", 4),
		mk("b", "01.01.2024 09:00", 4),
		mk("c", "01.01.2024 10:00", 2),
		mk("d", "01.01.2024 11:00", 2),
		mk("e", "01.01.2024 12:00", 2),
		mk("f", "01.01.2024 13:00", 7),
		mk("g", "02.01.2024 13:00", 7),
	}
	if diff := cmp.Diff([]int{2, 4}, MultiMemberGroups(entries, "01.01.2024")); diff != "" {
		t.Fatalf("unexpected groups (-want +got):\n%s", diff)
	}
	assert.Empty(t, MultiMemberGroups(entries, "03.01.2024"))
}

func TestDissolveTwoMembers(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "01.01.2024 08:00", 3),
		mk("b", "01.01.2024 09:00", 3),
		mk("c", "02.01.2024 09:00", 3),
	}
	out, cleared := Dissolve(entries, 1)
	assert.Equal(t, []int{0, 0, 3}, links(out))
	assert.ElementsMatch(t, []int{0, 1}, cleared)
	assert.Equal(t, []int{3, 3, 3}, links(entries), "input must not change")
}

func TestDetach(t *testing.T) {
	pair := []*entry.Entry{
		mk("a", "01.01.2024 08:00", 1),
		mk("b", "01.01.2024 09:00", 1),
	}
	out, cleared := Detach(pair, 0)
	assert.Equal(t, []int{0, 0}, links(out))
	assert.Equal(t, []int{0, 1}, cleared)

	trio := []*entry.Entry{
		mk("a", "01.01.2024 08:00", 1),
		mk("b", "01.01.2024 09:00", 1),
		mk("c", "01.01.2024 10:00", 1),
	}
	out, cleared = Detach(trio, 1)
	assert.Equal(t, []int{1, 0, 1}, links(out))
	assert.Equal(t, []int{1}, cleared)

	out, cleared = Detach(trio, 7)
	assert.Equal(t, trio, out)
	assert.Nil(t, cleared)
}

func TestToggleLinksTwoEntries(t *testing.T) {
	entries := []*entry.Entry{
		mk("symptom", "01.01.2024 10:00", 0),
		mk("meal", "01.01.2024 08:00", 0),
	}
	l := Resume(nil)
	require.Equal(t, Idle, l.Phase())

	out, res, err := l.Toggle(entries, 1)
	require.NoError(t, err)
	assert.Equal(t, Started, res.Outcome)
	assert.Equal(t, 1, res.GroupID)
	assert.Equal(t, Pending, l.Phase())
	assert.Equal(t, []int{0, 1}, links(out))

	out, res, err = l.Toggle(out, 0)
	require.NoError(t, err)
	assert.Equal(t, Linked, res.Outcome)
	assert.Equal(t, Idle, l.Phase())
	assert.Equal(t, []int{1, 1}, links(out))
	assert.Equal(t, []int{0, 0}, links(entries), "input must not change")
}

func TestToggleOriginAgainCancels(t *testing.T) {
	entries := []*entry.Entry{mk("a", "01.01.2024 10:00", 0)}
	l := Resume(nil)
	out, _, err := l.Toggle(entries, 0)
	require.NoError(t, err)
	out, res, err := l.Toggle(out, 0)
	require.NoError(t, err)
	assert.Equal(t, Cancelled, res.Outcome)
	assert.Equal(t, Idle, l.Phase())
	assert.Equal(t, []int{0}, links(out))
}

func TestToggleOtherDayAborts(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "02.01.2024 10:00", 0),
		mk("b", "01.01.2024 10:00", 0),
	}
	l := Resume(nil)
	out, _, err := l.Toggle(entries, 0)
	require.NoError(t, err)
	out, res, err := l.Toggle(out, 1)
	require.NoError(t, err)
	assert.Equal(t, Aborted, res.Outcome)
	assert.Equal(t, Idle, l.Phase())
	assert.Equal(t, []int{0, 0}, links(out))
}

func TestToggleGroupOfTwoAsksToDissolve(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "01.01.2024 10:00", 3),
		mk("b", "01.01.2024 09:00", 3),
	}
	l := Resume(nil)
	out, res, err := l.Toggle(entries, 0)
	require.NoError(t, err)
	assert.Equal(t, ConfirmDissolve, res.Outcome)
	assert.Equal(t, 3, res.GroupID)
	assert.Equal(t, Idle, l.Phase())
	assert.Equal(t, []int{3, 3}, links(out), "nothing changes before confirmation")

	out, _ = Dissolve(out, 0)
	assert.Equal(t, []int{0, 0}, links(out))
}

func TestToggleLargerGroupRemovesOnlyClicked(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "01.01.2024 10:00", 2),
		mk("b", "01.01.2024 09:00", 2),
		mk("c", "01.01.2024 08:00", 2),
	}
	l := Resume(nil)
	out, res, err := l.Toggle(entries, 1)
	require.NoError(t, err)
	assert.Equal(t, Removed, res.Outcome)
	assert.Equal(t, []int{2, 0, 2}, links(out))
}

func TestToggleOffersExistingGroups(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "01.01.2024 12:00", 1),
		mk("b", "01.01.2024 11:00", 1),
		mk("c", "01.01.2024 10:00", 0),
		mk("d", "01.01.2024 09:00", 0),
	}

	t.Run("join", func(t *testing.T) {
		l := Resume(nil)
		out, res, err := l.Toggle(entries, 2)
		require.NoError(t, err)
		assert.Equal(t, ChoiceRequired, res.Outcome)
		assert.Equal(t, []int{1}, res.Choices)
		assert.Equal(t, []int{1, 1, 0, 0}, links(out))

		_, _, err = l.Toggle(out, 3)
		assert.ErrorIs(t, err, ErrChoiceRequired)

		_, _, err = l.Choose(out, Join(9))
		assert.ErrorIs(t, err, ErrUnknownGroup)
		assert.Equal(t, Pending, l.Phase())

		out, res, err = l.Choose(out, Join(1))
		require.NoError(t, err)
		assert.Equal(t, Linked, res.Outcome)
		assert.Equal(t, Idle, l.Phase())
		assert.Equal(t, []int{1, 1, 1, 0}, links(out))
	})

	t.Run("new group", func(t *testing.T) {
		l := Resume(nil)
		out, _, err := l.Toggle(entries, 2)
		require.NoError(t, err)
		out, res, err := l.Choose(out, NewGroup)
		require.NoError(t, err)
		assert.Equal(t, Started, res.Outcome)
		assert.Equal(t, 2, res.GroupID)
		out, res, err = l.Toggle(out, 3)
		require.NoError(t, err)
		assert.Equal(t, Linked, res.Outcome)
		assert.Equal(t, []int{1, 1, 2, 2}, links(out))
	})

	t.Run("cancel", func(t *testing.T) {
		l := Resume(nil)
		out, _, err := l.Toggle(entries, 2)
		require.NoError(t, err)
		out, _, err = l.Choose(out, NewGroup)
		require.NoError(t, err)
		out, res, err := l.Choose(out, Cancel)
		require.NoError(t, err)
		assert.Equal(t, Cancelled, res.Outcome)
		assert.Equal(t, Idle, l.Phase())
		assert.Equal(t, []int{1, 1, 0, 0}, links(out))
	})
}

func TestToggleTargetLeavesOldPair(t *testing.T) {
	entries := []*entry.Entry{
		mk("a", "01.01.2024 12:00", 0),
		mk("b", "01.01.2024 11:00", 5),
		mk("c", "01.01.2024 10:00", 5),
	}
	p := PendingLink{Origin: 0, OriginID: "a", Day: "01.01.2024", GroupID: 1}
	entries[0].LinkID = 1
	l := Resume(&p)
	out, res, err := l.Toggle(entries, 1)
	require.NoError(t, err)
	assert.Equal(t, Linked, res.Outcome)
	assert.Equal(t, []int{1, 1, 0}, links(out))
}

func TestChooseWithoutPending(t *testing.T) {
	l := Resume(nil)
	_, _, err := l.Choose(nil, NewGroup)
	if !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestRunsSplitNonAdjacent(t *testing.T) {
	a := mk("A", "01.01.2024 12:00", 1)
	b := mk("B", "01.01.2024 11:00", 1)
	c := mk("C", "01.01.2024 10:00", 0)
	d := mk("D", "01.01.2024 09:00", 1)

	runs := Runs([]*entry.Entry{a, b, c, d})
	require.Len(t, runs, 3)
	assert.Equal(t, []*entry.Entry{a, b}, runs[0].Entries)
	assert.True(t, runs[0].Connected())
	assert.Equal(t, []*entry.Entry{c}, runs[1].Entries)
	assert.False(t, runs[1].Connected())
	assert.Equal(t, []*entry.Entry{d}, runs[2].Entries)
	assert.False(t, runs[2].Connected())
}

func TestRunsUnlinkedNeverMerge(t *testing.T) {
	runs := Runs([]*entry.Entry{
		mk("a", "01.01.2024 12:00", 0),
		mk("b", "01.01.2024 11:00", 0),
	})
	assert.Len(t, runs, 2)
	assert.Empty(t, Runs(nil))
}
