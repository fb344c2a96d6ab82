package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
	"tableflip.dev/diary/pkg/store"
)

type memoryPersistence struct {
	mu      sync.Mutex
	entries []*entry.Entry
	draft   *entry.Draft
	prefs   store.Preferences
	pending *linking.PendingLink
	// saveErr fails every write when set.
	saveErr error
	saves   int
}

func newMemoryPersistence(entries ...*entry.Entry) *memoryPersistence {
	return &memoryPersistence{entries: entry.CloneAll(entries), prefs: store.Preferences{Theme: store.ThemeLight}}
}

func (m *memoryPersistence) Entries(context.Context) ([]*entry.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return entry.CloneAll(m.entries), nil
}

func (m *memoryPersistence) SaveEntries(_ context.Context, entries []*entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.entries = entry.CloneAll(entries)
	return nil
}

func (m *memoryPersistence) Draft(context.Context) (*entry.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return nil, nil
	}
	cp := *m.draft
	return &cp, nil
}

func (m *memoryPersistence) SaveDraft(_ context.Context, d *entry.Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if d.Empty() {
		m.draft = nil
		return nil
	}
	cp := *d
	m.draft = &cp
	return nil
}

func (m *memoryPersistence) Preferences(context.Context) (store.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs, nil
}

func (m *memoryPersistence) SavePreferences(_ context.Context, p store.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.prefs = p
	return nil
}

func (m *memoryPersistence) PendingLink(context.Context) (*linking.PendingLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return nil, nil
	}
	cp := *m.pending
	return &cp, nil
}

func (m *memoryPersistence) SavePendingLink(_ context.Context, p *linking.PendingLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	if p == nil {
		m.pending = nil
		return nil
	}
	cp := *p
	m.pending = &cp
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, errors.New("watch not supported")
}

var base = time.Date(2024, time.May, 2, 8, 0, 0, 0, time.Local)

// mk builds an entry with a readable id dated at base+offset.
func mk(id, food string, offset time.Duration, link int) *entry.Entry {
	e := entry.New(food, nil, base.Add(offset))
	e.ID = id
	e.LinkID = link
	return e
}

func open(t *testing.T, p store.Persistence) *Diary {
	t.Helper()
	d, err := Open(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	d.Now = func() time.Time { return base.Add(12 * time.Hour) }
	return d
}

func ids(entries []*entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func linkOf(t *testing.T, d *Diary, id string) int {
	t.Helper()
	_, e, err := d.Find(id)
	require.NoError(t, err)
	return e.LinkID
}

func TestOpenSortsChronologically(t *testing.T) {
	mp := newMemoryPersistence(
		mk("old", "Tee", -24*time.Hour, 0),
		mk("new", "Brot", time.Hour, 0),
		mk("mid", "Kaffee", 0, 0),
	)
	d := open(t, mp)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(d.Entries()))
}

func TestAdd(t *testing.T) {
	mp := newMemoryPersistence(mk("a", "Tee", 0, 0))
	d := open(t, mp)

	e, err := d.Add(context.Background(), &entry.Draft{Food: "Pizza", SymptomInput: "Bauchschmerzen", SymptomTime: 30, SymptomStrength: 2})
	require.NoError(t, err)
	assert.Equal(t, entry.TagSymptom, e.Tag)
	assert.Equal(t, "02.05.2024 20:00", e.Date)
	assert.Equal(t, e.ID, d.Entries()[0].ID)
	assert.Len(t, mp.entries, 2)

	_, err = d.Add(context.Background(), &entry.Draft{Food: "  "})
	assert.ErrorIs(t, err, entry.ErrInvalid)
	assert.Len(t, d.Entries(), 2)
}

func TestAddKeepsCreatedAtUnique(t *testing.T) {
	ctx := context.Background()
	// "late" was created after the frozen clock reading.
	mp := newMemoryPersistence(mk("late", "Tee", 13*time.Hour, 0))
	d := open(t, mp)

	first, err := d.Add(ctx, &entry.Draft{Food: "Reis"})
	require.NoError(t, err)
	second, err := d.Add(ctx, &entry.Draft{Food: "Brot"})
	require.NoError(t, err)

	assert.Equal(t, first.Date, second.Date)
	assert.Greater(t, first.CreatedAt, base.Add(13*time.Hour).UnixMilli())
	assert.Greater(t, second.CreatedAt, first.CreatedAt)
	assert.Equal(t, "late", d.Entries()[0].ID, "a later date still sorts first")
	assert.Equal(t, second.ID, d.Entries()[1].ID)
}

func TestSaveFailureKeepsMemory(t *testing.T) {
	mp := newMemoryPersistence(mk("a", "Tee", 0, 0))
	d := open(t, mp)
	mp.saveErr = fmt.Errorf("%w: 6000000 of 5242880 bytes", store.ErrQuotaExceeded)

	e, err := d.Add(context.Background(), &entry.Draft{Food: "Reis"})
	require.NoError(t, err)
	assert.Len(t, d.Entries(), 2, "in-memory list stays authoritative")
	assert.Len(t, mp.entries, 1)

	_, err = d.SetComment(context.Background(), e.ID, "mit Soße")
	require.NoError(t, err)

	notices := d.Notices()
	require.Len(t, notices, 2)
	assert.ErrorIs(t, notices[0].Err, store.ErrQuotaExceeded)
	assert.Contains(t, notices[0].String(), "storage is full")
	assert.Empty(t, d.Notices(), "notices are drained")
}

func TestFind(t *testing.T) {
	d := open(t, newMemoryPersistence(mk("abc1", "Tee", 0, 0), mk("abc2", "Brot", time.Hour, 0), mk("xyz", "Reis", 2*time.Hour, 0)))

	_, e, err := d.Find("xy")
	require.NoError(t, err)
	assert.Equal(t, "xyz", e.ID)

	_, e, err = d.Find("abc1")
	require.NoError(t, err)
	assert.Equal(t, "abc1", e.ID)

	_, _, err = d.Find("abc")
	assert.ErrorIs(t, err, ErrAmbiguous)
	_, _, err = d.Find("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = d.Find("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEditsRetag(t *testing.T) {
	ctx := context.Background()
	d := open(t, newMemoryPersistence(mk("a", "Pizza", 0, 0)))

	e, err := d.AddSymptom(ctx, "a", entry.Symptom{Text: "Blähungen", Time: 20, Strength: 1})
	require.NoError(t, err)
	assert.Equal(t, entry.TagSymptom, e.Tag)

	_, err = d.AddSymptom(ctx, "a", entry.Symptom{Text: "Krampf", Strength: 5})
	assert.ErrorIs(t, err, entry.ErrInvalid)

	e, err = d.RemoveSymptom(ctx, "a", 0)
	require.NoError(t, err)
	assert.Equal(t, entry.TagMeal, e.Tag)

	e, err = d.SetTag(ctx, "a", entry.TagSupplement)
	require.NoError(t, err)
	assert.True(t, e.TagManual)

	e, err = d.SetFood(ctx, "a", "Stuhl: normal")
	require.NoError(t, err)
	assert.Equal(t, entry.TagSupplement, e.Tag, "manual tag is kept")

	e, err = d.ResetTag(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, entry.TagStool, e.Tag)

	_, err = d.SetFood(ctx, "a", "")
	assert.ErrorIs(t, err, entry.ErrInvalid, "no food and no symptoms")

	e, err = d.SetPortion(ctx, "a", &entry.Portion{Size: entry.SizeMedium})
	require.NoError(t, err)
	assert.Equal(t, "M", e.Portion.String())

	e, err = d.AddImages(ctx, "a", "data:image/jpeg;base64,AA", "data:image/jpeg;base64,BB")
	require.NoError(t, err)
	e, err = d.RemoveImage(ctx, "a", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"data:image/jpeg;base64,BB"}, e.Images)
}

func TestSetDateDetachesLink(t *testing.T) {
	ctx := context.Background()
	d := open(t, newMemoryPersistence(mk("a", "Tee", 0, 3), mk("b", "Brot", time.Hour, 3)))

	e, err := d.SetDate(ctx, "a", "2024-05-01T07:30")
	require.NoError(t, err)
	assert.Equal(t, "01.05.2024 07:30", e.Date)
	assert.Zero(t, linkOf(t, d, "a"))
	assert.Zero(t, linkOf(t, d, "b"), "a pair is dissolved")

	_, err = d.SetDate(ctx, "a", "31.13.2024 10:00")
	assert.ErrorIs(t, err, entry.ErrInvalid)

	// Same day, different time keeps the link.
	d = open(t, newMemoryPersistence(mk("a", "Tee", 0, 3), mk("b", "Brot", time.Hour, 3)))
	_, err = d.SetDate(ctx, "a", "02.05.2024 10:15")
	require.NoError(t, err)
	assert.Equal(t, 3, linkOf(t, d, "a"))
}

func TestSetDateForgetsPendingLink(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(
		mk("a", "Tee", 0, 1), mk("b", "Brot", time.Hour, 1),
		mk("c", "Reis", 2*time.Hour, 0),
	)
	d := open(t, mp)

	res, err := d.ToggleLink(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, linking.ChoiceRequired, res.Outcome)

	_, err = d.SetDate(ctx, "c", "01.05.2024 10:00")
	require.NoError(t, err)
	_, ok := d.Pending()
	assert.False(t, ok)
	assert.Nil(t, mp.pending)

	// The group on the old day is untouched.
	assert.Equal(t, 1, linkOf(t, d, "a"))
	assert.Equal(t, 1, linkOf(t, d, "b"))
}

func TestDeleteDissolvesPair(t *testing.T) {
	ctx := context.Background()
	d := open(t, newMemoryPersistence(mk("a", "Tee", 0, 1), mk("b", "Brot", time.Hour, 1), mk("c", "Reis", 2*time.Hour, 0)))

	_, err := d.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, ids(d.Entries()))
	assert.Zero(t, linkOf(t, d, "b"))

	_, err = d.Delete(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLinkAcrossSessions(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(mk("a", "Tee", 0, 0), mk("b", "Brot", time.Hour, 0), mk("y", "Reis", -24*time.Hour, 0))

	res, err := open(t, mp).ToggleLink(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, linking.Started, res.Outcome)
	assert.Equal(t, 1, res.GroupID)
	require.NotNil(t, mp.pending)
	assert.Equal(t, "a", mp.pending.OriginID)

	d := open(t, mp)
	p, ok := d.Pending()
	require.True(t, ok)
	assert.Equal(t, 1, p.GroupID)

	res, err = d.ToggleLink(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, linking.Linked, res.Outcome)
	assert.Nil(t, mp.pending)
	assert.Equal(t, 1, linkOf(t, d, "a"))
	assert.Equal(t, 1, linkOf(t, d, "b"))

	// A group of two asks for confirmation and changes nothing.
	res, err = d.ToggleLink(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, linking.ConfirmDissolve, res.Outcome)
	assert.Equal(t, 1, linkOf(t, d, "b"))

	members, err := d.DissolveLink(ctx, "b")
	require.NoError(t, err)
	assert.Len(t, members, 2)
	assert.Zero(t, linkOf(t, d, "a"))
	assert.Zero(t, linkOf(t, d, "b"))
}

func TestToggleLinkOtherDayAborts(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(mk("a", "Tee", 0, 0), mk("y", "Reis", -24*time.Hour, 0))
	d := open(t, mp)

	_, err := d.ToggleLink(ctx, "a")
	require.NoError(t, err)
	res, err := d.ToggleLink(ctx, "y")
	require.NoError(t, err)
	assert.Equal(t, linking.Aborted, res.Outcome)
	assert.Zero(t, linkOf(t, d, "a"))
	assert.Zero(t, linkOf(t, d, "y"))
	_, ok := d.Pending()
	assert.False(t, ok)
}

func TestChooseLink(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence(
		mk("a", "Tee", 0, 1), mk("b", "Brot", time.Hour, 1),
		mk("c", "Reis", 2*time.Hour, 0),
	)
	d := open(t, mp)

	_, err := d.ChooseLink(ctx, linking.NewGroup)
	assert.ErrorIs(t, err, ErrNoPending)

	res, err := d.ToggleLink(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, linking.ChoiceRequired, res.Outcome)
	assert.Equal(t, []int{1}, res.Choices)

	_, err = d.ToggleLink(ctx, "a")
	assert.ErrorIs(t, err, linking.ErrChoiceRequired)

	d = open(t, mp)
	res, err = d.ChooseLink(ctx, linking.Join(1))
	require.NoError(t, err)
	assert.Equal(t, linking.Linked, res.Outcome)
	assert.Equal(t, 1, linkOf(t, d, "c"))
	_, ok := d.Pending()
	assert.False(t, ok)
}

func TestCancelLink(t *testing.T) {
	ctx := context.Background()
	d := open(t, newMemoryPersistence(mk("a", "Tee", 0, 0), mk("b", "Brot", time.Hour, 0)))

	_, err := d.CancelLink(ctx)
	assert.ErrorIs(t, err, ErrNoPending)

	_, err = d.ToggleLink(ctx, "a")
	require.NoError(t, err)
	res, err := d.CancelLink(ctx)
	require.NoError(t, err)
	assert.Equal(t, linking.Cancelled, res.Outcome)
	assert.Zero(t, linkOf(t, d, "a"))
}

func TestLinkPair(t *testing.T) {
	ctx := context.Background()
	d := open(t, newMemoryPersistence(
		mk("a", "Tee", 0, 0), mk("b", "Brot", time.Hour, 0), mk("c", "Reis", 2*time.Hour, 0),
		mk("y", "Suppe", -24*time.Hour, 0),
	))

	_, err := d.Link(ctx, "a", "y", linking.NewGroup)
	assert.ErrorIs(t, err, ErrCrossDay)

	res, err := d.Link(ctx, "a", "b", linking.NewGroup)
	require.NoError(t, err)
	assert.Equal(t, linking.Linked, res.Outcome)
	assert.Equal(t, 1, linkOf(t, d, "a"))
	assert.Equal(t, 1, linkOf(t, d, "b"))

	res, err = d.Link(ctx, "c", "a", linking.Join(1))
	require.NoError(t, err)
	assert.Equal(t, linking.Linked, res.Outcome)
	assert.Equal(t, 1, linkOf(t, d, "c"))
	assert.Equal(t, 1, linkOf(t, d, "a"))
	assert.Equal(t, 1, linkOf(t, d, "b"))
}

func TestVisible(t *testing.T) {
	d := open(t, newMemoryPersistence(
		mk("e1", "Müsli", 0, 1),
		mk("e2", "Kaffee", time.Hour, 1),
		mk("e3", "Pizza", -12*time.Hour, 0),
		mk("e4", "Kaffee", -11*time.Hour, 0),
	))

	v := d.Visible(Query{})
	require.Len(t, v.Days, 2)
	assert.Equal(t, "02.05.2024", v.Days[0].Key)
	assert.Equal(t, []string{"e2", "e1"}, ids(v.Days[0].Entries))
	require.Len(t, v.Days[0].Runs, 1)
	assert.True(t, v.Days[0].Runs[0].Connected())
	assert.Equal(t, "01.05.2024", v.Days[1].Key)
	assert.False(t, v.More())

	v = d.Visible(Query{Search: "kaffee"})
	assert.Equal(t, 2, v.Matched)
	assert.Len(t, v.Days, 2)

	v = d.Visible(Query{Limit: 3})
	assert.Equal(t, 3, v.Shown)
	assert.Equal(t, 4, v.Matched)
	assert.True(t, v.More())
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	d := open(t, newMemoryPersistence(mk("a", "Tee", 0, 1), mk("b", "Brot", time.Hour, 1)))

	incoming := []*entry.Entry{
		mk("a", "Tee", 0, 1),
		mk("x", "Reis", 2*time.Hour, 1),
		mk("z", "Suppe", 3*time.Hour, 1),
	}
	res := d.Import(ctx, incoming, Merge)
	assert.Equal(t, ImportResult{Added: 2, Skipped: 1}, res)
	assert.Equal(t, 2, linkOf(t, d, "x"), "imported group is moved off the existing id")
	assert.Equal(t, 2, linkOf(t, d, "z"))
	assert.Equal(t, 1, linkOf(t, d, "a"))

	res = d.Import(ctx, incoming[:1], Replace)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, []string{"a"}, ids(d.Entries()))
	assert.Equal(t, "1 added, 0 skipped", res.String())
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	d := open(t, mp)

	d.AddFavorite(ctx, FavoriteFoods, "Reis")
	d.AddFavorite(ctx, FavoriteFoods, " Apfelmus ")
	d.AddFavorite(ctx, FavoriteFoods, "Reis")
	d.AddFavorite(ctx, FavoriteFoods, "")
	d.AddFavorite(ctx, FavoriteSymptoms, "Übelkeit")
	assert.Equal(t, []string{"Apfelmus", "Reis"}, d.Favorites(FavoriteFoods))
	assert.Equal(t, []string{"Apfelmus", "Reis"}, mp.prefs.FavoriteFoods)
	assert.Equal(t, []string{"Übelkeit"}, d.Favorites(FavoriteSymptoms))

	assert.Equal(t, []string{"Apfelmus"}, d.Suggest(FavoriteFoods, "Apm"))
	assert.Equal(t, []string{"Apfelmus", "Reis"}, d.Suggest(FavoriteFoods, ""))

	assert.True(t, d.RemoveFavorite(ctx, FavoriteFoods, "Reis"))
	assert.False(t, d.RemoveFavorite(ctx, FavoriteFoods, "Reis"))
	assert.Equal(t, []string{"Apfelmus"}, d.Favorites(FavoriteFoods))

	kind, err := ParseFavorites("Symptoms")
	require.NoError(t, err)
	assert.Equal(t, FavoriteSymptoms, kind)
	_, err = ParseFavorites("drinks")
	assert.Error(t, err)
}

func TestBlurAndTheme(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	d := open(t, mp)

	assert.True(t, d.ToggleBlur(ctx, entry.TagStool))
	assert.True(t, d.ToggleBlur(ctx, entry.TagHistory))
	assert.Equal(t, []entry.Tag{entry.TagHistory, entry.TagStool}, mp.prefs.Blur)
	assert.False(t, d.ToggleBlur(ctx, entry.TagStool))
	assert.True(t, d.Preferences().Blurred(entry.TagHistory))
	assert.False(t, d.Preferences().Blurred(entry.TagStool))

	d.SetTheme(ctx, store.ThemeDark)
	assert.Equal(t, store.ThemeDark, mp.prefs.Theme)
}

func TestDraftCommit(t *testing.T) {
	ctx := context.Background()
	mp := newMemoryPersistence()
	d := open(t, mp)

	_, err := d.CommitDraft(ctx)
	assert.ErrorIs(t, err, entry.ErrInvalid)

	d.SaveDraft(ctx, &entry.Draft{Food: "Linsen", Portion: &entry.Portion{Size: entry.SizeCustom, Grams: 250}})
	require.NotNil(t, mp.draft)

	e, err := d.CommitDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Linsen", e.Food)
	assert.Equal(t, "250g", e.Portion.String())
	assert.Nil(t, mp.draft)
	assert.Len(t, mp.entries, 1)
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	d := open(t, newMemoryPersistence(mk("old", "Tee", -30*24*time.Hour, 0)))
	_, err := d.Add(ctx, &entry.Draft{Food: "Pizza", Symptoms: []entry.Symptom{{Text: "Blähungen", Time: 30, Strength: 2}}})
	require.NoError(t, err)
	_, err = d.Add(ctx, &entry.Draft{Food: "Bohnen", Symptoms: []entry.Symptom{{Text: "blähungen", Time: 90, Strength: 3}}})
	require.NoError(t, err)
	_, err = d.Add(ctx, &entry.Draft{Food: "Reis"})
	require.NoError(t, err)

	r := d.Report(base.Add(24*time.Hour), base.Add(-24*time.Hour))
	assert.Equal(t, 3, r.Total)
	require.Len(t, r.Sections, 2)
	assert.Equal(t, entry.TagMeal, r.Sections[0].Tag)
	assert.Equal(t, entry.TagSymptom, r.Sections[1].Tag)
	require.Len(t, r.Symptoms, 1)
	assert.Equal(t, 2, r.Symptoms[0].Count)
	assert.Equal(t, 3, r.Symptoms[0].MaxStrength)
	assert.Equal(t, 60, r.Symptoms[0].AverageOnset)
	assert.ElementsMatch(t, []string{"Pizza", "Bohnen"}, r.Symptoms[0].ExampleMeals)
}

func TestDay(t *testing.T) {
	d := open(t, newMemoryPersistence(
		mk("e1", "Müsli", 0, 1),
		mk("e2", "Kaffee", time.Hour, 1),
		mk("e3", "Pizza", -12*time.Hour, 0),
	))

	dv, ok := d.Day("02.05.2024")
	require.True(t, ok)
	assert.Equal(t, []string{"e2", "e1"}, ids(dv.Entries))
	require.Len(t, dv.Runs, 1)
	assert.True(t, dv.Runs[0].Connected())

	dv, ok = d.Day("01.05.2024")
	require.True(t, ok)
	assert.Equal(t, []string{"e3"}, ids(dv.Entries))

	_, ok = d.Day("03.05.2024")
	assert.False(t, ok)
}

func TestSaveFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	mp := newMemoryPersistence()
	d, err := Open(context.Background(), mp, zap.New(core))
	require.NoError(t, err)
	d.Now = func() time.Time { return base }
	mp.saveErr = store.ErrQuotaExceeded

	_, err = d.Add(context.Background(), &entry.Draft{Food: "Reis"})
	require.NoError(t, err)

	failed := logs.FilterMessage("save failed").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.NotEmpty(t, fields["op"])
	assert.Contains(t, fields["error"], "quota")
}
