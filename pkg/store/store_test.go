package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

type testConfig struct {
	path  string
	quota int64
}

func (t testConfig) BasePath() string {
	return t.path
}

func (t testConfig) Quota() int64 {
	return t.quota
}

func load(t *testing.T, quota int64) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir(), quota: quota}, nil)
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p
}

func TestEntriesRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := load(t, 0)

	empty, err := p.Entries(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	e := entry.New("Pizza", []entry.Symptom{{Text: "Bauchschmerzen", Time: 30, Strength: 2}},
		time.Date(2024, time.May, 2, 19, 0, 0, 0, time.Local))
	e.LinkID = 2
	e.Portion = &entry.Portion{Size: entry.SizeLarge}
	require.NoError(t, p.SaveEntries(ctx, []*entry.Entry{e}))

	got, err := p.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e, got[0])
}

func TestSaveEntriesQuota(t *testing.T) {
	ctx := context.Background()
	p := load(t, 200)

	small := []*entry.Entry{{ID: "a", Food: "Tee", Date: "02.05.2024 08:00", Tag: entry.TagMeal}}
	require.NoError(t, p.SaveEntries(ctx, small))

	big := []*entry.Entry{{ID: "b", Food: "Tee", Images: []string{string(make([]byte, 500))}, Date: "02.05.2024 08:00"}}
	err := p.SaveEntries(ctx, big)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	got, err := p.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1, "a refused write must leave the stored list alone")
	assert.Equal(t, "a", got[0].ID)
}

func TestReadsSeeOtherWriters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	server, err := Load(testConfig{path: dir}, nil)
	require.NoError(t, err)
	cli, err := Load(testConfig{path: dir}, nil)
	require.NoError(t, err)

	at := time.Date(2024, time.May, 2, 8, 0, 0, 0, time.Local)
	a := entry.New("Tee", nil, at)
	require.NoError(t, server.SaveEntries(ctx, []*entry.Entry{a}))
	got, err := server.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	b := entry.New("Brot", nil, at.Add(time.Hour))
	require.NoError(t, cli.SaveEntries(ctx, []*entry.Entry{b, a}))

	got, err = server.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2, "a second read must see the other writer")

	require.NoError(t, cli.SavePendingLink(ctx, &linking.PendingLink{OriginID: b.ID, Day: "02.05.2024", GroupID: 1}))
	pl, err := server.PendingLink(ctx)
	require.NoError(t, err)
	require.NotNil(t, pl)
	assert.Equal(t, b.ID, pl.OriginID)

	require.NoError(t, cli.SavePendingLink(ctx, nil))
	pl, err = server.PendingLink(ctx)
	require.NoError(t, err)
	assert.Nil(t, pl)
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	p := load(t, 0)

	d, err := p.Draft(ctx)
	require.NoError(t, err)
	assert.Nil(t, d)

	want := &entry.Draft{Food: "Müsli", SymptomInput: "Blähungen", SymptomTime: 15, SymptomStrength: 1}
	require.NoError(t, p.SaveDraft(ctx, want))
	d, err = p.Draft(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, d)

	require.NoError(t, p.SaveDraft(ctx, &entry.Draft{}))
	d, err = p.Draft(ctx)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestPreferencesSortedSets(t *testing.T) {
	ctx := context.Background()
	p := load(t, 0)

	prefs, err := p.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, prefs.Theme)

	require.NoError(t, p.SavePreferences(ctx, Preferences{
		Theme:            ThemeDark,
		FavoriteFoods:    []string{"Reis", " Apfel", "Reis", ""},
		FavoriteSymptoms: []string{"Übelkeit", "Blähungen"},
		Blur:             []entry.Tag{entry.TagStool, entry.TagHistory},
	}))
	prefs, err = p.Preferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, prefs.Theme)
	assert.Equal(t, []string{"Apfel", "Reis"}, prefs.FavoriteFoods)
	assert.Equal(t, []string{"Blähungen", "Übelkeit"}, prefs.FavoriteSymptoms)
	assert.Equal(t, []entry.Tag{entry.TagHistory, entry.TagStool}, prefs.Blur)
	assert.True(t, prefs.Blurred(entry.TagStool))
	assert.False(t, prefs.Blurred(entry.TagMeal))
}

func TestPendingLinkLifecycle(t *testing.T) {
	ctx := context.Background()
	p := load(t, 0)

	pl, err := p.PendingLink(ctx)
	require.NoError(t, err)
	assert.Nil(t, pl)

	want := &linking.PendingLink{OriginID: "a", Day: "02.05.2024", GroupID: 1}
	require.NoError(t, p.SavePendingLink(ctx, want))
	pl, err = p.PendingLink(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, pl)

	require.NoError(t, p.SavePendingLink(ctx, nil))
	pl, err = p.PendingLink(ctx)
	require.NoError(t, err)
	assert.Nil(t, pl)
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme("Dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}

func TestPersistenceWatchEmitsEntryChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := load(t, 0)

	ctx, cancel := context.WithCancel(context.Background())

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.SaveEntries(ctx, []*entry.Entry{{ID: "a", Food: "Tee"}}); err != nil {
		t.Fatalf("store entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case evt := <-ch:
			if evt.Type == EventEntriesChanged {
				assert.Equal(t, "entries", evt.Key)
				done = true
			}
		case <-deadline:
			t.Fatal("timed out waiting for entries change event")
		}
	}

	cancel()
	for range ch {
	}
}
