package strike

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/store"
)

func init() {
	color.NoColor = true
	color.Output = io.Discard
}

type dirConfig string

func (c dirConfig) BasePath() string { return string(c) }
func (c dirConfig) Quota() int64     { return store.DefaultQuota }

type answer bool

func (a answer) Confirm(string) (bool, error) { return bool(a), nil }

func TestStrike(t *testing.T) {
	ctx := context.Background()
	p, err := store.Load(dirConfig(t.TempDir()), zap.NewNop())
	require.NoError(t, err)
	d, err := app.Open(ctx, p, zap.NewNop())
	require.NoError(t, err)
	d.Now = func() time.Time { return time.Date(2024, 5, 2, 8, 0, 0, 0, time.Local) }

	e, err := d.Add(ctx, &entry.Draft{Food: "Pizza"})
	require.NoError(t, err)
	pp := printers.PrettyPrint{Out: io.Discard, Palette: printers.NewPalette(store.ThemeLight, false)}

	s := &Strike{Ref: e.ID[:8], Confirmer: answer(false), Diary: d, Printer: pp}
	require.NoError(t, s.Do(ctx))
	assert.Len(t, d.Entries(), 1, "declined delete keeps the entry")

	s.Confirmer = answer(true)
	require.NoError(t, s.Do(ctx))
	assert.Empty(t, d.Entries())

	assert.ErrorIs(t, s.Do(ctx), app.ErrNotFound)
}
