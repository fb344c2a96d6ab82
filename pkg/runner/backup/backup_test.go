package backup

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/export"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/share"
	"tableflip.dev/diary/pkg/store"
)

func init() {
	color.NoColor = true
	color.Output = io.Discard
}

type dirConfig string

func (c dirConfig) BasePath() string { return string(c) }
func (c dirConfig) Quota() int64     { return store.DefaultQuota }

func newDiary(t *testing.T) *app.Diary {
	t.Helper()
	p, err := store.Load(dirConfig(t.TempDir()), zap.NewNop())
	require.NoError(t, err)
	d, err := app.Open(context.Background(), p, zap.NewNop())
	require.NoError(t, err)
	now := time.Date(2024, 5, 2, 8, 0, 0, 0, time.Local)
	d.Now = func() time.Time {
		now = now.Add(10 * time.Minute)
		return now
	}
	return d
}

func printer() printers.PrettyPrint {
	return printers.PrettyPrint{Out: io.Discard, Palette: printers.NewPalette(store.ThemeLight, false)}
}

func seed(t *testing.T, d *app.Diary, foods ...string) {
	t.Helper()
	for _, f := range foods {
		_, err := d.Add(context.Background(), &entry.Draft{Food: f})
		require.NoError(t, err)
	}
}

func TestExportImportFile(t *testing.T) {
	ctx := context.Background()
	src := newDiary(t)
	seed(t, src, "Haferbrei", "Stuhl: normal")
	path := filepath.Join(t.TempDir(), "backup.json")

	exp := &Export{Format: export.FormatJSON, Out: path, Diary: src, Printer: printer()}
	require.NoError(t, exp.Do(ctx))
	_, err := os.Stat(path)
	require.NoError(t, err)

	dst := newDiary(t)
	seed(t, dst, "Tee")
	imp := &Import{File: path, Diary: dst, Printer: printer()}
	require.NoError(t, imp.Do(ctx))
	assert.Len(t, dst.Entries(), 3)

	require.NoError(t, imp.Do(ctx))
	assert.Len(t, dst.Entries(), 3, "a second import skips known entries")

	imp.Replace = true
	require.NoError(t, imp.Do(ctx))
	assert.Len(t, dst.Entries(), 2)
}

func TestExportStdout(t *testing.T) {
	d := newDiary(t)
	seed(t, d, "Haferbrei")

	var buf bytes.Buffer
	exp := &Export{Format: export.FormatJSON, Stdout: &buf, Diary: d, Printer: printer()}
	require.NoError(t, exp.Do(context.Background()))
	assert.Contains(t, buf.String(), "Haferbrei")
}

func TestImportLink(t *testing.T) {
	ctx := context.Background()
	src := newDiary(t)
	seed(t, src, "Haferbrei", "Apfel")
	link, err := share.Link("https://diary.example/", src.Entries())
	require.NoError(t, err)

	dst := newDiary(t)
	require.NoError(t, (&Import{Link: link, Diary: dst, Printer: printer()}).Do(ctx))
	assert.Len(t, dst.Entries(), 2)
}

func TestImportErrors(t *testing.T) {
	ctx := context.Background()
	d := newDiary(t)

	err := (&Import{Link: "https://diary.example/#data=kaputt", Diary: d, Printer: printer()}).Do(ctx)
	assert.ErrorIs(t, err, ErrBadLink)

	err = (&Import{Diary: d, Printer: printer()}).Do(ctx)
	assert.Error(t, err)

	err = (&Import{Link: "x", File: "y", Diary: d, Printer: printer()}).Do(ctx)
	assert.Error(t, err)

	err = (&Import{File: filepath.Join(t.TempDir(), "missing.json"), Diary: d, Printer: printer()}).Do(ctx)
	assert.Error(t, err)
}
