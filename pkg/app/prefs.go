package app

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/store"
)

// Favorites selects one of the two favourite lists.
type Favorites string

const (
	FavoriteFoods    Favorites = "food"
	FavoriteSymptoms Favorites = "symptom"
)

// ParseFavorites accepts "food(s)" or "symptom(s)".
func ParseFavorites(s string) (Favorites, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "food":
		return FavoriteFoods, nil
	case "symptom":
		return FavoriteSymptoms, nil
	default:
		return "", fmt.Errorf("unknown favourite list %q (expected food or symptom)", s)
	}
}

// Preferences returns the cached settings.
func (d *Diary) Preferences() store.Preferences {
	return d.prefs
}

func (d *Diary) savePrefs(ctx context.Context, op string, next store.Preferences) {
	d.prefs = next
	if err := d.store.SavePreferences(ctx, next); err != nil {
		d.notify(op, err)
	}
}

// SetTheme stores the colour theme.
func (d *Diary) SetTheme(ctx context.Context, t store.Theme) {
	next := d.prefs
	next.Theme = t
	d.savePrefs(ctx, "theme", next)
}

func (d *Diary) favorites(kind Favorites) []string {
	if kind == FavoriteSymptoms {
		return d.prefs.FavoriteSymptoms
	}
	return d.prefs.FavoriteFoods
}

func (d *Diary) setFavorites(ctx context.Context, kind Favorites, list []string) {
	next := d.prefs
	slices.Sort(list)
	list = slices.Compact(list)
	if kind == FavoriteSymptoms {
		next.FavoriteSymptoms = list
	} else {
		next.FavoriteFoods = list
	}
	d.savePrefs(ctx, "favourites", next)
}

// Favorites returns the sorted favourite list.
func (d *Diary) Favorites(kind Favorites) []string {
	return slices.Clone(d.favorites(kind))
}

// AddFavorite adds text to the list; blanks are ignored.
func (d *Diary) AddFavorite(ctx context.Context, kind Favorites, text string) {
	text = strings.TrimSpace(text)
	if text == "" || slices.Contains(d.favorites(kind), text) {
		return
	}
	d.setFavorites(ctx, kind, append(slices.Clone(d.favorites(kind)), text))
}

// RemoveFavorite removes text from the list and reports whether it was there.
func (d *Diary) RemoveFavorite(ctx context.Context, kind Favorites, text string) bool {
	text = strings.TrimSpace(text)
	list := d.favorites(kind)
	i := slices.Index(list, text)
	if i < 0 {
		return false
	}
	d.setFavorites(ctx, kind, slices.Delete(slices.Clone(list), i, i+1))
	return true
}

// Suggest ranks favourites by fuzzy match against pattern. An empty pattern
// returns the whole list.
func (d *Diary) Suggest(kind Favorites, pattern string) []string {
	list := d.favorites(kind)
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return slices.Clone(list)
	}
	matches := fuzzy.Find(pattern, list)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// SetBlur replaces the set of masked categories.
func (d *Diary) SetBlur(ctx context.Context, tags []entry.Tag) {
	next := d.prefs
	next.Blur = slices.Clone(tags)
	slices.Sort(next.Blur)
	next.Blur = slices.Compact(next.Blur)
	d.savePrefs(ctx, "blur", next)
}

// ToggleBlur flips one category and reports whether it is now masked.
func (d *Diary) ToggleBlur(ctx context.Context, t entry.Tag) bool {
	tags := slices.Clone(d.prefs.Blur)
	if i := slices.Index(tags, t); i >= 0 {
		d.SetBlur(ctx, slices.Delete(tags, i, i+1))
		return false
	}
	d.SetBlur(ctx, append(tags, t))
	return true
}

// Draft returns the stored new-entry form; never nil.
func (d *Diary) Draft(ctx context.Context) *entry.Draft {
	dr, err := d.store.Draft(ctx)
	if err != nil {
		d.log.Warn("draft unreadable", zap.Error(err))
		d.notices = append(d.notices, Notice{Op: "draft", Err: err})
	}
	if dr == nil {
		dr = &entry.Draft{}
	}
	return dr
}

// SaveDraft stores the form; an empty form is removed.
func (d *Diary) SaveDraft(ctx context.Context, dr *entry.Draft) {
	if err := d.store.SaveDraft(ctx, dr); err != nil {
		d.notify("draft", err)
	}
}

// CommitDraft turns the stored form into an entry and clears the form.
func (d *Diary) CommitDraft(ctx context.Context) (*entry.Entry, error) {
	e, err := d.Add(ctx, d.Draft(ctx))
	if err != nil {
		return nil, err
	}
	d.SaveDraft(ctx, nil)
	return e, nil
}
