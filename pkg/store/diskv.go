package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

// ErrQuotaExceeded is returned when a write would push the stored data past
// the configured quota. Nothing is written in that case.
var ErrQuotaExceeded = errors.New("store: storage quota exceeded")

// Theme is the colour preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q (expected light or dark)", s)
	}
}

// Preferences are the small user settings stored next to the entries.
type Preferences struct {
	Theme            Theme       `json:"theme"`
	FavoriteFoods    []string    `json:"favoriteFoods"`
	FavoriteSymptoms []string    `json:"favoriteSymptoms"`
	Blur             []entry.Tag `json:"blur"`
}

// Blurred reports whether entries tagged t are masked.
func (p Preferences) Blurred(t entry.Tag) bool {
	return slices.Contains(p.Blur, t)
}

// Persistence is the storage boundary of the diary. The in-memory list owned
// by the caller stays authoritative; a failed save never changes it.
type Persistence interface {
	Entries(ctx context.Context) ([]*entry.Entry, error)
	SaveEntries(ctx context.Context, entries []*entry.Entry) error
	Draft(ctx context.Context) (*entry.Draft, error)
	// SaveDraft stores the form; a nil or empty draft removes it.
	SaveDraft(ctx context.Context, d *entry.Draft) error
	Preferences(ctx context.Context) (Preferences, error)
	SavePreferences(ctx context.Context, p Preferences) error
	PendingLink(ctx context.Context) (*linking.PendingLink, error)
	// SavePendingLink stores the unfinished link; nil removes it.
	SavePendingLink(ctx context.Context, p *linking.PendingLink) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	keyEntries          = "entries"
	keyDraft            = "draft"
	keyTheme            = "theme"
	keyFavoriteFoods    = "favorite-foods"
	keyFavoriteSymptoms = "favorite-symptoms"
	keyBlur             = "blur-categories"
	keyPendingLink      = "pending-link"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, logger *zap.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			// Other processes write the same files; every read goes to disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		quota:    cfg.Quota(),
		log:      logger.Named("store"),
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	quota    int64
	log      *zap.Logger
}

// raw reads key straight from disk. A missing key is not an error.
func (p *persistence) raw(key string) ([]byte, bool, error) {
	rc, err := p.d.ReadStream(key, true)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: read %s: %w", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("store: read %s: %w", key, err)
	}
	return data, true, nil
}

func (p *persistence) read(key string, v any) (bool, error) {
	data, ok, err := p.raw(key)
	if err != nil || !ok {
		return false, err
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return true, nil
}

// used returns the bytes stored under every key except skip.
func (p *persistence) used(skip string) int64 {
	var total int64
	for key := range p.d.Keys(nil) {
		if key == skip {
			continue
		}
		info, err := os.Stat(filepath.Join(p.basePath, key))
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total
}

func (p *persistence) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if p.quota > 0 {
		if total := p.used(key) + int64(len(data)); total > p.quota {
			p.log.Warn("quota exceeded",
				zap.String("key", key),
				zap.Int64("bytes", total),
				zap.Int64("quota", p.quota))
			return fmt.Errorf("%w: %d of %d bytes", ErrQuotaExceeded, total, p.quota)
		}
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	p.log.Debug("stored", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

func (p *persistence) erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	return p.d.Erase(key)
}

func (p *persistence) Entries(_ context.Context) ([]*entry.Entry, error) {
	data, ok, err := p.raw(keyEntries)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*entry.Entry{}, nil
	}
	list, err := entry.UnmarshalList(data, uuid.NewString)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", keyEntries, err)
	}
	return list, nil
}

func (p *persistence) SaveEntries(_ context.Context, entries []*entry.Entry) error {
	data, err := entry.MarshalList(entries)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", keyEntries, err)
	}
	return p.write(keyEntries, json.RawMessage(data))
}

func (p *persistence) Draft(_ context.Context) (*entry.Draft, error) {
	d := &entry.Draft{}
	ok, err := p.read(keyDraft, d)
	if err != nil || !ok {
		return nil, err
	}
	return d, nil
}

func (p *persistence) SaveDraft(_ context.Context, d *entry.Draft) error {
	if d.Empty() {
		return p.erase(keyDraft)
	}
	return p.write(keyDraft, d)
}

func (p *persistence) Preferences(_ context.Context) (Preferences, error) {
	prefs := Preferences{Theme: ThemeLight}
	var theme string
	if _, err := p.read(keyTheme, &theme); err != nil {
		return prefs, err
	}
	if t, err := ParseTheme(theme); err == nil {
		prefs.Theme = t
	}
	if _, err := p.read(keyFavoriteFoods, &prefs.FavoriteFoods); err != nil {
		return prefs, err
	}
	if _, err := p.read(keyFavoriteSymptoms, &prefs.FavoriteSymptoms); err != nil {
		return prefs, err
	}
	if _, err := p.read(keyBlur, &prefs.Blur); err != nil {
		return prefs, err
	}
	return prefs, nil
}

func (p *persistence) SavePreferences(_ context.Context, prefs Preferences) error {
	if prefs.Theme == "" {
		prefs.Theme = ThemeLight
	}
	if err := p.write(keyTheme, prefs.Theme); err != nil {
		return err
	}
	if err := p.write(keyFavoriteFoods, sortedSet(prefs.FavoriteFoods)); err != nil {
		return err
	}
	if err := p.write(keyFavoriteSymptoms, sortedSet(prefs.FavoriteSymptoms)); err != nil {
		return err
	}
	blur := make([]string, len(prefs.Blur))
	for i, t := range prefs.Blur {
		blur[i] = string(t)
	}
	return p.write(keyBlur, sortedSet(blur))
}

func (p *persistence) PendingLink(_ context.Context) (*linking.PendingLink, error) {
	pl := &linking.PendingLink{}
	ok, err := p.read(keyPendingLink, pl)
	if err != nil || !ok {
		return nil, err
	}
	return pl, nil
}

func (p *persistence) SavePendingLink(_ context.Context, pl *linking.PendingLink) error {
	if pl == nil {
		return p.erase(keyPendingLink)
	}
	return p.write(keyPendingLink, pl)
}

// sortedSet trims, drops empties and duplicates, and sorts.
func sortedSet(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
