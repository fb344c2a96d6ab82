// Package mcp provides the Model Context Protocol server integration for the
// diary.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
	"tableflip.dev/diary/pkg/share"
	"tableflip.dev/diary/pkg/timeutil"
)

// Service serialises access to the diary for the MCP handlers. Every call
// reloads from disk first so writes from the CLI are seen.
type Service struct {
	mu        sync.Mutex
	diary     *app.Diary
	shareBase string
}

// AddEntryOptions captures the parameters used to create a new entry.
type AddEntryOptions struct {
	Food     string
	Symptoms []string
	Comment  string
	Portion  string
	Tag      string
}

// UpdateEntryOptions holds optional field changes; nil leaves a field alone.
type UpdateEntryOptions struct {
	ID      string
	Food    *string
	Comment *string
	Date    *string
	Portion *string
}

// SymptomDTO is a transport-friendly symptom.
type SymptomDTO struct {
	Text     string `json:"text"`
	Onset    string `json:"onset"`
	Minutes  int    `json:"minutes"`
	Strength int    `json:"strength"`
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID        string       `json:"id"`
	Date      string       `json:"date"`
	Day       string       `json:"day"`
	Food      string       `json:"food,omitempty"`
	Symptoms  []SymptomDTO `json:"symptoms,omitempty"`
	Comment   string       `json:"comment,omitempty"`
	Tag       string       `json:"tag"`
	TagManual bool         `json:"tagManual"`
	LinkID    int          `json:"linkId,omitempty"`
	Portion   string       `json:"portion,omitempty"`
	Images    int          `json:"images,omitempty"`
	Blurred   bool         `json:"blurred,omitempty"`
}

// DaySummary describes one day of the diary.
type DaySummary struct {
	Day     string     `json:"day"`
	Count   int        `json:"count"`
	Groups  [][]string `json:"groups,omitempty"`
	Entries []EntryDTO `json:"entries"`
}

// LinkDTO reports a link transition.
type LinkDTO struct {
	Outcome string `json:"outcome"`
	GroupID int    `json:"groupId,omitempty"`
	Choices []int  `json:"choices,omitempty"`
}

// NewService wraps an opened diary. shareBase is the base URL of share links.
func NewService(d *app.Diary, shareBase string) *Service {
	return &Service{diary: d, shareBase: shareBase}
}

// do runs fn with the diary freshly loaded and turns notices into an error.
// Notices never outlive the call that caused them.
func (s *Service) do(ctx context.Context, fn func(d *app.Diary) error) error {
	if s.diary == nil {
		return errors.New("diary is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.diary.Notices()
	if err := s.diary.Reload(ctx); err != nil {
		return err
	}
	err := fn(s.diary)
	notices := s.diary.Notices()
	if err != nil {
		return err
	}
	if len(notices) > 0 {
		msgs := make([]string, len(notices))
		for i, n := range notices {
			msgs[i] = n.String()
		}
		return fmt.Errorf("not saved: %s", strings.Join(msgs, "; "))
	}
	return nil
}

// ListDays returns the visible days matching search, newest entries capped
// by limit.
func (s *Service) ListDays(ctx context.Context, search string, limit int) ([]DaySummary, error) {
	var out []DaySummary
	err := s.do(ctx, func(d *app.Diary) error {
		blur := d.Preferences().Blurred
		v := d.Visible(app.Query{Search: search, Limit: limit, Order: entry.OrderChronological})
		out = make([]DaySummary, 0, len(v.Days))
		for _, dv := range v.Days {
			sum := DaySummary{Day: dv.Key, Count: len(dv.Entries)}
			for _, r := range dv.Runs {
				if !r.Connected() {
					continue
				}
				ids := make([]string, len(r.Entries))
				for i, e := range r.Entries {
					ids[i] = e.ID
				}
				sum.Groups = append(sum.Groups, ids)
			}
			sum.Entries = toDTOs(dv.Entries, blur)
			out = append(out, sum)
		}
		return nil
	})
	return out, err
}

// EntryByID resolves an id or unique id prefix.
func (s *Service) EntryByID(ctx context.Context, ref string) (*EntryDTO, error) {
	var dto EntryDTO
	err := s.do(ctx, func(d *app.Diary) error {
		_, e, err := d.Find(ref)
		if err != nil {
			return err
		}
		dto = toDTO(e, d.Preferences().Blurred)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// AddEntry stores a new entry dated now.
func (s *Service) AddEntry(ctx context.Context, opts AddEntryOptions) (*EntryDTO, error) {
	draft := &entry.Draft{Food: opts.Food, Comment: opts.Comment}
	for _, raw := range opts.Symptoms {
		sym, err := entry.ParseSymptom(raw)
		if err != nil {
			return nil, err
		}
		draft.Symptoms = append(draft.Symptoms, sym)
	}
	portion, err := entry.ParsePortion(opts.Portion)
	if err != nil {
		return nil, err
	}
	draft.Portion = portion
	if strings.TrimSpace(opts.Tag) != "" {
		t, err := entry.ParseTag(opts.Tag)
		if err != nil {
			return nil, err
		}
		draft.Tag, draft.TagManual = t, true
	}

	var dto EntryDTO
	err = s.do(ctx, func(d *app.Diary) error {
		e, err := d.Add(ctx, draft)
		if err != nil {
			return err
		}
		dto = toDTO(e, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// UpdateEntry applies the set fields of opts.
func (s *Service) UpdateEntry(ctx context.Context, opts UpdateEntryOptions) (*EntryDTO, error) {
	var portion *entry.Portion
	if opts.Portion != nil {
		p, err := entry.ParsePortion(*opts.Portion)
		if err != nil {
			return nil, err
		}
		portion = p
	}

	var dto EntryDTO
	err := s.do(ctx, func(d *app.Diary) error {
		e, err := d.Update(ctx, opts.ID, func(e *entry.Entry) error {
			if opts.Food != nil {
				e.Food = strings.TrimSpace(*opts.Food)
			}
			if opts.Comment != nil {
				e.Comment = strings.TrimSpace(*opts.Comment)
			}
			if opts.Date != nil {
				e.Date = entry.NormalizeDate(*opts.Date)
			}
			if opts.Portion != nil {
				e.Portion = portion
			}
			e.Retag()
			return nil
		})
		if err != nil {
			return err
		}
		dto = toDTO(e, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// AddSymptom appends a symptom written as text[@onset][#strength].
func (s *Service) AddSymptom(ctx context.Context, id, notation string) (*EntryDTO, error) {
	sym, err := entry.ParseSymptom(notation)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(d *app.Diary) (*entry.Entry, error) {
		return d.AddSymptom(ctx, id, sym)
	})
}

// SetTag pins tag on the entry; "auto" returns it to the derived tag.
func (s *Service) SetTag(ctx context.Context, id, tag string) (*EntryDTO, error) {
	if strings.EqualFold(strings.TrimSpace(tag), "auto") {
		return s.mutate(ctx, func(d *app.Diary) (*entry.Entry, error) {
			return d.ResetTag(ctx, id)
		})
	}
	t, err := entry.ParseTag(tag)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(d *app.Diary) (*entry.Entry, error) {
		return d.SetTag(ctx, id, t)
	})
}

// DeleteEntry removes the entry and returns what was removed.
func (s *Service) DeleteEntry(ctx context.Context, id string) (*EntryDTO, error) {
	return s.mutate(ctx, func(d *app.Diary) (*entry.Entry, error) {
		return d.Delete(ctx, id)
	})
}

func (s *Service) mutate(ctx context.Context, fn func(d *app.Diary) (*entry.Entry, error)) (*EntryDTO, error) {
	var dto EntryDTO
	err := s.do(ctx, func(d *app.Diary) error {
		e, err := fn(d)
		if err != nil {
			return err
		}
		dto = toDTO(e, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// LinkEntries puts two entries of one day in a group. join picks an existing
// group when one must be chosen; 0 starts a new group.
func (s *Service) LinkEntries(ctx context.Context, a, b string, join int) (*LinkDTO, error) {
	choice := linking.NewGroup
	if join > 0 {
		choice = linking.Join(join)
	}
	var out LinkDTO
	err := s.do(ctx, func(d *app.Diary) error {
		res, err := d.Link(ctx, a, b, choice)
		if err != nil {
			return err
		}
		out = LinkDTO{Outcome: res.Outcome.String(), GroupID: res.GroupID, Choices: res.Choices}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DissolveLink clears the group of the entry and returns the former members.
func (s *Service) DissolveLink(ctx context.Context, id string) ([]string, error) {
	var ids []string
	err := s.do(ctx, func(d *app.Diary) error {
		members, err := d.DissolveLink(ctx, id)
		if err != nil {
			return err
		}
		for _, e := range members {
			ids = append(ids, e.ID)
		}
		return nil
	})
	return ids, err
}

// ReportDTO is the transport form of app.ReportResult.
type ReportDTO struct {
	Since    string            `json:"since"`
	Until    string            `json:"until"`
	Window   string            `json:"window"`
	Total    int               `json:"total"`
	ByTag    map[string]int    `json:"byTag"`
	Symptoms []app.SymptomStat `json:"symptoms"`
}

// Report summarises the window ending now, written like "1w" or "3d".
func (s *Service) Report(ctx context.Context, window string) (*ReportDTO, error) {
	if strings.TrimSpace(window) == "" {
		window = timeutil.DefaultWindow
	}
	span, label, err := timeutil.ParseWindow(window)
	if err != nil {
		return nil, err
	}
	var out ReportDTO
	err = s.do(ctx, func(d *app.Diary) error {
		until := d.Now()
		r := d.Report(until.Add(-span), until)
		out = ReportDTO{
			Since:    entry.FormatDisplay(r.Since),
			Until:    entry.FormatDisplay(r.Until),
			Window:   label,
			Total:    r.Total,
			ByTag:    make(map[string]int, len(r.Sections)),
			Symptoms: r.Symptoms,
		}
		for _, sec := range r.Sections {
			out.ByTag[string(sec.Tag)] = len(sec.Entries)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ShareLink encodes the whole diary as a share link.
func (s *Service) ShareLink(ctx context.Context) (string, error) {
	var link string
	err := s.do(ctx, func(d *app.Diary) error {
		var err error
		link, err = share.Link(s.shareBase, d.Entries())
		return err
	})
	return link, err
}

func toDTOs(entries []*entry.Entry, blurred func(entry.Tag) bool) []EntryDTO {
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e, blurred))
	}
	return out
}

// toDTO projects e; content of blurred tags is left out.
func toDTO(e *entry.Entry, blurred func(entry.Tag) bool) EntryDTO {
	dto := EntryDTO{
		ID:        e.ID,
		Date:      e.Date,
		Day:       e.Day(),
		Tag:       string(e.Tag),
		TagManual: e.TagManual,
		LinkID:    e.LinkID,
		Images:    len(e.Images),
	}
	if blurred != nil && blurred(e.Tag) {
		dto.Blurred = true
		return dto
	}
	dto.Food = e.Food
	dto.Comment = e.Comment
	if e.Portion != nil {
		dto.Portion = e.Portion.String()
	}
	for _, sym := range e.Symptoms {
		dto.Symptoms = append(dto.Symptoms, SymptomDTO{
			Text:     sym.Text,
			Onset:    timeutil.FormatOnset(sym.Time),
			Minutes:  sym.Time,
			Strength: sym.Strength,
		})
	}
	return dto
}
