// Package entry holds the diary record and the pure rules around it: the
// display date codec, tag classification and ordering.
package entry

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Size is the portion size of a meal.
type Size string

const (
	SizeSmall  Size = "S"
	SizeMedium Size = "M"
	SizeLarge  Size = "L"
	SizeCustom Size = "custom"
)

// Portion is an optional meal size. Grams is only meaningful for SizeCustom.
type Portion struct {
	Size  Size `json:"size"`
	Grams int  `json:"grams,omitempty"`
}

// NewPortion validates size and grams.
func NewPortion(size Size, grams int) (*Portion, error) {
	switch size {
	case SizeSmall, SizeMedium, SizeLarge:
		return &Portion{Size: size}, nil
	case SizeCustom:
		if grams <= 0 {
			return nil, invalid("portion", "custom portion needs a positive gram amount")
		}
		return &Portion{Size: size, Grams: grams}, nil
	default:
		return nil, invalid("portion", fmt.Sprintf("unknown size %q", size))
	}
}

// ParsePortion accepts "S", "M", "L" or "custom:<grams>" (also "<grams>g").
func ParsePortion(s string) (*Portion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	switch upper := strings.ToUpper(s); upper {
	case "S", "M", "L":
		return NewPortion(Size(upper), 0)
	}
	raw := strings.TrimPrefix(strings.ToLower(s), "custom:")
	raw = strings.TrimSuffix(raw, "g")
	var grams int
	if _, err := fmt.Sscanf(raw, "%d", &grams); err != nil {
		return nil, invalid("portion", fmt.Sprintf("cannot parse %q", s))
	}
	return NewPortion(SizeCustom, grams)
}

func (p *Portion) String() string {
	if p == nil {
		return ""
	}
	if p.Size == SizeCustom {
		return fmt.Sprintf("%dg", p.Grams)
	}
	return string(p.Size)
}

// Symptom is one complaint with its onset (minutes after the meal) and
// severity 1..3.
type Symptom struct {
	Text     string `json:"txt"`
	Time     int    `json:"time"`
	Strength int    `json:"strength"`
}

const (
	MinStrength = 1
	MaxStrength = 3
)

// NewSymptom validates a symptom. Onset must not be negative and strength
// must be within 1..3.
func NewSymptom(text string, minutes, strength int) (Symptom, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Symptom{}, invalid("symptom", "text is empty")
	}
	if minutes < 0 {
		return Symptom{}, invalid("symptom", "onset is negative")
	}
	if strength < MinStrength || strength > MaxStrength {
		return Symptom{}, invalid("symptom", fmt.Sprintf("strength %d not in %d..%d", strength, MinStrength, MaxStrength))
	}
	return Symptom{Text: text, Time: minutes, Strength: strength}, nil
}

// Entry is one diary record.
type Entry struct {
	ID        string    `json:"id,omitempty"`
	Food      string    `json:"food"`
	Images    []string  `json:"imgs,omitempty"`
	Symptoms  []Symptom `json:"symptoms"`
	Comment   string    `json:"comment,omitempty"`
	Date      string    `json:"date"`
	CreatedAt int64     `json:"createdAt"`
	Tag       Tag       `json:"tagColor"`
	TagManual bool      `json:"tagColorManual,omitempty"`
	// LinkID 0 means not linked.
	LinkID  int      `json:"linkId,omitempty"`
	Portion *Portion `json:"portion,omitempty"`
}

// New creates an entry dated at now with an auto-derived tag.
func New(food string, symptoms []Symptom, now time.Time) *Entry {
	e := &Entry{
		ID:        uuid.NewString(),
		Food:      strings.TrimSpace(food),
		Symptoms:  slices.Clone(symptoms),
		Date:      FormatDisplay(now),
		CreatedAt: now.UnixMilli(),
	}
	e.Retag()
	return e
}

// Day returns the day key of the entry's date.
func (e *Entry) Day() string {
	return DayKey(e.Date)
}

// Linked reports whether the entry wears a link id.
func (e *Entry) Linked() bool {
	return e.LinkID > 0
}

// Clone returns a copy that shares no slices with e.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Images = slices.Clone(e.Images)
	cp.Symptoms = slices.Clone(e.Symptoms)
	if e.Portion != nil {
		p := *e.Portion
		cp.Portion = &p
	}
	return &cp
}

// Title is a one-line summary used by printers.
func (e *Entry) Title() string {
	if e.Food != "" {
		return e.Food
	}
	names := make([]string, 0, len(e.Symptoms))
	for _, s := range e.Symptoms {
		names = append(names, s.Text)
	}
	return strings.Join(names, ", ")
}

// Matches reports whether the lower-cased needle occurs in food, comment,
// date or any symptom text.
func (e *Entry) Matches(needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Food), needle) ||
		strings.Contains(strings.ToLower(e.Comment), needle) ||
		strings.Contains(e.Date, needle) {
		return true
	}
	for _, s := range e.Symptoms {
		if strings.Contains(strings.ToLower(s.Text), needle) {
			return true
		}
	}
	return false
}

// CloneAll copies a list so callers can replace elements without touching
// the original.
func CloneAll(entries []*Entry) []*Entry {
	out := make([]*Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
