package entry

import (
	"fmt"
	"strings"
)

// Tag is the category of an entry.
type Tag string

const (
	TagMeal       Tag = "meal"
	TagSymptom    Tag = "symptom"
	TagStool      Tag = "stool"
	TagSupplement Tag = "supplement"
	TagHistory    Tag = "history"
	TagOther      Tag = "other"
)

// StoolPrefix marks a stool log when the food text starts with it.
const StoolPrefix = "stuhl"

// categoryRank is the fixed order used by ByCategory. Unknown tags rank with
// TagOther.
var categoryRank = map[Tag]int{
	TagMeal:       0,
	TagOther:      1,
	TagSymptom:    2,
	TagSupplement: 3,
	TagStool:      4,
	TagHistory:    5,
}

// Tags lists every tag in category order.
func Tags() []Tag {
	return []Tag{TagMeal, TagOther, TagSymptom, TagSupplement, TagStool, TagHistory}
}

// Rank is the tag's position in category order.
func (t Tag) Rank() int {
	if r, ok := categoryRank[t]; ok {
		return r
	}
	return categoryRank[TagOther]
}

func (t Tag) String() string {
	return string(t)
}

// ParseTag accepts a tag name case-insensitively.
func ParseTag(s string) (Tag, error) {
	t := Tag(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := categoryRank[t]; !ok {
		return "", invalid("tag", fmt.Sprintf("unknown tag %q", s))
	}
	return t, nil
}

// Classify derives the tag from the food text and symptoms.
func Classify(food string, symptoms []Symptom) Tag {
	switch {
	case strings.HasPrefix(strings.ToLower(strings.TrimSpace(food)), StoolPrefix):
		return TagStool
	case len(symptoms) > 0:
		return TagSymptom
	default:
		return TagMeal
	}
}

// Retag recomputes the tag unless the user pinned it. Every mutation of food
// or symptoms must call it.
func (e *Entry) Retag() {
	if e.TagManual {
		return
	}
	e.Tag = Classify(e.Food, e.Symptoms)
}

// PinTag sets the tag manually; it stays until ResetTag.
func (e *Entry) PinTag(t Tag) {
	e.Tag = t
	e.TagManual = true
}

// ResetTag drops the manual flag and reclassifies.
func (e *Entry) ResetTag() {
	e.TagManual = false
	e.Retag()
}
