package entry

import (
	"slices"
	"strings"
	"time"
)

// Draft is the persisted new-entry form. SymptomInput/Time/Strength hold the
// symptom that is being typed and not yet added to Symptoms.
type Draft struct {
	Food            string    `json:"food"`
	Images          []string  `json:"imgs,omitempty"`
	Symptoms        []Symptom `json:"symptoms,omitempty"`
	SymptomInput    string    `json:"symptomInput,omitempty"`
	SymptomTime     int       `json:"symptomTime,omitempty"`
	SymptomStrength int       `json:"symptomStrength,omitempty"`
	Tag             Tag       `json:"tagColor,omitempty"`
	TagManual       bool      `json:"tagColorManual,omitempty"`
	Portion         *Portion  `json:"portion,omitempty"`
	Comment         string    `json:"comment,omitempty"`
}

// Empty reports whether the draft holds nothing worth keeping.
func (d *Draft) Empty() bool {
	return d == nil || (strings.TrimSpace(d.Food) == "" && len(d.Images) == 0 &&
		len(d.Symptoms) == 0 && strings.TrimSpace(d.SymptomInput) == "")
}

// Build turns the draft into a new entry dated now. A symptom still in the
// input field is added first. An entry with neither food nor symptoms is
// refused.
func (d *Draft) Build(now time.Time) (*Entry, error) {
	symptoms := slices.Clone(d.Symptoms)
	if strings.TrimSpace(d.SymptomInput) != "" {
		strength := d.SymptomStrength
		if strength == 0 {
			strength = MinStrength
		}
		s, err := NewSymptom(d.SymptomInput, d.SymptomTime, strength)
		if err != nil {
			return nil, err
		}
		symptoms = append(symptoms, s)
	}
	if strings.TrimSpace(d.Food) == "" && len(symptoms) == 0 {
		return nil, invalid("food", "an entry needs food or at least one symptom")
	}

	e := New(d.Food, symptoms, now)
	e.Images = slices.Clone(d.Images)
	e.Comment = strings.TrimSpace(d.Comment)
	if d.Portion != nil {
		p := *d.Portion
		e.Portion = &p
	}
	if d.TagManual && d.Tag != "" {
		e.PinTag(d.Tag)
	}
	return e, nil
}
