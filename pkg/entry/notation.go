package entry

import (
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/diary/pkg/timeutil"
)

// ParseSymptom reads the command-line notation "text[@onset][#strength]",
// for example "Bauchschmerzen@30m#2". Onset defaults to 0 and strength to 1.
func ParseSymptom(s string) (Symptom, error) {
	text := s
	strength := MinStrength
	if i := strings.LastIndex(text, "#"); i >= 0 {
		n, err := strconv.Atoi(strings.TrimSpace(text[i+1:]))
		if err != nil {
			return Symptom{}, invalid("symptom", fmt.Sprintf("strength %q is not a number", text[i+1:]))
		}
		strength = n
		text = text[:i]
	}
	minutes := 0
	if i := strings.LastIndex(text, "@"); i >= 0 {
		m, _, err := timeutil.ParseOnset(text[i+1:])
		if err != nil {
			return Symptom{}, invalid("symptom", err.Error())
		}
		minutes = m
		text = text[:i]
	}
	return NewSymptom(text, minutes, strength)
}

// FormatSymptom is the inverse of ParseSymptom.
func FormatSymptom(s Symptom) string {
	return fmt.Sprintf("%s@%s#%d", s.Text, timeutil.FormatOnset(s.Time), s.Strength)
}
