package entry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexInt reads a JSON number, a numeric string, "" or null.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		if n == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return err
		}
		*f = flexInt(v)
		return nil
	}
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("entry: expected number, got %s", b)
	}
	if s == nil || strings.TrimSpace(*s) == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return fmt.Errorf("entry: expected number, got %q", *s)
	}
	*f = flexInt(v)
	return nil
}

// UnmarshalJSON accepts older records that stored time and strength as
// strings. Out of range values are clamped instead of rejected so an old
// diary always loads.
func (s *Symptom) UnmarshalJSON(b []byte) error {
	var raw struct {
		Text     string  `json:"txt"`
		Time     flexInt `json:"time"`
		Strength flexInt `json:"strength"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Text = raw.Text
	s.Time = max(int(raw.Time), 0)
	s.Strength = min(max(int(raw.Strength), MinStrength), MaxStrength)
	return nil
}

// UnmarshalList decodes a serialised entry list and fills what older records
// lack: a tag for untagged entries. Entries without an id get one from newID.
func UnmarshalList(data []byte, newID func() string) ([]*Entry, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []*Entry{}, nil
	}
	var list []*Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	out := make([]*Entry, 0, len(list))
	for _, e := range list {
		if e == nil {
			continue
		}
		if e.ID == "" && newID != nil {
			e.ID = newID()
		}
		if e.Tag == "" {
			e.TagManual = false
			e.Retag()
		}
		out = append(out, e)
	}
	return out, nil
}

// MarshalList serialises an entry list.
func MarshalList(entries []*Entry) ([]byte, error) {
	if entries == nil {
		entries = []*Entry{}
	}
	return json.Marshal(entries)
}
