package prompt

import (
	"testing"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/linking"
)

func TestParseBool(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    bool
		wantErr bool
	}{
		"yes":     {in: "yes", want: true},
		"ja":      {in: "Ja", want: true},
		"y":       {in: " y ", want: true},
		"no":      {in: "No", want: false},
		"nein":    {in: "nein", want: false},
		"garbage": {in: "maybe", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBool(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseBool(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("ParseBool(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestItemsOfferGroupsThenNewAndCancel(t *testing.T) {
	groups := []Group{{
		ID: 2,
		Members: []*entry.Entry{
			{Food: "Kaffee", Date: "02.05.2024 08:00"},
			{Food: "Croissant", Date: "02.05.2024 08:05"},
		},
	}}
	got := items(groups)
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0].Name != "group 2" || got[0].Choice != linking.Join(2) {
		t.Fatalf("unexpected first item %+v", got[0])
	}
	if got[0].Detail != "08:00 Kaffee, 08:05 Croissant" {
		t.Fatalf("unexpected detail %q", got[0].Detail)
	}
	if got[1].Choice != linking.NewGroup {
		t.Fatalf("expected new group second, got %+v", got[1])
	}
	if got[2].Choice != linking.Cancel {
		t.Fatalf("expected cancel last, got %+v", got[2])
	}
}
