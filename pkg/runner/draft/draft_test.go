package draft

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/diary/pkg/entry"
)

func TestMerge(t *testing.T) {
	cramps := entry.Symptom{Text: "Bauchschmerzen", Time: 30, Strength: 2}
	bloat := entry.Symptom{Text: "Blähungen", Time: 60, Strength: 1}

	tests := map[string]struct {
		base  *entry.Draft
		patch *entry.Draft
		want  *entry.Draft
	}{
		"nil base": {
			patch: &entry.Draft{Food: "Lasagne"},
			want:  &entry.Draft{Food: "Lasagne"},
		},
		"nil patch": {
			base: &entry.Draft{Food: "Lasagne", Symptoms: []entry.Symptom{cramps}},
			want: &entry.Draft{Food: "Lasagne", Symptoms: []entry.Symptom{cramps}},
		},
		"blank food keeps base": {
			base:  &entry.Draft{Food: "Lasagne"},
			patch: &entry.Draft{Food: "  ", Symptoms: []entry.Symptom{bloat}},
			want:  &entry.Draft{Food: "Lasagne", Symptoms: []entry.Symptom{bloat}},
		},
		"symptoms append": {
			base:  &entry.Draft{Symptoms: []entry.Symptom{cramps}},
			patch: &entry.Draft{Symptoms: []entry.Symptom{bloat}},
			want:  &entry.Draft{Symptoms: []entry.Symptom{cramps, bloat}},
		},
		"manual tag wins": {
			base:  &entry.Draft{Food: "Tee", Tag: entry.TagMeal},
			patch: &entry.Draft{Tag: entry.TagHistory, TagManual: true},
			want:  &entry.Draft{Food: "Tee", Tag: entry.TagHistory, TagManual: true},
		},
		"portion replaces": {
			base:  &entry.Draft{Food: "Reis", Portion: &entry.Portion{Size: entry.SizeSmall}},
			patch: &entry.Draft{Portion: &entry.Portion{Size: entry.SizeLarge}},
			want:  &entry.Draft{Food: "Reis", Portion: &entry.Portion{Size: entry.SizeLarge}},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Merge(tc.base, tc.patch)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeLeavesBaseAlone(t *testing.T) {
	base := &entry.Draft{Food: "Reis", Symptoms: []entry.Symptom{{Text: "Übelkeit"}}}
	_ = Merge(base, &entry.Draft{Food: "Nudeln", Symptoms: []entry.Symptom{{Text: "Krämpfe"}}})

	if base.Food != "Reis" || len(base.Symptoms) != 1 {
		t.Fatalf("base changed: %+v", base)
	}
}
