package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/entry"
)

// EntryOptions are the fields of a new entry or draft.
type EntryOptions struct {
	Food     string
	Symptoms []string
	Comment  string
	Portion  string
	Tag      string
	Images   []string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVarP(&o.Food, "food", "f", "",
		`What was eaten, or "Stuhl: ..." for a stool log.`)
	cmd.Flags().StringArrayVarP(&o.Symptoms, "symptom", "S", nil,
		`Symptom as text[@onset][#strength], for example "Bauchschmerzen@30m#2". Repeatable.`)
	cmd.Flags().StringVarP(&o.Comment, "comment", "c", "",
		"Free-text comment.")
	cmd.Flags().StringVarP(&o.Portion, "portion", "p", "",
		"Portion size: S, M, L or custom:<grams>.")
	cmd.Flags().StringVarP(&o.Tag, "tag", "t", "",
		"Pin a tag instead of the derived one.")
	cmd.Flags().StringArrayVar(&o.Images, "img", nil,
		"Attach a photo (jpeg, png or gif). Repeatable.")
}

// Draft validates the flags into a draft. Images are not included; they are
// encoded separately.
func (o *EntryOptions) Draft() (*entry.Draft, error) {
	d := &entry.Draft{Food: o.Food}
	for _, s := range o.Symptoms {
		sym, err := entry.ParseSymptom(s)
		if err != nil {
			return nil, err
		}
		d.Symptoms = append(d.Symptoms, sym)
	}
	portion, err := entry.ParsePortion(o.Portion)
	if err != nil {
		return nil, err
	}
	d.Portion = portion
	if o.Tag != "" {
		t, err := entry.ParseTag(o.Tag)
		if err != nil {
			return nil, err
		}
		d.Tag = t
		d.TagManual = true
	}
	return d, nil
}
