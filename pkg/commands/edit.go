package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/images"
	"tableflip.dev/diary/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var (
		food, comment, date, portion, tag string
		autoTag                           bool
		addSymptoms, addImages            []string
		removeSymptoms, removeImages      []int
	)

	cmd := &cobra.Command{
		Use:   "edit <entry id>",
		Short: "Change an entry",
		Long: `Change fields of an entry. Only the flags given are changed.

Moving a linked entry to another day takes it out of its group. The tag is
derived from food and symptoms again unless it was pinned with --tag.`,
		Example: `
diary edit 3f2a --food "Pizza Margherita"
diary edit 3f2a --date "02.05.2024 19:30"
diary edit 3f2a --add-symptom "Übelkeit@1h#3" --remove-symptom 0
diary edit 3f2a --tag history
diary edit 3f2a --auto-tag
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := edit.Edit{
				Ref:            args[0],
				Tag:            tag,
				AutoTag:        autoTag,
				AddSymptoms:    addSymptoms,
				RemoveSymptoms: removeSymptoms,
				AddImages:      addImages,
				RemoveImages:   removeImages,
				Encoder:        images.Encoder{Log: s.log},
				Diary:          s.diary,
				Printer:        s.printer(io.ShowID),
			}
			flags := cmd.Flags()
			if flags.Changed("food") {
				r.Food = &food
			}
			if flags.Changed("comment") {
				r.Comment = &comment
			}
			if flags.Changed("date") {
				r.Date = &date
			}
			if flags.Changed("portion") {
				r.Portion = &portion
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&food, "food", "f", "", "New food text.")
	flags.StringVarP(&comment, "comment", "c", "", "New comment; empty clears it.")
	flags.StringVarP(&date, "date", "d", "", `New date as "DD.MM.YYYY HH:MM" or "YYYY-MM-DDTHH:MM".`)
	flags.StringVarP(&portion, "portion", "p", "", "Portion S, M, L or custom:<grams>; empty clears it.")
	flags.StringVarP(&tag, "tag", "t", "", "Pin this tag.")
	flags.BoolVar(&autoTag, "auto-tag", false, "Derive the tag from food and symptoms again.")
	flags.StringArrayVarP(&addSymptoms, "add-symptom", "S", nil, "Append a symptom as text[@onset][#strength]. Repeatable.")
	flags.IntSliceVar(&removeSymptoms, "remove-symptom", nil, "Remove the symptom at this index (see diary show). Repeatable.")
	flags.StringArrayVar(&addImages, "img", nil, "Attach a photo. Repeatable.")
	flags.IntSliceVar(&removeImages, "remove-img", nil, "Remove the image at this index. Repeatable.")
	options.AddShowIDArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("tag", tagCompletions)

	topLevel.AddCommand(cmd)
}
