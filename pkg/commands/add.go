package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/images"
	"tableflip.dev/diary/pkg/prompt"
	"tableflip.dev/diary/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	var fromDraft bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a meal, stool, supplement or symptoms",
		Example: `
diary add --food Pizza
diary add -f "Milchreis" -S "Bauchschmerzen@30m#2" -S "Blähungen@2h"
diary add -f "Stuhl: normal"
diary add -f Brot --img teller.jpg --portion custom:120
diary add --from-draft
diary add -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fromDraft && (eo.Food != "" || len(eo.Symptoms) > 0) {
				return output.HandleError(errors.New("--from-draft can not be combined with --food or --symptom"))
			}
			draft, err := eo.Draft()
			if err != nil {
				return output.HandleError(err)
			}
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := add.Add{
				Draft:     draft,
				FromDraft: fromDraft,
				Comment:   eo.Comment,
				Images:    eo.Images,
				Encoder:   images.Encoder{Log: s.log},
				Diary:     s.diary,
				Printer:   s.printer(io.ShowID),
			}
			if i.Interactive {
				r.Asker = &prompt.Prompt{}
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	cmd.Flags().BoolVar(&fromDraft, "from-draft", false, "Add the stored draft and clear it.")

	topLevel.AddCommand(cmd)
}
