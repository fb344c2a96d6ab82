package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/prompt"
	"tableflip.dev/diary/pkg/runner/strike"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "delete <entry id>",
		Aliases: []string{"rm", "strike"},
		Short:   "Delete an entry",
		Long: `Delete an entry. If it was one of a linked pair, the pair is dissolved;
a larger group keeps its other members.`,
		Example: `
diary delete 3f2a
diary delete 3f2a -i
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := strike.Strike{
				Ref:     args[0],
				Yes:     i.Yes,
				Diary:   s.diary,
				Printer: s.printer(io.ShowID),
			}
			if i.Interactive {
				r.Confirmer = &prompt.Prompt{}
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
