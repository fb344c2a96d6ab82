package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "show <entry id>",
		Short: "Show one entry in full",
		Example: `
diary show 3f2a
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := show.Show{
				Ref:     args[0],
				Diary:   s.diary,
				Printer: s.printer(true),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
