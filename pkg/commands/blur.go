package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/blur"
)

func addBlur(topLevel *cobra.Command) {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "blur [tag...]",
		Short: "Hide or reveal the entries of a category",
		Long: `Each tag given is toggled: entries with a blurred tag are listed without
their content. Without tags the current state is printed.`,
		Example: `
diary blur stool
diary blur --clear
`,
		ValidArgsFunction: tagCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := blur.Blur{
				Tags:    args,
				Clear:   clearAll,
				Diary:   s.diary,
				Printer: s.printer(false),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Reveal every category first.")
	topLevel.AddCommand(cmd)
}
