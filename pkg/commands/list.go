package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "Show the diary grouped by day",
		Example: `
diary list
diary list --search pizza --show-id
diary list --order category --limit 100
diary list --watch
diary list --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			q, err := lo.Query(s.cfg.PageSize)
			if err != nil {
				return output.HandleError(err)
			}
			r := list.List{
				Query:   q,
				Watch:   lo.Watch,
				JSON:    output.JSON,
				Diary:   s.diary,
				Printer: s.printer(io.ShowID),
				Log:     s.log,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
