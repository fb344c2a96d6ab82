package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/linking"
	"tableflip.dev/diary/pkg/prompt"
	"tableflip.dev/diary/pkg/runner/link"
)

func addLink(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	var (
		cancel   bool
		join     int
		newGroup bool
	)

	cmd := &cobra.Command{
		Use:   "link [entry id] [entry id]",
		Short: "Link entries of one day",
		Long: `Link entries of the same day into a group, like clicking their link buttons.

With one id the link control of that entry is clicked: an unlinked entry starts
a pending link that the next call completes, the origin again cancels it, an
entry of another day aborts it. Clicking a linked entry takes it out of its
group; a pair is dissolved after confirmation.

With two ids both are linked in one go. Without ids the pending link is shown.

When the day already has groups, the first entry can join one of them (--join)
or start a new one (--new); with --interactive you are asked.`,
		Example: `
diary link 3f2a 9b41
diary link 3f2a
diary link 9b41
diary link 3f2a --join 2
diary link --cancel
`,
		Args:              cobra.MaximumNArgs(2),
		ValidArgsFunction: entryCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cancel && len(args) > 0 {
				return output.HandleError(errors.New("--cancel takes no entry ids"))
			}
			if newGroup && join > 0 {
				return output.HandleError(errors.New("--join and --new are exclusive"))
			}
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := link.Link{
				Refs:    args,
				Cancel:  cancel,
				Yes:     i.Yes,
				Diary:   s.diary,
				Printer: s.printer(io.ShowID),
			}
			switch {
			case join > 0:
				c := linking.Join(join)
				r.Choice = &c
			case newGroup:
				c := linking.NewGroup
				r.Choice = &c
			}
			if i.Interactive {
				r.Chooser = &prompt.Prompt{}
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&cancel, "cancel", false, "Abandon the pending link.")
	cmd.Flags().IntVar(&join, "join", 0, "Join this existing group of the day.")
	cmd.Flags().BoolVar(&newGroup, "new", false, "Start a new group even if the day has groups.")
	options.InteractiveArgs(cmd, i)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
