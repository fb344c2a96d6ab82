package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/printers"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(diary completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(diary completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// entryCompletions offers short ids of entries, newest first, described by
// date and title.
func entryCompletions(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := openSession(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer s.close()

	all := s.diary.Entries()
	out := make([]string, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		id := printers.ShortID(e.ID)
		if !strings.HasPrefix(id, toComplete) {
			continue
		}
		out = append(out, id+"\t"+e.Date+" "+e.Title())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func tagCompletions(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	tags := entry.Tags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
