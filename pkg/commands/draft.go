package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/runner/draft"
)

func addDraft(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Keep a half-filled entry between calls",
		Long: `The draft is the new-entry form. It survives between calls until it is
committed with "diary draft commit" or "diary add --from-draft", or cleared.`,
		Example: `
diary draft set -f Lasagne
diary draft set -S "Blähungen@1h"
diary draft
diary draft commit
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraft(cmd, draft.Show, nil)
		},
	}

	eo := &options.EntryOptions{}
	set := &cobra.Command{
		Use:   "set",
		Short: "Fill fields of the draft; symptoms are appended",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			patch, err := eo.Draft()
			if err != nil {
				return output.HandleError(err)
			}
			return runDraft(cmd, draft.Set, patch)
		},
	}
	options.AddEntryArgs(set, eo)

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraft(cmd, draft.Show, nil)
		},
	}
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Throw the draft away",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraft(cmd, draft.Clear, nil)
		},
	}
	commit := &cobra.Command{
		Use:   "commit",
		Short: "Add the draft as an entry and clear it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraft(cmd, draft.Commit, nil)
		},
	}

	cmd.AddCommand(set, show, clearCmd, commit)
	topLevel.AddCommand(cmd)
}

func runDraft(cmd *cobra.Command, action draft.Action, patch *entry.Draft) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return output.HandleError(err)
	}
	defer s.close()

	r := draft.Draft{
		Action:  action,
		Patch:   patch,
		Diary:   s.diary,
		Printer: s.printer(false),
	}
	return output.HandleError(r.Do(cmd.Context()))
}
