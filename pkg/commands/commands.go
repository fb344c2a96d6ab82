package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/diary/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "diary",
		Short: base.Wrap80("A food and symptom diary on the command line."),
		Long: base.Wrap80("Log meals, stools, supplements and the symptoms that follow them. " +
			"Entries of one day can be linked into groups, for example a meal and the cramps " +
			"an hour later. Everything is stored locally; a share link carries the whole diary."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addLink(topLevel)
	addShare(topLevel)
	addImport(topLevel)
	addExport(topLevel)
	addReport(topLevel)
	addDraft(topLevel)
	addFav(topLevel)
	addTheme(topLevel)
	addBlur(topLevel)
	addKey(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}
