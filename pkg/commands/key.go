package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"key"},
		Short:   "Print the tags and what they mean",
		Example: `
diary tags
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			k := key.Key{Printer: s.printer(false)}
			return output.HandleError(k.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
