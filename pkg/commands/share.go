package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/share"
)

func addShare(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that carries the whole diary",
		Long: `Print a share link. The diary is compressed into the link itself, so
anyone who opens it can import the entries with "diary import --link".

The link base comes from share-base in .diary.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := share.Share{
				Base:  s.cfg.ShareBase,
				Out:   cmd.OutOrStdout(),
				Diary: s.diary,
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
