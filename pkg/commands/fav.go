package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/runner/fav"
)

func addFav(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "fav <add|remove|list|suggest> <food|symptom> [text]",
		Short: "Manage favourite foods and symptoms",
		Long: `Favourites are offered first when typing food or symptoms. "suggest" lists
favourites and earlier entries that fuzzily match the text.`,
		Example: `
diary fav add food Haferbrei
diary fav list symptom
diary fav suggest food hafr
diary fav rm food Haferbrei
`,
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"add", "remove", "list", "suggest"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action, err := fav.ParseAction(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			kind, err := app.ParseFavorites(args[1])
			if err != nil {
				return output.HandleError(err)
			}
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := fav.Fav{
				Action:  action,
				Kind:    kind,
				Text:    strings.Join(args[2:], " "),
				Diary:   s.diary,
				Printer: s.printer(false),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
