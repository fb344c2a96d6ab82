package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/report"
	"tableflip.dev/diary/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarise symptoms and categories of a time window",
		Long: `Report counts the entries of the window per tag and lists every symptom
with how often it occurred, its strongest rating, its average onset and the
meals it followed.`,
		Example: `
diary report
diary report --last 3d
diary report --last 1w2d
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := report.Report{
				Window:  last,
				Diary:   s.diary,
				Printer: s.printer(false),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "Time window to include (for example 3d, 1w).")
	topLevel.AddCommand(cmd)
}
