package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/export"
	"tableflip.dev/diary/pkg/runner/backup"
)

func addImport(topLevel *cobra.Command) {
	var (
		link, file string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import entries from a backup file or a share link",
		Long: `Import entries from a JSON backup or a share link.

By default the entries are merged: ones already in the diary are skipped and
link groups are renumbered so they do not collide. With --replace the diary is
replaced by the imported entries.`,
		Example: `
diary import --file diary-backup.json
diary import --link "https://diary.local/?data=..."
diary import --file diary-backup.json --replace
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := backup.Import{
				Link:    link,
				File:    file,
				Replace: replace,
				Diary:   s.diary,
				Printer: s.printer(false),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&link, "link", "", "Share link to import.")
	cmd.Flags().StringVar(&file, "file", "", "JSON backup file to import.")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the diary instead of merging.")

	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the diary as a JSON backup or a printable report",
		Example: `
diary export --out diary-backup.json
diary export --format text --out diary.txt
diary export --format text | lp
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return output.HandleError(err)
			}
			s, err := openSession(cmd.Context())
			if err != nil {
				return output.HandleError(err)
			}
			defer s.close()

			r := backup.Export{
				Format:  f,
				Out:     out,
				Stdout:  cmd.OutOrStdout(),
				Diary:   s.diary,
				Printer: s.printer(false),
			}
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatJSON), "Export format: json or text.")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout.")

	topLevel.AddCommand(cmd)
}
