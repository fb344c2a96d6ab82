package options

import (
	"github.com/spf13/cobra"
)

// InteractiveOptions
type InteractiveOptions struct {
	Interactive bool
	Yes         bool
}

func InteractiveArgs(cmd *cobra.Command, o *InteractiveOptions) {
	cmd.Flags().BoolVarP(&o.Interactive, "interactive", "i", false,
		`Prompt for choices instead of failing when one is needed.`)
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		`Answer yes to confirmations.`)
}
