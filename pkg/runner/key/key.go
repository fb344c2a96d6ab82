// Package key prints the tag legend.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/printers"
)

// Key prints the tags in category order with their meaning and whether
// they are blurred.
type Key struct {
	Printer printers.PrettyPrint
}

// Do renders the legend to stdout.
func (k *Key) Do(_ context.Context) error {
	_, _ = fmt.Fprintln(color.Output, "")
	k.Printer.Legend()
	_, _ = fmt.Fprintln(color.Output, "")
	return nil
}
