package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/app"
	"tableflip.dev/diary/pkg/entry"
)

// ListOptions
type ListOptions struct {
	Search string
	Limit  int
	Order  string
	Watch  bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show entries whose food, comment, symptoms or date contain the text.")
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", 0,
		"Show at most this many entries (default: page-size from config).")
	cmd.Flags().StringVar(&o.Order, "order", string(entry.OrderChronological),
		"Order entries by 'chrono' or 'category'.")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Redraw whenever the diary changes.")
}

// Query builds the app query; pageSize is used when no limit is set.
func (o *ListOptions) Query(pageSize int) (app.Query, error) {
	order, err := entry.ParseOrder(o.Order)
	if err != nil {
		return app.Query{}, err
	}
	limit := o.Limit
	if limit == 0 {
		limit = pageSize
	}
	return app.Query{Search: o.Search, Limit: limit, Order: order}, nil
}
