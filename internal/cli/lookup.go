package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"searchbox/internal/source"
)

func newLookupCommand(opts *options) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "lookup <text>",
		Short: "Query the product service once and print the matches",
		Long: `Send the query the custom layout search box would send for <text> and
print every product with the same layout the suggestion list uses.

  searchbox lookup "ounce cans"
  searchbox lookup --config ./dev.toml player`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.load(nil)
			if err != nil {
				return err
			}
			if width <= 0 {
				width = cfg.Search.Width
			}

			text := strings.Join(args, " ")
			remote := newRemote(cfg, cfg.Remote.BaseURL)
			if !remote.Eligible(text) {
				return fmt.Errorf("query %q is shorter than %d characters", text, remote.Threshold())
			}

			products, err := remote.Lookup(cmd.Context(), text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintf(out, "No products match %q\n", text)
				return nil
			}
			for _, p := range products {
				fmt.Fprintln(out, source.NewProductItem(p, text, width, source.DefaultProductStyles()).Render())
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "layout width (default is search.width from the config)")
	return cmd
}
