package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"searchbox/internal/catalog"
	"searchbox/internal/eventbus"
	"searchbox/internal/logging"
)

func newCatalogCommand(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Serve the local product catalog",
		Long: `Serve the demo product catalog over HTTP until interrupted.

The catalog answers the OData product queries the custom layout search box
sends, so the demo can run without network access:

  searchbox catalog --addr 127.0.0.1:8642
  SEARCHBOX_REMOTE_BASE_URL=http://127.0.0.1:8642 searchbox`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bus := eventbus.New()
			defer bus.Close()

			cfg, _, err := opts.load(bus)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Catalog.Addr
			}

			// the terminal is free here, log to stderr
			log.SetDefault(logging.New(cmd.ErrOrStderr(), levelOf(cfg.Log.Level), "catalog"))

			ctx, cancel := withSignals(cmd.Context())
			defer cancel()

			c := catalog.Seeded()
			srv := catalog.NewServer(addr, c, bus)
			if err := srv.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving %d products at %s\n", c.Len(), srv.URL())

			return srv.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default is catalog.addr from the config)")
	return cmd
}

func levelOf(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
