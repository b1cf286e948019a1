package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"searchbox/internal/config"
)

func newConfigCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCommand(opts), newConfigShowCommand(opts))
	return cmd
}

func newConfigInitCommand(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", err)
			}

			svc := config.NewConfigService(opts.v, path)
			if err := svc.SaveToPath(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// newConfigShowCommand prints the effective settings after every layer is applied.
func newConfigShowCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, svc, err := opts.load(nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", svc.Path())
			fmt.Fprintf(out, "search.placeholder      = %q\n", cfg.Search.Placeholder)
			fmt.Fprintf(out, "search.width            = %d\n", cfg.Search.Width)
			fmt.Fprintf(out, "search.query_threshold  = %d\n", cfg.Search.QueryThreshold)
			fmt.Fprintf(out, "search.debounce         = %s\n", cfg.Search.Debounce)
			fmt.Fprintf(out, "static.suggestions      = %q\n", cfg.Static.Suggestions)
			fmt.Fprintf(out, "remote.base_url         = %s\n", cfg.Remote.BaseURL)
			fmt.Fprintf(out, "remote.timeout          = %s\n", cfg.Remote.Timeout)
			fmt.Fprintf(out, "catalog.addr            = %s\n", cfg.Catalog.Addr)
			fmt.Fprintf(out, "log.file                = %s\n", cfg.Log.File)
			fmt.Fprintf(out, "log.level               = %s\n", cfg.Log.Level)
			return nil
		},
	}
}
