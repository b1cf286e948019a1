// Package cli provides the searchbox command line.
//
// Configuration is layered, highest priority first:
//
//	1. flags (--log-level)
//	2. SEARCHBOX_<SECTION>_<OPTION> environment variables, e.g. SEARCHBOX_REMOTE_BASE_URL
//	3. the config file (--config, SEARCHBOX_CONFIG_FILE, or searchbox.toml in the user config directory)
//	4. built-in defaults
package cli

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"searchbox/internal/config"
	"searchbox/internal/eventbus"
)

// options holds the persistent flags shared by every command.
type options struct {
	cfgFile  string
	logLevel string
	v        *viper.Viper
}

// NewRootCommand builds the command tree. Running the root command starts
// the demo.
func NewRootCommand() *cobra.Command {
	opts := &options{v: viper.New()}

	var localCatalog bool

	rootCmd := &cobra.Command{
		Use:   "searchbox",
		Short: "Autocomplete search box demo",
		Long: `searchbox shows two autocomplete search boxes in the terminal.

The first filters a fixed list of names as you type. The second queries an
OData product service once the query is long enough and shows each product
with its price and description.

Quick Start:
  searchbox                       Run the demo against the public OData service
  searchbox --local-catalog       Run the demo against a catalog served in-process
  searchbox catalog               Serve the product catalog on its own
  searchbox lookup "ounce"        Query the product service once
  searchbox config init           Write the default config file`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts, localCatalog)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is searchbox.toml in the user config directory, can also use SEARCHBOX_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	_ = opts.v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.Flags().BoolVar(&localCatalog, "local-catalog", false, "serve the product catalog in-process and search it instead of the remote service")

	rootCmd.AddCommand(
		newCatalogCommand(opts),
		newConfigCommand(opts),
		newLookupCommand(opts),
	)

	return rootCmd
}

// Execute runs the command line and returns its error.
func Execute() error {
	return NewRootCommand().Execute()
}

// configPath resolves the config file location.
func (o *options) configPath() string {
	if o.cfgFile != "" {
		return o.cfgFile
	}
	if env := os.Getenv(config.EnvPrefix + "_CONFIG_FILE"); env != "" {
		return env
	}
	return config.DefaultPath()
}

// load reads the configuration. bus may be nil.
func (o *options) load(bus eventbus.EventBus) (*config.Config, config.ConfigService, error) {
	svc := config.NewConfigServiceWithBus(o.v, o.configPath(), bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	log.Debug("config loaded", "path", svc.Path())
	return cfg, svc, nil
}
