package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	dictionary "github.com/mozilla/glean-dictionary"
)

// defaultConfigFile is read when --config is not given and the file exists.
const defaultConfigFile = "dictctl.toml"

type cli struct {
	configPath string
	store      string
	logLevel   string
	logFormat  string
	logFile    string

	cfg    Config
	logger *dictionary.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "dictctl",
		Short:         "Import, search and rank data dictionary catalogs",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.closer != nil {
				return c.closer.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "TOML config file (default ./"+defaultConfigFile+" if present)")
	flags.StringVar(&c.store, "store", "", "snapshot store: local:<dir>, memory:, s3://<bucket>/<prefix>, minio://<endpoint>/<bucket>/<prefix>")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&c.logFile, "log-file", "", "write logs to a rotated file instead of stderr")

	root.AddCommand(
		newImportCmd(c),
		newSearchCmd(c),
		newExpiringCmd(c),
		newRankCmd(c),
		newAppsCmd(c),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	path := c.configPath
	if path == "" && fileExists(defaultConfigFile) {
		path = defaultConfigFile
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store = c.store
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = c.logFormat
	}
	if flags.Changed("log-file") {
		cfg.Log.File = c.logFile
	}

	logger, closer, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	c.closer = closer
	return nil
}

// open builds a Dictionary over the configured store. extra options are
// applied last.
func (c *cli) open(ctx context.Context, extra ...dictionary.Option) (*dictionary.Dictionary, error) {
	store, err := c.cfg.OpenStore(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := c.cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, dictionary.WithStore(store), dictionary.WithLogger(c.logger))
	return dictionary.New(append(opts, extra...)...)
}
