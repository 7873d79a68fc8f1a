package cli

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/textboard/textboard/internal/config"
	"github.com/textboard/textboard/internal/httpapi"
)

// NewServeCommand creates the serve command: run the HTTP server.
//
// Settings come from an optional yaml config file; flags set explicitly on
// the command line win over file values.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	var (
		configPath string
		listen     string
		logdir     string
		db         string
	)

	cmd := &cobra.Command{
		Use:           "serve",
		Short:         "Serve discovery and rendered text records over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return WrapExitError(ExitCommandError, "load config", err)
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("logdir") {
				cfg.Logdir = logdir
				cfg.DB = ""
			}
			if cmd.Flags().Changed("db") {
				cfg.DB = db
				cfg.Logdir = ""
			}
			if err := cfg.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}

			src, closeSrc, err := openSource(cfg.Logdir, cfg.DB)
			if err != nil {
				return err
			}
			defer closeSrc()

			log := serverLogger(opts, cfg)
			srv := httpapi.New(src, log)
			log.Info().Str("listen", cfg.Listen).Msg("serving")
			if err := http.ListenAndServe(cfg.Listen, srv.Handler()); err != nil {
				return WrapExitError(ExitCommandError, "server failed", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a yaml config file")
	cmd.Flags().StringVar(&listen, "listen", config.Default().Listen, "HTTP listen address")
	cmd.Flags().StringVar(&logdir, "logdir", "", "root directory of recorded runs")
	cmd.Flags().StringVar(&db, "db", "", "path to a sqlite event store")
	return cmd
}

func serverLogger(opts *RootOptions, cfg config.Config) zerolog.Logger {
	log := newLogger(opts)
	if opts.Verbose {
		return log // -v wins
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		log = log.Level(level)
	}
	return log
}
