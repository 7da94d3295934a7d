package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/speedmed/clinic-console/internal/config"
	"github.com/speedmed/clinic-console/internal/console"
	"github.com/speedmed/clinic-console/internal/platform/form"
	"github.com/speedmed/clinic-console/internal/platform/gateway"
	"github.com/speedmed/clinic-console/internal/platform/telemetry"
	"github.com/speedmed/clinic-console/internal/platform/view"
	"github.com/speedmed/clinic-console/pkg/datetime"
)

var version = "dev"

// app is built once per invocation, before any subcommand runs.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	client   *gateway.Client
	console  *console.Console
	term     *view.Terminal
	shutdown func(context.Context) error
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !reported(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// reported tells whether err was already shown to the user by the gateway
// or a form.
func reported(err error) bool {
	var ve *form.ValidationError
	return gateway.Notified(err) || errors.As(err, &ve)
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		apiURL    string
		assumeYes bool
	)

	root := &cobra.Command{
		Use:           "clinic-console",
		Short:         "Administrative console for the clinic API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if apiURL != "" {
				cfg.APIBaseURL = apiURL
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg)

			a.shutdown, err = telemetry.Setup(cmd.Context(), telemetry.Config{
				ServiceName:    cfg.ServiceName,
				ServiceVersion: version,
				Endpoint:       cfg.OTELEndpoint,
			})
			if err != nil {
				return fmt.Errorf("telemetry: %w", err)
			}

			dates, err := datetime.NewDisplay(cfg.DisplayTimezone)
			if err != nil {
				return err
			}
			a.term = view.NewTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmd.InOrStdin(), assumeYes)
			a.client = gateway.New(cfg.APIBaseURL,
				gateway.WithNotifier(a.term),
				gateway.WithLogger(a.logger),
				gateway.WithTimeout(cfg.HTTPTimeout),
			)
			a.console = console.New(a.client, a.term, dates, a.logger)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(context.Background())
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides API_BASE_URL)")
	root.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to every confirmation")

	root.AddCommand(openCmd(a))
	root.AddCommand(shellCmd(a))
	root.AddCommand(reportsCmd(a))
	for _, e := range entities {
		root.AddCommand(entityCmd(a, e))
	}
	root.AddCommand(sandboxCmd(a))
	return root
}

func newLogger(w io.Writer, cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.Level())
}

func openCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open [panel]",
		Short: "Show a panel, loading its data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := console.Home
			if len(args) == 1 {
				var err error
				if p, err = console.ParsePanel(args[0]); err != nil {
					return err
				}
			}
			return a.console.Router.Show(cmd.Context(), p)
		},
	}
}

func reportsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reports",
		Short: "Load and print the eight aggregate reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.console.Router.Show(cmd.Context(), console.Reports)
		},
	}
}
