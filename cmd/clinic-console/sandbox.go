package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/speedmed/clinic-console/internal/platform/sandbox"
)

func sandboxCmd(a *app) *cobra.Command {
	var (
		port string
		seed bool
		cfg  = sandbox.DefaultSeedConfig()
	)
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve an in-memory clinic API for demos and local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.SandboxPort
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.SandboxSeed
			}
			return runSandbox(a, port, seed, cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "8000", "listen port (default SANDBOX_PORT)")
	cmd.Flags().BoolVar(&seed, "seed", true, "load generated data on start (default SANDBOX_SEED)")
	cmd.Flags().IntVar(&cfg.PatientCount, "patients", cfg.PatientCount, "patients to generate")
	cmd.Flags().IntVar(&cfg.DoctorCount, "doctors", cfg.DoctorCount, "doctors to generate")
	cmd.Flags().Int64Var(&cfg.Seed, "random-seed", cfg.Seed, "random seed; 0 picks one from the clock")
	return cmd
}

func runSandbox(a *app, port string, seed bool, cfg sandbox.SeedConfig) error {
	logger := a.logger.With().Str("component", "sandbox").Logger()

	store := sandbox.NewStore()
	if seed {
		res, err := sandbox.NewSeeder(store, cfg).Generate()
		if err != nil {
			return err
		}
		logger.Info().
			Int("patients", res.Patients).
			Int("doctors", res.Doctors).
			Int("appointments", res.Appointments).
			Dur("duration", res.Duration).
			Msg("sandbox seeded")
	}

	e := sandbox.NewServer(logger, store)
	go func() {
		addr := ":" + port
		logger.Info().Str("addr", addr).Msg("starting sandbox")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("sandbox failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down sandbox")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info().Msg("sandbox stopped")
	return nil
}
