package main

import (
	"context"
	"fmt"
	"os"

	"memories-backend/internal/app"
	"memories-backend/internal/config"
	"memories-backend/internal/logging"
	"memories-backend/internal/store/pgstore"
	"memories-backend/internal/utils"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "memories",
		Short:         "Photo album, timeline and notes backend",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// A missing .env file is normal in production.
			if envFile != "" {
				_ = utils.LoadEnv(envFile)
			} else {
				_ = utils.LoadEnv()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve()
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default .env)")
	rootCmd.SetVersionTemplate("memories {{.Version}}\n")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply the Postgres schema and exit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "memories %s\n", version)
			},
		},
	)
	return rootCmd
}

func setup() (*config.Config, zerolog.Logger) {
	cfg := config.Load()
	return cfg, logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
}

func serve() error {
	cfg, log := setup()
	return app.Run(cfg, log)
}

func migrate(ctx context.Context) error {
	cfg, log := setup()
	switch cfg.DBDriver {
	case config.DriverPostgres, "postgresql", "pgx":
	default:
		return fmt.Errorf("migrate needs DB_DRIVER=%s, got %q", config.DriverPostgres, cfg.DBDriver)
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.DBConnectTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pgstore.Migrate(pool); err != nil {
		return err
	}
	log.Info().Msg("migrations applied")
	return nil
}
