package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"webtalk/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	v := config.New()

	load := func() (*config.Config, error) {
		return config.LoadConfig(v, configPath)
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  "Start the HTTP API. The schema of the configured store is created or updated before the server listens.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().String("addr", "", "listen address, overrides http.addr")
	bindFlag(v, "http.addr", serveCmd, "addr")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger, cleanup, err := provideLogger(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return migrate(cmd.Context(), cfg, logger)
		},
	}

	rootCmd := &cobra.Command{
		Use:           "webtalk",
		Short:         "Chat backend: users, rooms, messages and presence over HTTP",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd, migrateCmd)

	return rootCmd
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, cleanup, err := InitializeServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return server.Run(ctx)
}
