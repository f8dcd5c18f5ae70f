// Azproxyd - Azure Resource Manager proxy server
//
// Serves a cached REST facade over Azure subscriptions, resource groups,
// virtual machines, route tables and virtual networks, plus derived
// network facts (effective routes, VNet peering report).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/config"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/limiter"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/proxy"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/server"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "azproxyd",
	Short:         "Azure Resource Manager proxy server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST facade",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if err := util.SetLogLevel(cfg.Logging.Level); err != nil {
			return err
		}
		if cfg.Logging.Format == "json" {
			util.SetJSONFormat()
		}

		store, err := cache.New(cfg.Cache.Type, cfg.Cache.RedisURL, cfg.Cache.RedisPrefix)
		if err != nil {
			return err
		}
		lim := limiter.New(cfg.Provider.MaxConcurrency)
		if cfg.Provider.FixturesDir == "" {
			return fmt.Errorf("provider.fixtures_dir must be set (no live credential support in this build)")
		}
		client := azure.NewFixtureClient(cfg.Provider.FixturesDir)
		service := proxy.New(client, store, lim, cfg.Cache.TTL)

		srv := server.New(cfg, service)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			util.Infof("Received %s, shutting down", sig)
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(serveCmd)
}
