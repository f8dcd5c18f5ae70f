// Azproxy - Azure network facts CLI
//
// Client tooling over the same resource service the proxy server uses:
//
//	azproxy connectivity -s vm1 -d vm3 -f ./data      # reachability check
//	azproxy peering-report <subscription> -o table    # VNet peering report
//	azproxy vms <subscription> <resource-group>       # VM listing
//	azproxy routes <subscription> <rg> <vm>           # effective routes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/config"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/limiter"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/proxy"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

var (
	configPath   string
	outputFormat string
	verbose      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "azproxy",
	Short:         "Azure network facts CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			return util.SetLogLevel("debug")
		}
		return nil
	},
}

// newService builds the resource service from the loaded config.
func newService() (*proxy.Service, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	store, err := cache.New(cfg.Cache.Type, cfg.Cache.RedisURL, cfg.Cache.RedisPrefix)
	if err != nil {
		return nil, err
	}
	if cfg.Provider.FixturesDir == "" {
		return nil, fmt.Errorf("provider.fixtures_dir must be set (no live credential support in this build)")
	}
	client := azure.NewFixtureClient(cfg.Provider.FixturesDir)
	return proxy.New(client, store, limiter.New(cfg.Provider.MaxConcurrency), cfg.Cache.TTL), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json", "output format: json, yaml, table, markdown")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
