package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/format"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/topology"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

var (
	connSource     string
	connDest       string
	connDataFolder string
	connGatewayIP  string
	connRoutesFile string
)

var connectivityCmd = &cobra.Command{
	Use:   "connectivity",
	Short: "Check network connectivity between two virtual machines",
	Long: `Builds a reachability graph from exported machine route data and
reports whether the source machine can reach the destination, with the
hop sequence when it can.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !util.IsValidIPv4(connGatewayIP) {
			return fmt.Errorf("invalid gateway IP %q", connGatewayIP)
		}

		machines, err := topology.LoadMachines(connDataFolder)
		if err != nil {
			return fmt.Errorf("loading machine data: %w", err)
		}
		if len(machines) == 0 {
			return fmt.Errorf("no machine data found in %s", connDataFolder)
		}

		gatewayRoutes := topology.LoadGatewayRoutes(connRoutesFile)
		result := topology.CheckConnectivity(machines, connGatewayIP, gatewayRoutes, connSource, connDest)

		if outputFormat == "json" || outputFormat == "yaml" {
			f, err := format.New(outputFormat)
			if err != nil {
				return err
			}
			out, err := f.Format(result)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}

		if !result.Reachable {
			fmt.Println("No connectivity path found between the specified machines.")
			return nil
		}
		fmt.Println("Connectivity confirmed. Path:")
		for _, hop := range result.Path {
			fmt.Printf("Hop %d: %s | IPs: %s\n", hop.Hop, hop.Node, strings.Join(hop.IPs, ", "))
		}
		return nil
	},
}

func init() {
	connectivityCmd.Flags().StringVarP(&connSource, "source-vm", "s", "", "source machine name")
	connectivityCmd.Flags().StringVarP(&connDest, "destination-vm", "d", "", "destination machine name")
	connectivityCmd.Flags().StringVarP(&connDataFolder, "folder", "f", "", "path to machine data folder")
	connectivityCmd.Flags().StringVarP(&connGatewayIP, "gateway-ip", "g", topology.DefaultGatewayIP, "virtual network gateway IP")
	connectivityCmd.Flags().StringVarP(&connRoutesFile, "routes-file", "r", "", "path to gateway routes JSON file")
	_ = connectivityCmd.MarkFlagRequired("source-vm")
	_ = connectivityCmd.MarkFlagRequired("destination-vm")
	_ = connectivityCmd.MarkFlagRequired("folder")
	rootCmd.AddCommand(connectivityCmd)
}
