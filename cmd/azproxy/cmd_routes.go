package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/format"
)

var routesRefresh bool

var routesCmd = &cobra.Command{
	Use:   "routes SUBSCRIPTION RESOURCE-GROUP VM",
	Short: "Show the effective routes of a virtual machine",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		routes, err := svc.VMEffectiveRoutes(context.Background(), args[0], args[1], args[2], routesRefresh)
		if err != nil {
			return err
		}
		f, err := format.New(outputFormat)
		if err != nil {
			return err
		}
		var out string
		switch outputFormat {
		case format.TableFmt, format.Markdown:
			out, err = f.Format(routeTable(routes))
		default:
			out, err = f.Format(routes)
		}
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func routeTable(routes []azure.Route) format.Table {
	t := format.Table{Headers: []string{"PREFIX", "NEXT HOP", "NEXT HOP IP", "ORIGIN"}}
	for _, r := range routes {
		t.Rows = append(t.Rows, []string{r.AddressPrefix, r.NextHopType, r.NextHopIP, r.Origin})
	}
	return t
}

func init() {
	routesCmd.Flags().BoolVar(&routesRefresh, "refresh", false, "bypass the cache")
	rootCmd.AddCommand(routesCmd)
}
