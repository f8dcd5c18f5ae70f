package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/format"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/proxy"
)

var (
	peeringResourceGroup string
	peeringRefresh       bool
)

var peeringReportCmd = &cobra.Command{
	Use:   "peering-report SUBSCRIPTION",
	Short: "Report VNet peering relationships in a subscription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		pairs, err := svc.PeeringReport(context.Background(), args[0], peeringResourceGroup, peeringRefresh)
		if err != nil {
			return err
		}
		summary := proxy.SummarizePeerings(pairs)

		f, err := format.New(outputFormat)
		if err != nil {
			return err
		}
		var out string
		switch outputFormat {
		case format.TableFmt, format.Markdown:
			out, err = f.Format(peeringTable(pairs))
		default:
			out, err = f.Format(struct {
				Pairs   []azure.PeeringPair  `json:"peering_pairs" yaml:"peering_pairs"`
				Summary azure.PeeringSummary `json:"summary" yaml:"summary"`
			}{pairs, summary})
		}
		if err != nil {
			return err
		}
		fmt.Println(out)
		if outputFormat == format.TableFmt || outputFormat == format.Markdown {
			fmt.Printf("%d pairs, %d connected (%.1f%%), %d partially observed\n",
				summary.Total, summary.ConnectedCount, summary.ConnectivityPercentage, summary.PartialCount)
		}
		return nil
	},
}

func peeringTable(pairs []azure.PeeringPair) format.Table {
	t := format.Table{Headers: []string{"VNET1", "VNET2", "STATE 1->2", "STATE 2->1", "CONNECTED"}}
	for _, p := range pairs {
		t.Rows = append(t.Rows, []string{
			p.Vnet1Name, p.Vnet2Name, p.Vnet1ToVnet2State, p.Vnet2ToVnet1State,
			fmt.Sprintf("%t", p.Connected),
		})
	}
	return t
}

func init() {
	peeringReportCmd.Flags().StringVar(&peeringResourceGroup, "resource-group", "", "limit the report to one resource group")
	peeringReportCmd.Flags().BoolVar(&peeringRefresh, "refresh", false, "bypass the cache")
	rootCmd.AddCommand(peeringReportCmd)
}
