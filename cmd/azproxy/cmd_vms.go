package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/format"
)

var vmsRefresh bool

var vmsCmd = &cobra.Command{
	Use:   "vms SUBSCRIPTION RESOURCE-GROUP",
	Short: "List the virtual machines in a resource group",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		vms, err := svc.VirtualMachines(context.Background(), args[0], args[1], vmsRefresh)
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
			out, err = f.Format(vmTable(vms))
		default:
			out, err = f.Format(vms)
		}
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func vmTable(vms []azure.VirtualMachine) format.Table {
	t := format.Table{Headers: []string{"NAME", "LOCATION", "SIZE", "OS", "POWER"}}
	for _, vm := range vms {
		t.Rows = append(t.Rows, []string{vm.Name, vm.Location, vm.Size, vm.OSType, vm.PowerState})
	}
	return t
}

func init() {
	vmsCmd.Flags().BoolVar(&vmsRefresh, "refresh", false, "bypass the cache")
	rootCmd.AddCommand(vmsCmd)
}
