// Package testutil provides shared helpers for package tests: a fake
// provider client with overridable behavior and fixture file writers.
package testutil

import (
	"context"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// FakeClient implements azure.Client. Each method delegates to the
// corresponding function field when set and returns a not-found error
// otherwise, so tests only stub what they use.
type FakeClient struct {
	ListSubscriptionsFn            func(ctx context.Context) ([]azure.Subscription, error)
	ListResourceGroupsFn           func(ctx context.Context, sub string) ([]azure.ResourceGroup, error)
	ListVirtualMachinesFn          func(ctx context.Context, sub, rg string) ([]azure.VirtualMachineResource, error)
	GetVirtualMachineFn            func(ctx context.Context, sub, rg, name string) (azure.VirtualMachineResource, error)
	GetNetworkInterfaceFn          func(ctx context.Context, sub, rg, name string) (azure.NetworkInterface, error)
	GetNICEffectiveRoutesFn        func(ctx context.Context, sub, rg, nic string) ([]azure.Route, error)
	GetNICSubnetRoutesFn           func(ctx context.Context, sub, rg, nic string) ([]azure.Route, error)
	GetNICSecurityRulesFn          func(ctx context.Context, sub, rg, nic string) ([]azure.NsgRule, error)
	GetNICEffectiveSecurityRulesFn func(ctx context.Context, sub, rg, nic string) ([]azure.NsgRule, error)
	ListRouteTablesFn              func(ctx context.Context, sub string) ([]azure.RouteTable, error)
	GetRouteTableFn                func(ctx context.Context, sub, rg, name string) (azure.RouteTable, error)
	ListVirtualNetworksFn          func(ctx context.Context, sub, rg string) ([]azure.VirtualNetwork, error)
	GetVirtualNetworkFn            func(ctx context.Context, sub, rg, name string) (azure.VirtualNetwork, error)
}

func notFound(operation, resource string) error {
	return util.NewRequestError(operation, resource, util.ErrNotFound, nil)
}

func (c *FakeClient) ListSubscriptions(ctx context.Context) ([]azure.Subscription, error) {
	if c.ListSubscriptionsFn != nil {
		return c.ListSubscriptionsFn(ctx)
	}
	return nil, notFound("ListSubscriptions", "")
}

func (c *FakeClient) ListResourceGroups(ctx context.Context, sub string) ([]azure.ResourceGroup, error) {
	if c.ListResourceGroupsFn != nil {
		return c.ListResourceGroupsFn(ctx, sub)
	}
	return nil, notFound("ListResourceGroups", sub)
}

func (c *FakeClient) ListVirtualMachines(ctx context.Context, sub, rg string) ([]azure.VirtualMachineResource, error) {
	if c.ListVirtualMachinesFn != nil {
		return c.ListVirtualMachinesFn(ctx, sub, rg)
	}
	return nil, notFound("ListVirtualMachines", rg)
}

func (c *FakeClient) GetVirtualMachine(ctx context.Context, sub, rg, name string) (azure.VirtualMachineResource, error) {
	if c.GetVirtualMachineFn != nil {
		return c.GetVirtualMachineFn(ctx, sub, rg, name)
	}
	return azure.VirtualMachineResource{}, notFound("GetVirtualMachine", name)
}

func (c *FakeClient) GetNetworkInterface(ctx context.Context, sub, rg, name string) (azure.NetworkInterface, error) {
	if c.GetNetworkInterfaceFn != nil {
		return c.GetNetworkInterfaceFn(ctx, sub, rg, name)
	}
	return azure.NetworkInterface{}, notFound("GetNetworkInterface", name)
}

func (c *FakeClient) GetNICEffectiveRoutes(ctx context.Context, sub, rg, nic string) ([]azure.Route, error) {
	if c.GetNICEffectiveRoutesFn != nil {
		return c.GetNICEffectiveRoutesFn(ctx, sub, rg, nic)
	}
	return nil, notFound("GetNICEffectiveRoutes", nic)
}

func (c *FakeClient) GetNICSubnetRoutes(ctx context.Context, sub, rg, nic string) ([]azure.Route, error) {
	if c.GetNICSubnetRoutesFn != nil {
		return c.GetNICSubnetRoutesFn(ctx, sub, rg, nic)
	}
	return nil, notFound("GetNICSubnetRoutes", nic)
}

func (c *FakeClient) GetNICSecurityRules(ctx context.Context, sub, rg, nic string) ([]azure.NsgRule, error) {
	if c.GetNICSecurityRulesFn != nil {
		return c.GetNICSecurityRulesFn(ctx, sub, rg, nic)
	}
	return nil, notFound("GetNICSecurityRules", nic)
}

func (c *FakeClient) GetNICEffectiveSecurityRules(ctx context.Context, sub, rg, nic string) ([]azure.NsgRule, error) {
	if c.GetNICEffectiveSecurityRulesFn != nil {
		return c.GetNICEffectiveSecurityRulesFn(ctx, sub, rg, nic)
	}
	return nil, notFound("GetNICEffectiveSecurityRules", nic)
}

func (c *FakeClient) ListRouteTables(ctx context.Context, sub string) ([]azure.RouteTable, error) {
	if c.ListRouteTablesFn != nil {
		return c.ListRouteTablesFn(ctx, sub)
	}
	return nil, notFound("ListRouteTables", sub)
}

func (c *FakeClient) GetRouteTable(ctx context.Context, sub, rg, name string) (azure.RouteTable, error) {
	if c.GetRouteTableFn != nil {
		return c.GetRouteTableFn(ctx, sub, rg, name)
	}
	return azure.RouteTable{}, notFound("GetRouteTable", name)
}

func (c *FakeClient) ListVirtualNetworks(ctx context.Context, sub, rg string) ([]azure.VirtualNetwork, error) {
	if c.ListVirtualNetworksFn != nil {
		return c.ListVirtualNetworksFn(ctx, sub, rg)
	}
	return nil, notFound("ListVirtualNetworks", sub)
}

func (c *FakeClient) GetVirtualNetwork(ctx context.Context, sub, rg, name string) (azure.VirtualNetwork, error) {
	if c.GetVirtualNetworkFn != nil {
		return c.GetVirtualNetworkFn(ctx, sub, rg, name)
	}
	return azure.VirtualNetwork{}, notFound("GetVirtualNetwork", name)
}
