package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// FixtureClient serves provider responses from a directory of JSON
// fixtures. It backs local development and tests the same way a mock
// service would: a missing file is a NotFound, a malformed file is a
// ParseError.
//
// Layout under the fixtures root:
//
//	subscriptions.json
//	{sub}/resource_groups.json
//	{sub}/route_tables.json
//	{sub}/virtual_networks.json
//	{sub}/{rg}/virtual_machines.json
//	{sub}/{rg}/vm_{name}.json
//	{sub}/{rg}/nic_{name}.json
//	{sub}/{rg}/nic_{name}_routes.json
//	{sub}/{rg}/nic_{name}_subnet_routes.json
//	{sub}/{rg}/nic_{name}_rules.json
//	{sub}/{rg}/nic_{name}_effective_rules.json
//	{sub}/{rg}/routetable_{name}.json
//	{sub}/{rg}/vnet_{name}.json
type FixtureClient struct {
	root string
}

// NewFixtureClient creates a fixture-backed provider client.
func NewFixtureClient(root string) *FixtureClient {
	util.Infof("Using fixture provider client with root %s", root)
	return &FixtureClient{root: root}
}

func loadFixture[T any](c *FixtureClient, operation string, elems ...string) (T, error) {
	var out T
	path := filepath.Join(append([]string{c.root}, elems...)...)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, util.NewRequestError(operation, path, util.ErrNotFound, err)
		}
		return out, util.NewRequestError(operation, path, util.ErrTransient, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, util.NewRequestError(operation, path, util.ErrParse, err)
	}
	return out, nil
}

func (c *FixtureClient) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	return loadFixture[[]Subscription](c, "list subscriptions", "subscriptions.json")
}

func (c *FixtureClient) ListResourceGroups(ctx context.Context, subscriptionID string) ([]ResourceGroup, error) {
	return loadFixture[[]ResourceGroup](c, "list resource groups", subscriptionID, "resource_groups.json")
}

func (c *FixtureClient) ListVirtualMachines(ctx context.Context, subscriptionID, resourceGroup string) ([]VirtualMachineResource, error) {
	return loadFixture[[]VirtualMachineResource](c, "list virtual machines", subscriptionID, resourceGroup, "virtual_machines.json")
}

func (c *FixtureClient) GetVirtualMachine(ctx context.Context, subscriptionID, resourceGroup, name string) (VirtualMachineResource, error) {
	return loadFixture[VirtualMachineResource](c, "get virtual machine", subscriptionID, resourceGroup, fmt.Sprintf("vm_%s.json", name))
}

func (c *FixtureClient) GetNetworkInterface(ctx context.Context, subscriptionID, resourceGroup, name string) (NetworkInterface, error) {
	return loadFixture[NetworkInterface](c, "get network interface", subscriptionID, resourceGroup, fmt.Sprintf("nic_%s.json", name))
}

func (c *FixtureClient) GetNICEffectiveRoutes(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]Route, error) {
	return loadFixture[[]Route](c, "get effective routes", subscriptionID, resourceGroup, fmt.Sprintf("nic_%s_routes.json", nicName))
}

func (c *FixtureClient) GetNICSubnetRoutes(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]Route, error) {
	return loadFixture[[]Route](c, "get subnet routes", subscriptionID, resourceGroup, fmt.Sprintf("nic_%s_subnet_routes.json", nicName))
}

func (c *FixtureClient) GetNICSecurityRules(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]NsgRule, error) {
	return loadFixture[[]NsgRule](c, "get security rules", subscriptionID, resourceGroup, fmt.Sprintf("nic_%s_rules.json", nicName))
}

func (c *FixtureClient) GetNICEffectiveSecurityRules(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]NsgRule, error) {
	return loadFixture[[]NsgRule](c, "get effective security rules", subscriptionID, resourceGroup, fmt.Sprintf("nic_%s_effective_rules.json", nicName))
}

func (c *FixtureClient) ListRouteTables(ctx context.Context, subscriptionID string) ([]RouteTable, error) {
	return loadFixture[[]RouteTable](c, "list route tables", subscriptionID, "route_tables.json")
}

func (c *FixtureClient) GetRouteTable(ctx context.Context, subscriptionID, resourceGroup, name string) (RouteTable, error) {
	return loadFixture[RouteTable](c, "get route table", subscriptionID, resourceGroup, fmt.Sprintf("routetable_%s.json", name))
}

func (c *FixtureClient) ListVirtualNetworks(ctx context.Context, subscriptionID, resourceGroup string) ([]VirtualNetwork, error) {
	vnets, err := loadFixture[[]VirtualNetwork](c, "list virtual networks", subscriptionID, "virtual_networks.json")
	if err != nil {
		return nil, err
	}
	if resourceGroup == "" {
		return vnets, nil
	}
	filtered := make([]VirtualNetwork, 0, len(vnets))
	for _, v := range vnets {
		if v.ResourceGroup == resourceGroup || ResourceGroupFromID(v.ID, "") == resourceGroup {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

func (c *FixtureClient) GetVirtualNetwork(ctx context.Context, subscriptionID, resourceGroup, name string) (VirtualNetwork, error) {
	return loadFixture[VirtualNetwork](c, "get virtual network", subscriptionID, resourceGroup, fmt.Sprintf("vnet_%s.json", name))
}

var _ Client = (*FixtureClient)(nil)
