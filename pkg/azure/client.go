package azure

import "context"

// VirtualMachineResource is the raw VM shape returned by the provider,
// carrying NIC references that still need resolving.
type VirtualMachineResource struct {
	VirtualMachine
	NetworkInterfaceIDs []string `json:"network_interface_ids"`
}

// Client is the upstream provider collaborator. Every call may fail with
// one of the util sentinel kinds (ErrNotFound, ErrUnauthorized,
// ErrTransient, ErrParse) wrapped in a util.RequestError.
//
// Implementations must be safe for concurrent use; the proxy bounds
// simultaneous in-flight calls with a shared limiter.
type Client interface {
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	ListResourceGroups(ctx context.Context, subscriptionID string) ([]ResourceGroup, error)

	ListVirtualMachines(ctx context.Context, subscriptionID, resourceGroup string) ([]VirtualMachineResource, error)
	GetVirtualMachine(ctx context.Context, subscriptionID, resourceGroup, name string) (VirtualMachineResource, error)
	GetNetworkInterface(ctx context.Context, subscriptionID, resourceGroup, name string) (NetworkInterface, error)

	// GetNICEffectiveRoutes calls the effective route table API for a NIC.
	GetNICEffectiveRoutes(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]Route, error)
	// GetNICSubnetRoutes reads the route table attached to the NIC's subnet.
	GetNICSubnetRoutes(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]Route, error)
	// GetNICSecurityRules reads rules from the NSG attached to the NIC.
	GetNICSecurityRules(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]NsgRule, error)
	// GetNICEffectiveSecurityRules calls the effective NSG API for a NIC.
	GetNICEffectiveSecurityRules(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]NsgRule, error)

	ListRouteTables(ctx context.Context, subscriptionID string) ([]RouteTable, error)
	GetRouteTable(ctx context.Context, subscriptionID, resourceGroup, name string) (RouteTable, error)

	// ListVirtualNetworks enumerates VNets; resourceGroup may be empty for
	// a subscription-wide listing.
	ListVirtualNetworks(ctx context.Context, subscriptionID, resourceGroup string) ([]VirtualNetwork, error)
	GetVirtualNetwork(ctx context.Context, subscriptionID, resourceGroup, name string) (VirtualNetwork, error)
}
