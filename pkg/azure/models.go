// Package azure defines typed models for Azure Resource Manager resources
// and the Client interface the proxy consumes. Optional provider fields are
// explicit zero-able fields, never probed dynamically.
package azure

// Subscription is an Azure subscription summary.
type Subscription struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	State       string `json:"state"`
}

// ResourceGroup is an Azure resource group.
type ResourceGroup struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Location string            `json:"location"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// NetworkInterface holds the addressing detail of one NIC.
type NetworkInterface struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	PrivateIPAddresses []string `json:"private_ip_addresses"`
	PublicIPAddresses  []string `json:"public_ip_addresses"`
}

// NsgRule is one effective network security group rule.
type NsgRule struct {
	Name      string `json:"name"`
	Direction string `json:"direction"`
	Protocol  string `json:"protocol"`
	PortRange string `json:"port_range"`
	Access    string `json:"access"`
}

// Next-hop types as reported by the effective route table API.
const (
	NextHopInternet         = "Internet"
	NextHopVnetLocal        = "VnetLocal"
	NextHopGateway          = "VirtualNetworkGateway"
	NextHopVirtualAppliance = "VirtualAppliance"
	NextHopNone             = "None"
)

// Route origins.
const (
	RouteOriginDefault = "Default"
	RouteOriginUser    = "User"
	RouteOriginUnknown = "Unknown"
)

// Route is one effective route entry. Immutable once produced for a fetch.
type Route struct {
	AddressPrefix string `json:"address_prefix"`
	NextHopType   string `json:"next_hop_type"`
	NextHopIP     string `json:"next_hop_ip,omitempty"`
	Origin        string `json:"route_origin"`
}

// Key returns the uniqueness key used for deduplication.
func (r Route) Key() string {
	return r.AddressPrefix + "|" + r.NextHopType + "|" + r.NextHopIP
}

// VirtualMachine is a VM summary.
type VirtualMachine struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Size       string `json:"vm_size"`
	OSType     string `json:"os_type,omitempty"`
	PowerState string `json:"power_state,omitempty"`
}

// VirtualMachineDetail is a VM with its resolved network facts.
type VirtualMachineDetail struct {
	VirtualMachine
	NetworkInterfaces []NetworkInterface `json:"network_interfaces"`
	EffectiveNsgRules []NsgRule          `json:"effective_nsg_rules"`
	EffectiveRoutes   []Route            `json:"effective_routes"`
}

// RouteTableSummary is a route table listing entry.
type RouteTableSummary struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Location          string `json:"location"`
	ResourceGroup     string `json:"resource_group"`
	RouteCount        int    `json:"route_count"`
	SubnetCount       int    `json:"subnet_count"`
	ProvisioningState string `json:"provisioning_state"`
	SubscriptionID    string `json:"subscription_id"`
}

// NamedRoute is a user-defined route inside a route table.
type NamedRoute struct {
	Name          string `json:"name"`
	AddressPrefix string `json:"address_prefix"`
	NextHopType   string `json:"next_hop_type"`
	NextHopIP     string `json:"next_hop_ip_address,omitempty"`
}

// RouteTable is a route table with its routes and subnet associations.
type RouteTable struct {
	ID                         string            `json:"id"`
	Name                       string            `json:"name"`
	Location                   string            `json:"location"`
	ResourceGroup              string            `json:"resource_group"`
	Routes                     []NamedRoute      `json:"routes"`
	Subnets                    []string          `json:"subnets"`
	ProvisioningState          string            `json:"provisioning_state"`
	DisableBGPRoutePropagation bool              `json:"disable_bgp_route_propagation"`
	Tags                       map[string]string `json:"tags,omitempty"`
	SubscriptionID             string            `json:"subscription_id"`
}

// Peering is one VNet's one-sided view of a peering relationship.
type Peering struct {
	ID                        string `json:"id"`
	Name                      string `json:"name"`
	RemoteVirtualNetworkID    string `json:"remote_virtual_network_id"`
	AllowVirtualNetworkAccess bool   `json:"allow_virtual_network_access"`
	AllowForwardedTraffic     bool   `json:"allow_forwarded_traffic"`
	AllowGatewayTransit       bool   `json:"allow_gateway_transit"`
	UseRemoteGateways         bool   `json:"use_remote_gateways"`
	PeeringState              string `json:"peering_state"`
	ProvisioningState         string `json:"provisioning_state"`
}

// VirtualNetwork is a VNet with its address space and peering list.
type VirtualNetwork struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	ResourceGroup string    `json:"resource_group"`
	AddressSpace  []string  `json:"address_space,omitempty"`
	Peerings      []Peering `json:"virtual_network_peerings"`
}

// Peering states reported on a reconciled pair.
const (
	PeeringStateConnected     = "Connected"
	PeeringStateUnknown       = "Unknown"
	PeeringStateNotConfigured = "NotConfigured"
)

// PeeringPair is the reconciled, bidirectional view of one physical peering
// relationship. Configuration flags come from the first-observed side; the
// two sides are not reconciled when they disagree.
type PeeringPair struct {
	PeeringID string `json:"peering_id"`

	Vnet1ID             string `json:"vnet1_id"`
	Vnet1Name           string `json:"vnet1_name"`
	Vnet1ResourceGroup  string `json:"vnet1_resource_group"`
	Vnet1SubscriptionID string `json:"vnet1_subscription_id"`
	Vnet1ToVnet2State   string `json:"vnet1_to_vnet2_state"`

	Vnet2ID             string `json:"vnet2_id"`
	Vnet2Name           string `json:"vnet2_name"`
	Vnet2ResourceGroup  string `json:"vnet2_resource_group"`
	Vnet2SubscriptionID string `json:"vnet2_subscription_id"`
	Vnet2ToVnet1State   string `json:"vnet2_to_vnet1_state"`

	AllowVirtualNetworkAccess bool   `json:"allow_virtual_network_access"`
	AllowForwardedTraffic     bool   `json:"allow_forwarded_traffic"`
	AllowGatewayTransit       bool   `json:"allow_gateway_transit"`
	UseRemoteGateways         bool   `json:"use_remote_gateways"`
	ProvisioningState         string `json:"provisioning_state"`

	Connected bool `json:"connected"`
}

// PeeringSummary aggregates a peering report.
type PeeringSummary struct {
	Total                  int     `json:"total"`
	ConnectedCount         int     `json:"connected_count"`
	PartialCount           int     `json:"partial_count"`
	ConnectivityPercentage float64 `json:"connectivity_percentage"`
}
