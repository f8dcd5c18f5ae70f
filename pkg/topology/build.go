package topology

import (
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// Machine is one virtual machine's routing view: its private IPs (from
// the primary NIC) and its effective routes.
type Machine struct {
	Name   string
	IPs    []string
	Routes []azure.Route
}

// BuildGraph constructs the reachability graph from per-machine route
// sets, the gateway's IP, and the routes the gateway is configured to
// forward into the network.
//
// Construction rules, applied independently and unioned:
//  1. every machine is a node; one synthetic gateway node carries gatewayIP
//  2. machine->gateway for each VirtualNetworkGateway route
//  3. gateway->machine for each gateway route containing a machine IP
//  4. machine->machine for each VnetLocal route containing another
//     machine's IP (no self-edges)
func BuildGraph(machines []Machine, gatewayIP string, gatewayRoutes []azure.Route) *Graph {
	g := NewGraph()

	for _, m := range machines {
		g.AddNode(m.Name, m.IPs)
	}
	g.AddNode(GatewayNode, []string{gatewayIP})

	// Machine -> gateway
	for _, m := range machines {
		for _, r := range m.Routes {
			if r.NextHopType == azure.NextHopGateway {
				g.AddEdge(m.Name, GatewayNode, r.AddressPrefix)
			}
		}
	}

	// Gateway -> machine
	for _, r := range gatewayRoutes {
		for _, m := range machines {
			if anyIPInPrefix(r.AddressPrefix, m.IPs) {
				g.AddEdge(GatewayNode, m.Name, r.AddressPrefix)
			}
		}
	}

	// Machine -> machine over VnetLocal routes
	for _, m := range machines {
		for _, r := range m.Routes {
			if r.NextHopType != azure.NextHopVnetLocal {
				continue
			}
			for _, other := range machines {
				if other.Name == m.Name {
					continue
				}
				if anyIPInPrefix(r.AddressPrefix, other.IPs) {
					g.AddEdge(m.Name, other.Name, r.AddressPrefix)
				}
			}
		}
	}

	util.Debugf("Built reachability graph with %d nodes", len(g.Nodes()))
	return g
}

// anyIPInPrefix reports whether any of the IPs falls inside the prefix.
// Empty or malformed IPs never match.
func anyIPInPrefix(prefix string, ips []string) bool {
	for _, ip := range ips {
		if util.CIDRContains(prefix, ip) {
			return true
		}
	}
	return false
}
