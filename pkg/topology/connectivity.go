package topology

import "github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"

// ConnectivityResult is the answer to one reachability query.
type ConnectivityResult struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Reachable   bool   `json:"reachable"`
	Path        []Hop  `json:"path"`
}

// CheckConnectivity builds a fresh graph from the given route data and
// answers whether src can reach dst. Every query recomputes the graph;
// nothing is shared or retained between queries.
func CheckConnectivity(machines []Machine, gatewayIP string, gatewayRoutes []azure.Route, src, dst string) ConnectivityResult {
	g := BuildGraph(machines, gatewayIP, gatewayRoutes)
	reachable, path := g.Path(src, dst)
	result := ConnectivityResult{
		Source:      src,
		Destination: dst,
		Reachable:   reachable,
	}
	if reachable {
		result.Path = g.PathHops(path)
	}
	return result
}
