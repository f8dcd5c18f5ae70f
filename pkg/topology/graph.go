// Package topology derives reachability facts from effective route data:
// it builds a directed graph over virtual machines plus one synthetic
// gateway node and answers path-existence queries over it.
//
// Graphs are cheap, private, per-query values; nothing here caches or
// locks.
package topology

import (
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// GatewayNode is the name of the single synthetic gateway node.
const GatewayNode = "VirtualNetworkGateway"

// Edge is a directed edge annotated with the address prefix that
// justified it. Parallel edges with different prefixes are kept; they
// only add diagnostic detail, not reachability.
type Edge struct {
	To     string
	Prefix string
}

// Graph is a directed reachability graph. Nodes are machine names plus
// the gateway node; each node carries its known IP addresses.
type Graph struct {
	nodes map[string][]string // node name -> IPs
	edges map[string][]Edge
	order []string // insertion order, for deterministic traversal
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string][]string),
		edges: make(map[string][]Edge),
	}
}

// AddNode adds a node with its IP list. Re-adding a node replaces its IPs.
func (g *Graph) AddNode(name string, ips []string) {
	if _, exists := g.nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.nodes[name] = ips
}

// AddEdge adds a directed edge labeled with the justifying prefix.
func (g *Graph) AddEdge(from, to, prefix string) {
	g.edges[from] = append(g.edges[from], Edge{To: to, Prefix: prefix})
}

// HasNode reports whether a node exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// NodeIPs returns the IP list of a node.
func (g *Graph) NodeIPs(name string) []string {
	return g.nodes[name]
}

// Nodes returns all node names in insertion order.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.order...)
}

// Edges returns the outgoing edges of a node.
func (g *Graph) Edges(from string) []Edge {
	return g.edges[from]
}

// Path returns the shortest directed path from src to dst, including both
// endpoints, found by breadth-first search.
//
// It returns (false, nil) both when no path connects two known nodes and
// when either name is absent from the graph. The two cases are logged
// differently but deliberately share one return shape; callers cannot
// tell them apart, which preserves the historical external behavior.
func (g *Graph) Path(src, dst string) (bool, []string) {
	if !g.HasNode(src) || !g.HasNode(dst) {
		util.Warnf("Machine not found in graph: src=%s dst=%s", src, dst)
		return false, nil
	}
	if src == dst {
		return true, []string{src}
	}

	parent := map[string]string{src: ""}
	queue := []string{src}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, e := range g.edges[node] {
			if _, seen := parent[e.To]; seen {
				continue
			}
			parent[e.To] = node
			if e.To == dst {
				return true, reconstructPath(parent, src, dst)
			}
			queue = append(queue, e.To)
		}
	}

	util.Debugf("No connectivity path from %s to %s", src, dst)
	return false, nil
}

func reconstructPath(parent map[string]string, src, dst string) []string {
	var rev []string
	for node := dst; node != ""; node = parent[node] {
		rev = append(rev, node)
	}
	path := make([]string, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

// Hop is one node on a resolved path, annotated for human-readable
// output.
type Hop struct {
	Hop  int      `json:"hop"`
	Node string   `json:"node"`
	IPs  []string `json:"ips"`
}

// PathHops annotates a path with each node's known IPs.
func (g *Graph) PathHops(path []string) []Hop {
	hops := make([]Hop, 0, len(path))
	for i, node := range path {
		hops = append(hops, Hop{Hop: i + 1, Node: node, IPs: g.NodeIPs(node)})
	}
	return hops
}
