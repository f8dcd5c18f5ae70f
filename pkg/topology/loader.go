package topology

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// machineDoc is the on-disk shape of one exported machine document.
type machineDoc struct {
	Name              string `json:"name"`
	NetworkInterfaces []struct {
		PrivateIPAddresses []string `json:"private_ip_addresses"`
	} `json:"network_interfaces"`
	EffectiveRoutes []azure.Route `json:"effective_routes"`
}

// LoadMachines walks dir and reads every vm_*.json document into a
// Machine. Files that do not parse or lack the expected fields are
// skipped with a warning; they are never fatal.
//
// Only the first interface's addresses represent the machine: the primary
// NIC defines default routing. This is a deliberate simplification.
func LoadMachines(dir string) ([]Machine, error) {
	var machines []Machine
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if !strings.HasPrefix(name, "vm_") || !strings.HasSuffix(name, ".json") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			util.Warnf("Could not read %s: %v", path, err)
			return nil
		}
		var doc machineDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			util.Warnf("Could not parse JSON in %s: %v", path, err)
			return nil
		}
		if doc.Name == "" || len(doc.NetworkInterfaces) == 0 {
			util.Warnf("Skipping %s: missing name or network interfaces", path)
			return nil
		}

		machines = append(machines, Machine{
			Name:   doc.Name,
			IPs:    doc.NetworkInterfaces[0].PrivateIPAddresses,
			Routes: doc.EffectiveRoutes,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return machines, nil
}

// DefaultGatewayIP is the gateway address assumed when none is supplied.
const DefaultGatewayIP = "20.240.246.240"

// DefaultGatewayRoutes returns the routes assumed for the gateway when no
// routes file is supplied or the file cannot be used.
func DefaultGatewayRoutes() []azure.Route {
	return []azure.Route{
		{AddressPrefix: "172.20.4.0/22", NextHopType: azure.NextHopGateway},
		{AddressPrefix: "10.0.0.0/8", NextHopType: azure.NextHopGateway},
	}
}

// LoadGatewayRoutes reads a JSON array of gateway routes from path. An
// empty path, a missing file, or unparseable content all fall back to
// DefaultGatewayRoutes. Entries with an invalid prefix are dropped; they
// could never justify an edge.
func LoadGatewayRoutes(path string) []azure.Route {
	if path == "" {
		return DefaultGatewayRoutes()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		util.Warnf("Error loading gateway routes from %s: %v; using defaults", path, err)
		return DefaultGatewayRoutes()
	}
	var routes []azure.Route
	if err := json.Unmarshal(data, &routes); err != nil {
		util.Warnf("Error parsing gateway routes from %s: %v; using defaults", path, err)
		return DefaultGatewayRoutes()
	}

	valid := make([]azure.Route, 0, len(routes))
	for _, r := range routes {
		if !util.IsValidCIDR(r.AddressPrefix) {
			util.Warnf("Ignoring gateway route with invalid prefix %q in %s", r.AddressPrefix, path)
			continue
		}
		valid = append(valid, r)
	}
	if len(valid) == 0 {
		util.Warnf("No usable gateway routes in %s; using defaults", path)
		return DefaultGatewayRoutes()
	}
	return valid
}
