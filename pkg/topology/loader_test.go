package topology

import (
	"reflect"
	"testing"

	"github.com/vilosource/azure-rm-proxy-server-sub000/internal/testutil"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
)

func TestLoadMachines(t *testing.T) {
	dir := t.TempDir()

	testutil.WriteJSON(t, dir, "sub1/rg1/vm_web01.json", map[string]interface{}{
		"name": "web01",
		"network_interfaces": []map[string]interface{}{
			{"private_ip_addresses": []string{"10.0.0.4", "10.0.0.14"}},
			{"private_ip_addresses": []string{"10.0.1.4"}},
		},
		"effective_routes": []azure.Route{
			{AddressPrefix: "10.0.0.0/24", NextHopType: azure.NextHopVnetLocal},
		},
	})
	// Not prefixed vm_, must be ignored.
	testutil.WriteJSON(t, dir, "sub1/rg1/nic_web01.json", map[string]string{"name": "web01-nic"})
	// Malformed, must be skipped without error.
	testutil.WriteFile(t, dir, "sub1/rg1/vm_broken.json", "{not json")
	// Missing interfaces, must be skipped.
	testutil.WriteJSON(t, dir, "sub1/rg1/vm_empty.json", map[string]string{"name": "empty"})

	machines, err := LoadMachines(dir)
	if err != nil {
		t.Fatalf("LoadMachines: %v", err)
	}
	if len(machines) != 1 {
		t.Fatalf("got %d machines, want 1: %+v", len(machines), machines)
	}

	m := machines[0]
	if m.Name != "web01" {
		t.Errorf("name = %s", m.Name)
	}
	// Primary interface only.
	if want := []string{"10.0.0.4", "10.0.0.14"}; !reflect.DeepEqual(m.IPs, want) {
		t.Errorf("IPs = %v, want %v", m.IPs, want)
	}
	if len(m.Routes) != 1 || m.Routes[0].AddressPrefix != "10.0.0.0/24" {
		t.Errorf("routes = %+v", m.Routes)
	}
}

func TestLoadGatewayRoutes(t *testing.T) {
	dir := t.TempDir()
	custom := []azure.Route{
		{AddressPrefix: "192.168.0.0/16", NextHopType: azure.NextHopGateway},
	}
	goodPath := testutil.WriteJSON(t, dir, "gateway_routes.json", custom)
	badPath := testutil.WriteFile(t, dir, "bad.json", "nope")
	mixedPath := testutil.WriteJSON(t, dir, "mixed.json", []azure.Route{
		{AddressPrefix: "not-a-prefix", NextHopType: azure.NextHopGateway},
		custom[0],
	})
	invalidOnlyPath := testutil.WriteJSON(t, dir, "invalid_only.json", []azure.Route{
		{AddressPrefix: "10.0.0.0", NextHopType: azure.NextHopGateway},
	})

	tests := []struct {
		name string
		path string
		want []azure.Route
	}{
		{"custom file", goodPath, custom},
		{"empty path falls back", "", DefaultGatewayRoutes()},
		{"missing file falls back", dir + "/absent.json", DefaultGatewayRoutes()},
		{"unparseable file falls back", badPath, DefaultGatewayRoutes()},
		{"invalid prefixes dropped", mixedPath, custom},
		{"only invalid prefixes falls back", invalidOnlyPath, DefaultGatewayRoutes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoadGatewayRoutes(tt.path); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadGatewayRoutes(%s) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDefaultGatewayRoutes(t *testing.T) {
	routes := DefaultGatewayRoutes()
	if len(routes) != 2 {
		t.Fatalf("got %d default routes", len(routes))
	}
	for _, r := range routes {
		if r.NextHopType != azure.NextHopGateway {
			t.Errorf("route %s next hop = %s", r.AddressPrefix, r.NextHopType)
		}
	}
}
