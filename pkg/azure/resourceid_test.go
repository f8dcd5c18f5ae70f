package azure

import (
	"errors"
	"testing"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

const vnetID = "/subscriptions/sub1/resourceGroups/net-rg/providers/Microsoft.Network/virtualNetworks/vnet-a"

func TestParseResourceID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    ResourceID
		wantErr bool
	}{
		{
			name: "virtual network",
			id:   vnetID,
			want: ResourceID{
				SubscriptionID: "sub1",
				ResourceGroup:  "net-rg",
				Provider:       "Microsoft.Network",
				ResourceType:   "virtualNetworks",
				Name:           "vnet-a",
			},
		},
		{
			name: "case insensitive markers",
			id:   "/SUBSCRIPTIONS/sub1/resourcegroups/rg/providers/Microsoft.Compute/virtualMachines/vm1",
			want: ResourceID{
				SubscriptionID: "sub1",
				ResourceGroup:  "rg",
				Provider:       "Microsoft.Compute",
				ResourceType:   "virtualMachines",
				Name:           "vm1",
			},
		},
		{name: "too short", id: "/subscriptions/sub1", wantErr: true},
		{name: "wrong markers", id: "/tenants/t1/groups/g1/providers/p/t/n/x", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourceID(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, util.ErrParse) {
					t.Errorf("error kind = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResourceID: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResourceGroupFromID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		fallback string
		want     string
	}{
		{"full id", vnetID, "other", "net-rg"},
		{"unparseable uses fallback", "not-an-id", "other", "other"},
		{"empty uses fallback", "", "other", "other"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResourceGroupFromID(tt.id, tt.fallback); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNameFromID(t *testing.T) {
	if got := NameFromID(vnetID); got != "vnet-a" {
		t.Errorf("got %q", got)
	}
	if got := NameFromID("plain-name"); got != "plain-name" {
		t.Errorf("got %q", got)
	}
}

func TestRouteKey(t *testing.T) {
	a := Route{AddressPrefix: "10.0.0.0/24", NextHopType: NextHopVnetLocal, NextHopIP: ""}
	b := Route{AddressPrefix: "10.0.0.0/24", NextHopType: NextHopVnetLocal, NextHopIP: "", Origin: RouteOriginUser}
	c := Route{AddressPrefix: "10.0.0.0/24", NextHopType: NextHopInternet}

	if a.Key() != b.Key() {
		t.Error("origin must not affect the route key")
	}
	if a.Key() == c.Key() {
		t.Error("next hop type must affect the route key")
	}
}
