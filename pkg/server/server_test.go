package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilosource/azure-rm-proxy-server-sub000/internal/testutil"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/config"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/limiter"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/proxy"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

func newTestServer(client azure.Client) *Server {
	cfg := &config.Config{
		Server:   config.ServerConfig{Host: "127.0.0.1", Port: 8000},
		Provider: config.ProviderConfig{MaxConcurrency: 5},
	}
	svc := proxy.New(client, cache.NewMemory(), limiter.New(5), time.Hour)
	return New(cfg, svc)
}

func doRequest(s *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	s := newTestServer(&testutil.FakeClient{})
	rec := doRequest(s, "/api/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"pong"`, rec.Body.String())
}

func TestListSubscriptions(t *testing.T) {
	client := &testutil.FakeClient{
		ListSubscriptionsFn: func(ctx context.Context) ([]azure.Subscription, error) {
			return []azure.Subscription{{ID: "sub1", DisplayName: "Prod", State: "Enabled"}}, nil
		},
	}
	rec := doRequest(newTestServer(client), "/api/subscriptions")

	require.Equal(t, http.StatusOK, rec.Code)
	var subs []azure.Subscription
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, "sub1", subs[0].ID)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		kind       error
		wantStatus int
	}{
		{"not found", util.ErrNotFound, http.StatusNotFound},
		{"unauthorized", util.ErrUnauthorized, http.StatusUnauthorized},
		{"transient", util.ErrTransient, http.StatusBadGateway},
		{"parse", util.ErrParse, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &testutil.FakeClient{
				ListResourceGroupsFn: func(ctx context.Context, sub string) ([]azure.ResourceGroup, error) {
					return nil, util.NewRequestError("list resource groups", sub, tt.kind, nil)
				},
			}
			rec := doRequest(newTestServer(client), "/api/subscriptions/sub1/resource-groups")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Details)
		})
	}
}

func TestUnknownRouteReturns404JSON(t *testing.T) {
	rec := doRequest(newTestServer(&testutil.FakeClient{}), "/api/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not Found", body.Error)
}

func TestRefreshCacheQueryParam(t *testing.T) {
	calls := 0
	client := &testutil.FakeClient{
		ListSubscriptionsFn: func(ctx context.Context) ([]azure.Subscription, error) {
			calls++
			return []azure.Subscription{}, nil
		},
	}
	s := newTestServer(client)

	doRequest(s, "/api/subscriptions")
	doRequest(s, "/api/subscriptions")
	assert.Equal(t, 1, calls, "second request should be served from cache")

	doRequest(s, "/api/subscriptions?refresh-cache=true")
	assert.Equal(t, 2, calls, "refresh-cache=true must bypass the cache")
}

func TestGetVirtualMachineRoutes(t *testing.T) {
	client := &testutil.FakeClient{
		GetVirtualMachineFn: func(ctx context.Context, sub, rg, name string) (azure.VirtualMachineResource, error) {
			return azure.VirtualMachineResource{VirtualMachine: azure.VirtualMachine{Name: name}}, nil
		},
	}
	rec := doRequest(newTestServer(client), "/api/subscriptions/sub1/resource-groups/rg1/virtual-machines/web01/routes")

	require.Equal(t, http.StatusOK, rec.Code)
	var routes []azure.Route
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &routes))
	// No NIC data resolvable, so the default route set is substituted.
	assert.Equal(t, proxy.DefaultRoutes(), routes)
}

func TestPeeringReportEndpoint(t *testing.T) {
	vnetA := azure.VirtualNetwork{
		ID:   "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Network/virtualNetworks/vnet-a",
		Name: "vnet-a",
	}
	vnetB := azure.VirtualNetwork{
		ID:   "/subscriptions/sub1/resourceGroups/rg1/providers/Microsoft.Network/virtualNetworks/vnet-b",
		Name: "vnet-b",
	}
	vnetA.Peerings = []azure.Peering{{
		Name: "a-to-b", RemoteVirtualNetworkID: vnetB.ID, PeeringState: azure.PeeringStateConnected,
	}}
	vnetB.Peerings = []azure.Peering{{
		Name: "b-to-a", RemoteVirtualNetworkID: vnetA.ID, PeeringState: azure.PeeringStateConnected,
	}}

	client := &testutil.FakeClient{
		ListVirtualNetworksFn: func(ctx context.Context, sub, rg string) ([]azure.VirtualNetwork, error) {
			return []azure.VirtualNetwork{vnetA, vnetB}, nil
		},
		GetVirtualNetworkFn: func(ctx context.Context, sub, rg, name string) (azure.VirtualNetwork, error) {
			if name == "vnet-b" {
				return vnetB, nil
			}
			return vnetA, nil
		},
	}
	rec := doRequest(newTestServer(client), "/api/vnet-peering-report/subscriptions/sub1")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp PeeringReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pairs, 1)
	assert.True(t, resp.Pairs[0].Connected)
	assert.Equal(t, 1, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.ConnectedCount)
	assert.InDelta(t, 100, resp.Summary.ConnectivityPercentage, 0.01)
}
