package proxy

import (
	"context"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// DefaultRoutes returns the provider's well-known implicit routes,
// substituted when no route source can be queried so graph construction
// always has some routing information.
func DefaultRoutes() []azure.Route {
	return []azure.Route{
		{AddressPrefix: "0.0.0.0/0", NextHopType: azure.NextHopInternet, Origin: azure.RouteOriginDefault},
		{AddressPrefix: "10.0.0.0/8", NextHopType: azure.NextHopVnetLocal, Origin: azure.RouteOriginDefault},
		{AddressPrefix: "172.16.0.0/12", NextHopType: azure.NextHopVnetLocal, Origin: azure.RouteOriginDefault},
		{AddressPrefix: "192.168.0.0/16", NextHopType: azure.NextHopVnetLocal, Origin: azure.RouteOriginDefault},
	}
}

// routeStrategy is one way of obtaining routes for a NIC. Strategies are
// tried in order; the first one returning a non-empty set wins.
type routeStrategy struct {
	name  string
	fetch func(ctx context.Context) ([]azure.Route, error)
}

// resolveNICRoutes runs the ordered strategy list for one NIC. NotFound,
// parse and transient failures fall through to the next strategy; an
// authentication failure aborts. The final static-default strategy cannot
// miss.
func (s *Service) resolveNICRoutes(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]azure.Route, error) {
	strategies := []routeStrategy{
		{
			name: "effective route table API",
			fetch: func(ctx context.Context) ([]azure.Route, error) {
				return guarded(ctx, s, func(ctx context.Context) ([]azure.Route, error) {
					return s.client.GetNICEffectiveRoutes(ctx, subscriptionID, resourceGroup, nicName)
				})
			},
		},
		{
			name: "subnet route table",
			fetch: func(ctx context.Context) ([]azure.Route, error) {
				return guarded(ctx, s, func(ctx context.Context) ([]azure.Route, error) {
					return s.client.GetNICSubnetRoutes(ctx, subscriptionID, resourceGroup, nicName)
				})
			},
		},
	}

	log := util.WithResource(nicName)
	for _, strat := range strategies {
		routes, err := strat.fetch(ctx)
		if err != nil {
			if util.IsFatal(err) {
				return nil, err
			}
			log.Debugf("Route strategy %q failed: %v", strat.name, err)
			continue
		}
		if len(routes) > 0 {
			log.Debugf("Fetched %d routes via %s", len(routes), strat.name)
			return routes, nil
		}
	}

	log.Warn("No route source answered; substituting default routes")
	return DefaultRoutes(), nil
}

// NICEffectiveRoutes returns the effective routes of one network
// interface, degrading to the default route set when the upstream cannot
// be queried.
func (s *Service) NICEffectiveRoutes(ctx context.Context, subscriptionID, resourceGroup, nicName string, refresh bool) ([]azure.Route, error) {
	key := cache.Key("nic_routes", subscriptionID, resourceGroup, nicName)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.Route, error) {
		return s.resolveNICRoutes(ctx, subscriptionID, resourceGroup, nicName)
	})
}

// DedupeRoutes removes duplicate entries by (prefix, next-hop type,
// next-hop IP), keeping the first occurrence.
func DedupeRoutes(routes []azure.Route) []azure.Route {
	seen := make(map[string]struct{}, len(routes))
	out := make([]azure.Route, 0, len(routes))
	for _, r := range routes {
		k := r.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// VMEffectiveRoutes merges the effective routes of every NIC belonging to
// a virtual machine into one deduplicated set. A failure on one NIC is
// logged and skipped; an authentication failure propagates.
func (s *Service) VMEffectiveRoutes(ctx context.Context, subscriptionID, resourceGroup, vmName string, refresh bool) ([]azure.Route, error) {
	key := cache.Key("vm_routes", subscriptionID, resourceGroup, vmName)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.Route, error) {
		vm, err := guarded(ctx, s, func(ctx context.Context) (azure.VirtualMachineResource, error) {
			return s.client.GetVirtualMachine(ctx, subscriptionID, resourceGroup, vmName)
		})
		if err != nil {
			return nil, err
		}

		log := util.WithResource(vmName)
		log.Debugf("Found %d network interfaces", len(vm.NetworkInterfaceIDs))

		var merged []azure.Route
		for _, nicID := range vm.NetworkInterfaceIDs {
			nicName := azure.NameFromID(nicID)
			nicRG := azure.ResourceGroupFromID(nicID, resourceGroup)
			routes, err := s.resolveNICRoutes(ctx, subscriptionID, nicRG, nicName)
			if err != nil {
				if util.IsFatal(err) {
					return nil, err
				}
				log.Warnf("Error getting routes for NIC %s: %v", nicName, err)
				continue
			}
			merged = append(merged, routes...)
		}

		if len(merged) == 0 {
			log.Warn("No routes resolved from any NIC; substituting default routes")
			merged = DefaultRoutes()
		}

		result := DedupeRoutes(merged)
		log.Infof("Resolved %d effective routes", len(result))
		return result, nil
	})
}

// RouteTables lists all route tables of a subscription as summaries.
func (s *Service) RouteTables(ctx context.Context, subscriptionID string, refresh bool) ([]azure.RouteTableSummary, error) {
	key := cache.Key("route_tables", subscriptionID)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.RouteTableSummary, error) {
		tables, err := guarded(ctx, s, func(ctx context.Context) ([]azure.RouteTable, error) {
			return s.client.ListRouteTables(ctx, subscriptionID)
		})
		if err != nil {
			return nil, err
		}
		summaries := make([]azure.RouteTableSummary, 0, len(tables))
		for _, rt := range tables {
			summaries = append(summaries, azure.RouteTableSummary{
				ID:                rt.ID,
				Name:              rt.Name,
				Location:          rt.Location,
				ResourceGroup:     azure.ResourceGroupFromID(rt.ID, rt.ResourceGroup),
				RouteCount:        len(rt.Routes),
				SubnetCount:       len(rt.Subnets),
				ProvisioningState: rt.ProvisioningState,
				SubscriptionID:    subscriptionID,
			})
		}
		util.WithSubscription(subscriptionID).Infof("Fetched %d route tables", len(summaries))
		return summaries, nil
	})
}

// RouteTable returns one route table in full detail.
func (s *Service) RouteTable(ctx context.Context, subscriptionID, resourceGroup, name string, refresh bool) (azure.RouteTable, error) {
	key := cache.Key("route_table", subscriptionID, resourceGroup, name)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) (azure.RouteTable, error) {
		rt, err := guarded(ctx, s, func(ctx context.Context) (azure.RouteTable, error) {
			return s.client.GetRouteTable(ctx, subscriptionID, resourceGroup, name)
		})
		if err != nil {
			return azure.RouteTable{}, err
		}
		rt.ResourceGroup = resourceGroup
		rt.SubscriptionID = subscriptionID
		return rt, nil
	})
}

// cacheKeyForVM is shared by the VM detail fetches.
func cacheKeyForVM(prefix, subscriptionID, resourceGroup, vmName string) string {
	return cache.Key(prefix, subscriptionID, resourceGroup, vmName)
}
