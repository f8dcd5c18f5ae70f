package proxy

import (
	"context"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// VirtualNetworks lists the VNets of a subscription, optionally filtered
// to one resource group.
func (s *Service) VirtualNetworks(ctx context.Context, subscriptionID, resourceGroup string, refresh bool) ([]azure.VirtualNetwork, error) {
	key := cache.Key("virtual_networks", subscriptionID, resourceGroup)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.VirtualNetwork, error) {
		vnets, err := guarded(ctx, s, func(ctx context.Context) ([]azure.VirtualNetwork, error) {
			return s.client.ListVirtualNetworks(ctx, subscriptionID, resourceGroup)
		})
		if err != nil {
			return nil, err
		}
		util.WithSubscription(subscriptionID).Infof("Fetched %d virtual networks", len(vnets))
		return vnets, nil
	})
}

// VirtualNetwork returns one VNet with its peering list.
func (s *Service) VirtualNetwork(ctx context.Context, subscriptionID, resourceGroup, name string, refresh bool) (azure.VirtualNetwork, error) {
	key := cache.Key("virtual_network", subscriptionID, resourceGroup, name)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) (azure.VirtualNetwork, error) {
		return guarded(ctx, s, func(ctx context.Context) (azure.VirtualNetwork, error) {
			return s.client.GetVirtualNetwork(ctx, subscriptionID, resourceGroup, name)
		})
	})
}
