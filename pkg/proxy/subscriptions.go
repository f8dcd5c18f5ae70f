package proxy

import (
	"context"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// Subscriptions returns all subscriptions visible to the credential.
// Authentication failures propagate; the caller cannot proceed without a
// subscription list.
func (s *Service) Subscriptions(ctx context.Context, refresh bool) ([]azure.Subscription, error) {
	key := cache.Key("subscriptions")
	subs, err := cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.Subscription, error) {
		return guarded(ctx, s, s.client.ListSubscriptions)
	})
	if err != nil {
		util.Errorf("Fetching subscriptions failed: %v", err)
		return nil, err
	}
	util.Infof("Fetched %d subscriptions", len(subs))
	return subs, nil
}

// ResourceGroups returns the resource groups of one subscription.
func (s *Service) ResourceGroups(ctx context.Context, subscriptionID string, refresh bool) ([]azure.ResourceGroup, error) {
	key := cache.Key("resource_groups", subscriptionID)
	groups, err := cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.ResourceGroup, error) {
		return guarded(ctx, s, func(ctx context.Context) ([]azure.ResourceGroup, error) {
			return s.client.ListResourceGroups(ctx, subscriptionID)
		})
	})
	if err != nil {
		return nil, err
	}
	util.WithSubscription(subscriptionID).Infof("Fetched %d resource groups", len(groups))
	return groups, nil
}
