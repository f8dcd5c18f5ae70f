package proxy

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"sort"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// PeeringPairID computes the order-independent identity of a peering
// between two VNets: sort the ids, join, hash. PeeringPairID(a,b) equals
// PeeringPairID(b,a) for all a, b.
func PeeringPairID(vnet1ID, vnet2ID string) string {
	ids := []string{vnet1ID, vnet2ID}
	sort.Strings(ids)
	sum := md5.Sum([]byte(ids[0] + ":" + ids[1]))
	return hex.EncodeToString(sum[:])
}

// vnetIdentity is one side of a peering pair.
type vnetIdentity struct {
	id             string
	name           string
	resourceGroup  string
	subscriptionID string
}

// PeeringReport reconciles every peering visible in a subscription (or a
// single resource group) into bidirectional PeeringPair records, exactly
// one per physical peering relationship. A failure on one VNet or one
// peering record never aborts the rest of the report.
func (s *Service) PeeringReport(ctx context.Context, subscriptionID, resourceGroup string, refresh bool) ([]azure.PeeringPair, error) {
	key := cache.Key("vnet_peering_report", subscriptionID, resourceGroup)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.PeeringPair, error) {
		vnets, err := s.VirtualNetworks(ctx, subscriptionID, resourceGroup, refresh)
		if err != nil {
			return nil, err
		}
		util.WithSubscription(subscriptionID).Debugf("Reconciling peerings across %d virtual networks", len(vnets))

		processed := make(map[string]struct{})
		pairs := make([]azure.PeeringPair, 0)

		for _, vnet := range vnets {
			if vnet.ID == "" || vnet.Name == "" {
				continue
			}
			local := vnetIdentity{
				id:             vnet.ID,
				name:           vnet.Name,
				resourceGroup:  azure.ResourceGroupFromID(vnet.ID, resourceGroup),
				subscriptionID: subscriptionID,
			}
			for _, peering := range vnet.Peerings {
				pair, ok := s.reconcilePeering(ctx, local, peering, processed, refresh)
				if ok {
					pairs = append(pairs, pair)
				}
			}
		}

		util.WithSubscription(subscriptionID).Infof("Peering report contains %d pairs", len(pairs))
		return pairs, nil
	})
}

// reconcilePeering turns one one-sided peering record into a PeeringPair,
// or reports false when the record is a duplicate of an already-processed
// pair or unusable.
func (s *Service) reconcilePeering(ctx context.Context, local vnetIdentity, peering azure.Peering, processed map[string]struct{}, refresh bool) (azure.PeeringPair, bool) {
	log := util.WithResource(local.name)

	remoteID := peering.RemoteVirtualNetworkID
	if remoteID == "" {
		log.Warnf("Peering %s has no remote VNet ID", peering.Name)
		return azure.PeeringPair{}, false
	}

	// Parse before marking the pair processed: a skipped record must not
	// shadow the other side's processable record for the same pair.
	remoteRes, err := azure.ParseResourceID(remoteID)
	if err != nil {
		log.Warnf("Could not parse remote VNet ID %s: %v", remoteID, err)
		return azure.PeeringPair{}, false
	}

	pairID := PeeringPairID(local.id, remoteID)
	if _, done := processed[pairID]; done {
		// Already emitted from the other side of this relationship.
		return azure.PeeringPair{}, false
	}
	processed[pairID] = struct{}{}

	remote := vnetIdentity{
		id:             remoteID,
		name:           remoteRes.Name,
		resourceGroup:  remoteRes.ResourceGroup,
		subscriptionID: remoteRes.SubscriptionID,
	}

	remoteVnet, err := s.VirtualNetwork(ctx, remote.subscriptionID, remote.resourceGroup, remote.name, refresh)
	if err != nil {
		log.Warnf("Could not fetch remote VNet %s: %v", remote.name, err)
		return partialPair(pairID, local, remote, peering), true
	}

	returnPeering, found := findReturnPeering(remoteVnet, local.id)
	state2 := azure.PeeringStateNotConfigured
	if found {
		state2 = returnPeering.PeeringState
	}

	pair := completePair(pairID, local, remote, peering, state2)
	pair.Connected = found &&
		peering.PeeringState == azure.PeeringStateConnected &&
		returnPeering.PeeringState == azure.PeeringStateConnected
	return pair, true
}

// findReturnPeering searches a remote VNet's peering list for the record
// pointing back at the local VNet.
func findReturnPeering(remote azure.VirtualNetwork, localVnetID string) (azure.Peering, bool) {
	for _, p := range remote.Peerings {
		if p.RemoteVirtualNetworkID == localVnetID {
			return p, true
		}
	}
	return azure.Peering{}, false
}

// partialPair builds a pair where only the local side could be observed.
// The remote identity comes from the resource ID parse alone.
func partialPair(pairID string, local, remote vnetIdentity, peering azure.Peering) azure.PeeringPair {
	pair := completePair(pairID, local, remote, peering, azure.PeeringStateUnknown)
	pair.Connected = false
	return pair
}

// completePair assembles a PeeringPair. Configuration flags are taken
// from the first-observed side's record; the two sides are not
// reconciled when they disagree.
func completePair(pairID string, local, remote vnetIdentity, peering azure.Peering, state2 string) azure.PeeringPair {
	return azure.PeeringPair{
		PeeringID: pairID,

		Vnet1ID:             local.id,
		Vnet1Name:           local.name,
		Vnet1ResourceGroup:  local.resourceGroup,
		Vnet1SubscriptionID: local.subscriptionID,
		Vnet1ToVnet2State:   peering.PeeringState,

		Vnet2ID:             remote.id,
		Vnet2Name:           remote.name,
		Vnet2ResourceGroup:  remote.resourceGroup,
		Vnet2SubscriptionID: remote.subscriptionID,
		Vnet2ToVnet1State:   state2,

		AllowVirtualNetworkAccess: peering.AllowVirtualNetworkAccess,
		AllowForwardedTraffic:     peering.AllowForwardedTraffic,
		AllowGatewayTransit:       peering.AllowGatewayTransit,
		UseRemoteGateways:         peering.UseRemoteGateways,
		ProvisioningState:         peering.ProvisioningState,
	}
}

// SummarizePeerings derives the aggregate counts of a peering report.
func SummarizePeerings(pairs []azure.PeeringPair) azure.PeeringSummary {
	summary := azure.PeeringSummary{Total: len(pairs)}
	for _, p := range pairs {
		if p.Connected {
			summary.ConnectedCount++
		}
		if p.Vnet2ToVnet1State == azure.PeeringStateUnknown {
			summary.PartialCount++
		}
	}
	if summary.Total > 0 {
		summary.ConnectivityPercentage = 100 * float64(summary.ConnectedCount) / float64(summary.Total)
	}
	return summary
}
