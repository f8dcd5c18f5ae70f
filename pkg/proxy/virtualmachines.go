package proxy

import (
	"context"
	"sort"
	"sync"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/azure"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/cache"
	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// DefaultNsgRules returns the security rules that are always present on
// the provider, used when no NSG can be read for a NIC.
func DefaultNsgRules() []azure.NsgRule {
	return []azure.NsgRule{
		{Name: "AllowVnetInBound", Direction: "Inbound", Protocol: "*", PortRange: "*", Access: "Allow"},
		{Name: "AllowAzureLoadBalancerInBound", Direction: "Inbound", Protocol: "*", PortRange: "*", Access: "Allow"},
		{Name: "DenyAllInBound", Direction: "Inbound", Protocol: "*", PortRange: "*", Access: "Deny"},
		{Name: "AllowVnetOutBound", Direction: "Outbound", Protocol: "*", PortRange: "*", Access: "Allow"},
		{Name: "AllowInternetOutBound", Direction: "Outbound", Protocol: "*", PortRange: "*", Access: "Allow"},
		{Name: "DenyAllOutBound", Direction: "Outbound", Protocol: "*", PortRange: "*", Access: "Deny"},
	}
}

// resolveNICNsgRules mirrors the route strategy chain for security rules:
// direct NSG read, then the effective-NSG API, then the static defaults.
func (s *Service) resolveNICNsgRules(ctx context.Context, subscriptionID, resourceGroup, nicName string) ([]azure.NsgRule, error) {
	strategies := []struct {
		name  string
		fetch func(ctx context.Context) ([]azure.NsgRule, error)
	}{
		{
			name: "direct NSG",
			fetch: func(ctx context.Context) ([]azure.NsgRule, error) {
				return guarded(ctx, s, func(ctx context.Context) ([]azure.NsgRule, error) {
					return s.client.GetNICSecurityRules(ctx, subscriptionID, resourceGroup, nicName)
				})
			},
		},
		{
			name: "effective NSG API",
			fetch: func(ctx context.Context) ([]azure.NsgRule, error) {
				return guarded(ctx, s, func(ctx context.Context) ([]azure.NsgRule, error) {
					return s.client.GetNICEffectiveSecurityRules(ctx, subscriptionID, resourceGroup, nicName)
				})
			},
		},
	}

	log := util.WithResource(nicName)
	for _, strat := range strategies {
		rules, err := strat.fetch(ctx)
		if err != nil {
			if util.IsFatal(err) {
				return nil, err
			}
			log.Debugf("NSG strategy %q failed: %v", strat.name, err)
			continue
		}
		if len(rules) > 0 {
			log.Debugf("Fetched %d NSG rules via %s", len(rules), strat.name)
			return rules, nil
		}
	}

	log.Debug("Using default NSG rules as no actual rules were found")
	return DefaultNsgRules(), nil
}

// VirtualMachines lists the VMs of one resource group as summaries.
func (s *Service) VirtualMachines(ctx context.Context, subscriptionID, resourceGroup string, refresh bool) ([]azure.VirtualMachine, error) {
	key := cache.Key("virtual_machines", subscriptionID, resourceGroup)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) ([]azure.VirtualMachine, error) {
		vms, err := guarded(ctx, s, func(ctx context.Context) ([]azure.VirtualMachineResource, error) {
			return s.client.ListVirtualMachines(ctx, subscriptionID, resourceGroup)
		})
		if err != nil {
			return nil, err
		}
		out := make([]azure.VirtualMachine, 0, len(vms))
		for _, vm := range vms {
			out = append(out, vm.VirtualMachine)
		}
		util.WithSubscription(subscriptionID).Infof("Fetched %d virtual machines in %s", len(out), resourceGroup)
		return out, nil
	})
}

// VMDetails returns one VM with its NICs, effective NSG rules and
// effective routes resolved. NSG rules and routes are taken from the
// first NIC; the primary NIC defines default routing. This is a known
// simplification, not full multi-NIC semantics.
func (s *Service) VMDetails(ctx context.Context, subscriptionID, resourceGroup, vmName string, refresh bool) (azure.VirtualMachineDetail, error) {
	key := cacheKeyForVM("vm_details", subscriptionID, resourceGroup, vmName)
	return cache.Fetch(ctx, s.cache, key, s.ttl, refresh, func(ctx context.Context) (azure.VirtualMachineDetail, error) {
		vm, err := guarded(ctx, s, func(ctx context.Context) (azure.VirtualMachineResource, error) {
			return s.client.GetVirtualMachine(ctx, subscriptionID, resourceGroup, vmName)
		})
		if err != nil {
			return azure.VirtualMachineDetail{}, err
		}

		detail := azure.VirtualMachineDetail{VirtualMachine: vm.VirtualMachine}
		log := util.WithResource(vmName)

		for _, nicID := range vm.NetworkInterfaceIDs {
			nicName := azure.NameFromID(nicID)
			nicRG := azure.ResourceGroupFromID(nicID, resourceGroup)
			nic, err := guarded(ctx, s, func(ctx context.Context) (azure.NetworkInterface, error) {
				return s.client.GetNetworkInterface(ctx, subscriptionID, nicRG, nicName)
			})
			if err != nil {
				if util.IsFatal(err) {
					return azure.VirtualMachineDetail{}, err
				}
				log.Warnf("Error fetching NIC %s: %v", nicName, err)
				continue
			}
			detail.NetworkInterfaces = append(detail.NetworkInterfaces, nic)
		}

		if len(detail.NetworkInterfaces) == 0 {
			log.Warn("No network interfaces available; using default NSG rules and routes")
			detail.EffectiveNsgRules = DefaultNsgRules()
			detail.EffectiveRoutes = DefaultRoutes()
			return detail, nil
		}

		firstNIC := detail.NetworkInterfaces[0]
		nicRG := azure.ResourceGroupFromID(firstNIC.ID, resourceGroup)

		rules, err := s.resolveNICNsgRules(ctx, subscriptionID, nicRG, firstNIC.Name)
		if err != nil {
			return azure.VirtualMachineDetail{}, err
		}
		detail.EffectiveNsgRules = rules

		routes, err := s.resolveNICRoutes(ctx, subscriptionID, nicRG, firstNIC.Name)
		if err != nil {
			return azure.VirtualMachineDetail{}, err
		}
		detail.EffectiveRoutes = DedupeRoutes(routes)

		return detail, nil
	})
}

// VirtualMachineWithContext is a VM summary annotated with where it lives.
type VirtualMachineWithContext struct {
	azure.VirtualMachine
	SubscriptionID    string `json:"subscription_id"`
	SubscriptionName  string `json:"subscription_name,omitempty"`
	ResourceGroupName string `json:"resource_group_name"`
}

// VMReport enumerates every VM across all visible subscriptions and
// resource groups. Per-group listings run concurrently; the shared
// limiter still bounds actual upstream calls. A failure in one group is
// logged and skipped.
func (s *Service) VMReport(ctx context.Context, refresh bool) ([]VirtualMachineWithContext, error) {
	subs, err := s.Subscriptions(ctx, refresh)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		report []VirtualMachineWithContext
	)

	for _, sub := range subs {
		groups, err := s.ResourceGroups(ctx, sub.ID, refresh)
		if err != nil {
			if util.IsFatal(err) {
				return nil, err
			}
			util.WithSubscription(sub.ID).Warnf("Skipping subscription in VM report: %v", err)
			continue
		}
		for _, rg := range groups {
			wg.Add(1)
			go func(sub azure.Subscription, rgName string) {
				defer wg.Done()
				vms, err := s.VirtualMachines(ctx, sub.ID, rgName, refresh)
				if err != nil {
					util.WithSubscription(sub.ID).Warnf("Skipping resource group %s in VM report: %v", rgName, err)
					return
				}
				mu.Lock()
				for _, vm := range vms {
					report = append(report, VirtualMachineWithContext{
						VirtualMachine:    vm,
						SubscriptionID:    sub.ID,
						SubscriptionName:  sub.DisplayName,
						ResourceGroupName: rgName,
					})
				}
				mu.Unlock()
			}(sub, rg.Name)
		}
	}
	wg.Wait()

	sort.Slice(report, func(i, j int) bool { return report[i].Name < report[j].Name })
	util.Infof("VM report contains %d virtual machines", len(report))
	return report, nil
}
