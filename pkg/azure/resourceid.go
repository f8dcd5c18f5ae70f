package azure

import (
	"fmt"
	"strings"

	"github.com/vilosource/azure-rm-proxy-server-sub000/pkg/util"
)

// ResourceID is the parsed form of an ARM resource identifier:
// /subscriptions/{sub}/resourceGroups/{rg}/providers/{ns}/{type}/{name}
type ResourceID struct {
	SubscriptionID string
	ResourceGroup  string
	Provider       string
	ResourceType   string
	Name           string
}

// ParseResourceID parses a full ARM resource identifier. It returns a
// util.ErrParse wrapped error when the identifier does not have the
// expected shape.
func ParseResourceID(id string) (ResourceID, error) {
	parts := strings.Split(id, "/")
	if len(parts) < 9 || !strings.EqualFold(parts[1], "subscriptions") || !strings.EqualFold(parts[3], "resourcegroups") {
		return ResourceID{}, util.NewRequestError("parse resource id", id, util.ErrParse,
			fmt.Errorf("unexpected identifier shape"))
	}
	return ResourceID{
		SubscriptionID: parts[2],
		ResourceGroup:  parts[4],
		Provider:       parts[6],
		ResourceType:   parts[7],
		Name:           parts[8],
	}, nil
}

// ResourceGroupFromID extracts the resource group from a resource ID,
// returning fallback when the ID cannot be parsed.
func ResourceGroupFromID(id, fallback string) string {
	parts := strings.Split(id, "/")
	if len(parts) >= 5 && strings.EqualFold(parts[3], "resourcegroups") {
		return parts[4]
	}
	return fallback
}

// NameFromID returns the trailing name segment of a resource ID.
func NameFromID(id string) string {
	parts := strings.Split(id, "/")
	return parts[len(parts)-1]
}
