package client

import (
	"fmt"
)

// apiVersion is pinned for every control-plane request
const apiVersion = "2024-08-01"

// Client bundles the REST client with the subscription scope every resource
// path is rooted in
type Client struct {
	Rest           *RestClient
	SubscriptionID string
}

// NewClient creates a control-plane client scoped to a subscription
func NewClient(endpoint, subscriptionID, accessToken string) (*Client, error) {
	if subscriptionID == "" {
		return nil, fmt.Errorf("subscription_id is required")
	}

	rest, err := NewRestClient(endpoint, accessToken)
	if err != nil {
		return nil, err
	}

	return &Client{
		Rest:           rest,
		SubscriptionID: subscriptionID,
	}, nil
}

func (c *Client) serverPath(resourceGroup, serverName string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.DBforPostgreSQL/flexibleServers/%s",
		c.SubscriptionID, resourceGroup, serverName)
}

func (c *Client) storageAccountPath(resourceGroup, accountName string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s",
		c.SubscriptionID, resourceGroup, accountName)
}

func withAPIVersion(path string) string {
	return fmt.Sprintf("%s?api-version=%s", path, apiVersion)
}
