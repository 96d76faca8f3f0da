// Package helpers provides shared utility functions for provider resources
package helpers

import (
	"fmt"
	"strings"
)

// ARM resource IDs follow a fixed segment layout:
//
//	/subscriptions/{sub}/resourceGroups/{rg}/providers/{namespace}/{type}/{name}[/{childType}/{childName}]
//
// Resources store this ID verbatim and re-derive addressing from it on Read
// and ImportState.

// ServerID addresses a PostgreSQL flexible server
type ServerID struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
}

// ServerChildID addresses a database or firewall rule under a server
type ServerChildID struct {
	SubscriptionID string
	ResourceGroup  string
	ServerName     string
	Name           string
}

// StorageAccountID addresses a storage account
type StorageAccountID struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
}

// ContainerID addresses a blob container under a storage account
type ContainerID struct {
	SubscriptionID string
	ResourceGroup  string
	AccountName    string
	Name           string
}

// parseARMID validates the common prefix and returns the segments after
// /providers/, checking them against the expected type tokens
func parseARMID(id string, wantSegments ...string) ([]string, error) {
	parts := strings.Split(strings.Trim(id, "/"), "/")
	if len(parts) < 8 || !strings.EqualFold(parts[0], "subscriptions") ||
		!strings.EqualFold(parts[2], "resourceGroups") || !strings.EqualFold(parts[4], "providers") {
		return nil, fmt.Errorf("invalid resource ID %q: expected /subscriptions/{id}/resourceGroups/{name}/providers/...", id)
	}

	rest := parts[5:]
	if len(rest) != len(wantSegments) {
		return nil, fmt.Errorf("invalid resource ID %q: expected %d segments after /providers/, got %d",
			id, len(wantSegments), len(rest))
	}
	for i, want := range wantSegments {
		if want == "*" {
			if rest[i] == "" {
				return nil, fmt.Errorf("invalid resource ID %q: segment %d is empty", id, i+6)
			}
			continue
		}
		if !strings.EqualFold(rest[i], want) {
			return nil, fmt.Errorf("invalid resource ID %q: expected segment %q, got %q", id, want, rest[i])
		}
	}

	segments := make([]string, 0, len(parts))
	segments = append(segments, parts[1], parts[3])
	segments = append(segments, rest...)
	return segments, nil
}

// ParseServerID parses a PostgreSQL flexible server resource ID
func ParseServerID(id string) (*ServerID, error) {
	s, err := parseARMID(id, "Microsoft.DBforPostgreSQL", "flexibleServers", "*")
	if err != nil {
		return nil, err
	}
	return &ServerID{SubscriptionID: s[0], ResourceGroup: s[1], Name: s[4]}, nil
}

// ParseDatabaseID parses a PostgreSQL database resource ID
func ParseDatabaseID(id string) (*ServerChildID, error) {
	s, err := parseARMID(id, "Microsoft.DBforPostgreSQL", "flexibleServers", "*", "databases", "*")
	if err != nil {
		return nil, err
	}
	return &ServerChildID{SubscriptionID: s[0], ResourceGroup: s[1], ServerName: s[4], Name: s[6]}, nil
}

// ParseFirewallRuleID parses a PostgreSQL firewall rule resource ID
func ParseFirewallRuleID(id string) (*ServerChildID, error) {
	s, err := parseARMID(id, "Microsoft.DBforPostgreSQL", "flexibleServers", "*", "firewallRules", "*")
	if err != nil {
		return nil, err
	}
	return &ServerChildID{SubscriptionID: s[0], ResourceGroup: s[1], ServerName: s[4], Name: s[6]}, nil
}

// ParseStorageAccountID parses a storage account resource ID
func ParseStorageAccountID(id string) (*StorageAccountID, error) {
	s, err := parseARMID(id, "Microsoft.Storage", "storageAccounts", "*")
	if err != nil {
		return nil, err
	}
	return &StorageAccountID{SubscriptionID: s[0], ResourceGroup: s[1], Name: s[4]}, nil
}

// ParseContainerID parses a blob container resource ID
func ParseContainerID(id string) (*ContainerID, error) {
	s, err := parseARMID(id, "Microsoft.Storage", "storageAccounts", "*", "blobServices", "default", "containers", "*")
	if err != nil {
		return nil, err
	}
	return &ContainerID{SubscriptionID: s[0], ResourceGroup: s[1], AccountName: s[4], Name: s[8]}, nil
}
