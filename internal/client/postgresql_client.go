package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/platops/terraform-provider-azureinfra/internal/models"
)

// CreateOrUpdateServer provisions a PostgreSQL flexible server (PUT upsert).
// The control plane returns the resolved server including computed fields
// (id, fqdn, availability zone when assigned server-side).
func (c *Client) CreateOrUpdateServer(ctx context.Context, resourceGroup, name string, server *models.PostgresqlServerAPI) (*models.PostgresqlServerAPI, error) {
	var result models.PostgresqlServerAPI
	err := c.Rest.DoRequest(ctx, http.MethodPut, withAPIVersion(c.serverPath(resourceGroup, name)), server, &result)
	if err != nil {
		return nil, fmt.Errorf("create server %q: %w", name, err)
	}
	return &result, nil
}

// GetServer reads a PostgreSQL flexible server
func (c *Client) GetServer(ctx context.Context, resourceGroup, name string) (*models.PostgresqlServerAPI, error) {
	var result models.PostgresqlServerAPI
	err := c.Rest.DoRequest(ctx, http.MethodGet, withAPIVersion(c.serverPath(resourceGroup, name)), nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateServer patches mutable server properties. The password and
// availability zone are pinned after creation and must never appear in a
// PATCH body.
func (c *Client) UpdateServer(ctx context.Context, resourceGroup, name string, server *models.PostgresqlServerAPI) (*models.PostgresqlServerAPI, error) {
	var result models.PostgresqlServerAPI
	err := c.Rest.DoRequest(ctx, http.MethodPatch, withAPIVersion(c.serverPath(resourceGroup, name)), server, &result)
	if err != nil {
		return nil, fmt.Errorf("update server %q: %w", name, err)
	}
	return &result, nil
}

// DeleteServer removes a PostgreSQL flexible server and everything on it
func (c *Client) DeleteServer(ctx context.Context, resourceGroup, name string) error {
	err := c.Rest.DoRequest(ctx, http.MethodDelete, withAPIVersion(c.serverPath(resourceGroup, name)), nil, nil)
	if err != nil {
		return fmt.Errorf("delete server %q: %w", name, err)
	}
	return nil
}

// CreateOrUpdateDatabase creates a database on a flexible server
func (c *Client) CreateOrUpdateDatabase(ctx context.Context, resourceGroup, serverName, name string, database *models.PostgresqlDatabaseAPI) (*models.PostgresqlDatabaseAPI, error) {
	path := fmt.Sprintf("%s/databases/%s", c.serverPath(resourceGroup, serverName), name)
	var result models.PostgresqlDatabaseAPI
	err := c.Rest.DoRequest(ctx, http.MethodPut, withAPIVersion(path), database, &result)
	if err != nil {
		return nil, fmt.Errorf("create database %q on server %q: %w", name, serverName, err)
	}
	return &result, nil
}

// GetDatabase reads a database on a flexible server
func (c *Client) GetDatabase(ctx context.Context, resourceGroup, serverName, name string) (*models.PostgresqlDatabaseAPI, error) {
	path := fmt.Sprintf("%s/databases/%s", c.serverPath(resourceGroup, serverName), name)
	var result models.PostgresqlDatabaseAPI
	err := c.Rest.DoRequest(ctx, http.MethodGet, withAPIVersion(path), nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteDatabase removes a database from a flexible server
func (c *Client) DeleteDatabase(ctx context.Context, resourceGroup, serverName, name string) error {
	path := fmt.Sprintf("%s/databases/%s", c.serverPath(resourceGroup, serverName), name)
	err := c.Rest.DoRequest(ctx, http.MethodDelete, withAPIVersion(path), nil, nil)
	if err != nil {
		return fmt.Errorf("delete database %q on server %q: %w", name, serverName, err)
	}
	return nil
}

// CreateOrUpdateFirewallRule upserts a firewall rule on a flexible server
func (c *Client) CreateOrUpdateFirewallRule(ctx context.Context, resourceGroup, serverName, name string, rule *models.FirewallRuleAPI) (*models.FirewallRuleAPI, error) {
	path := fmt.Sprintf("%s/firewallRules/%s", c.serverPath(resourceGroup, serverName), name)
	var result models.FirewallRuleAPI
	err := c.Rest.DoRequest(ctx, http.MethodPut, withAPIVersion(path), rule, &result)
	if err != nil {
		return nil, fmt.Errorf("create firewall rule %q on server %q: %w", name, serverName, err)
	}
	return &result, nil
}

// GetFirewallRule reads a firewall rule on a flexible server
func (c *Client) GetFirewallRule(ctx context.Context, resourceGroup, serverName, name string) (*models.FirewallRuleAPI, error) {
	path := fmt.Sprintf("%s/firewallRules/%s", c.serverPath(resourceGroup, serverName), name)
	var result models.FirewallRuleAPI
	err := c.Rest.DoRequest(ctx, http.MethodGet, withAPIVersion(path), nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteFirewallRule removes a firewall rule from a flexible server
func (c *Client) DeleteFirewallRule(ctx context.Context, resourceGroup, serverName, name string) error {
	path := fmt.Sprintf("%s/firewallRules/%s", c.serverPath(resourceGroup, serverName), name)
	err := c.Rest.DoRequest(ctx, http.MethodDelete, withAPIVersion(path), nil, nil)
	if err != nil {
		return fmt.Errorf("delete firewall rule %q on server %q: %w", name, serverName, err)
	}
	return nil
}
