package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/platops/terraform-provider-azureinfra/internal/models"
)

// CreateOrUpdateStorageAccount provisions a storage account (PUT upsert).
// Account names are globally unique; a collision comes back as an HTTP 409
// with code NameAlreadyTaken and is not retried.
func (c *Client) CreateOrUpdateStorageAccount(ctx context.Context, resourceGroup, name string, account *models.StorageAccountAPI) (*models.StorageAccountAPI, error) {
	var result models.StorageAccountAPI
	err := c.Rest.DoRequest(ctx, http.MethodPut, withAPIVersion(c.storageAccountPath(resourceGroup, name)), account, &result)
	if err != nil {
		return nil, fmt.Errorf("create storage account %q: %w", name, err)
	}
	return &result, nil
}

// GetStorageAccount reads a storage account
func (c *Client) GetStorageAccount(ctx context.Context, resourceGroup, name string) (*models.StorageAccountAPI, error) {
	var result models.StorageAccountAPI
	err := c.Rest.DoRequest(ctx, http.MethodGet, withAPIVersion(c.storageAccountPath(resourceGroup, name)), nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteStorageAccount removes a storage account and all containers in it
func (c *Client) DeleteStorageAccount(ctx context.Context, resourceGroup, name string) error {
	err := c.Rest.DoRequest(ctx, http.MethodDelete, withAPIVersion(c.storageAccountPath(resourceGroup, name)), nil, nil)
	if err != nil {
		return fmt.Errorf("delete storage account %q: %w", name, err)
	}
	return nil
}

// ListStorageKeys returns the account access keys. Keys are generated once at
// account creation and stay stable until explicitly rotated, which this
// provider never does implicitly.
func (c *Client) ListStorageKeys(ctx context.Context, resourceGroup, name string) (*models.StorageKeysResponse, error) {
	path := fmt.Sprintf("%s/listKeys", c.storageAccountPath(resourceGroup, name))
	var result models.StorageKeysResponse
	err := c.Rest.DoRequest(ctx, http.MethodPost, withAPIVersion(path), nil, &result)
	if err != nil {
		return nil, fmt.Errorf("list keys for storage account %q: %w", name, err)
	}
	return &result, nil
}

// SetBlobServiceProperties applies the blob-service durability policy
// (versioning, soft-delete retention) to an account
func (c *Client) SetBlobServiceProperties(ctx context.Context, resourceGroup, name string, props *models.BlobServicePropertiesAPI) error {
	path := fmt.Sprintf("%s/blobServices/default", c.storageAccountPath(resourceGroup, name))
	err := c.Rest.DoRequest(ctx, http.MethodPut, withAPIVersion(path), props, nil)
	if err != nil {
		return fmt.Errorf("set blob service properties for %q: %w", name, err)
	}
	return nil
}

// CreateOrUpdateContainer upserts a blob container in a storage account
func (c *Client) CreateOrUpdateContainer(ctx context.Context, resourceGroup, accountName, name string, container *models.StorageContainerAPI) (*models.StorageContainerAPI, error) {
	path := fmt.Sprintf("%s/blobServices/default/containers/%s", c.storageAccountPath(resourceGroup, accountName), name)
	var result models.StorageContainerAPI
	err := c.Rest.DoRequest(ctx, http.MethodPut, withAPIVersion(path), container, &result)
	if err != nil {
		return nil, fmt.Errorf("create container %q in account %q: %w", name, accountName, err)
	}
	return &result, nil
}

// GetContainer reads a blob container
func (c *Client) GetContainer(ctx context.Context, resourceGroup, accountName, name string) (*models.StorageContainerAPI, error) {
	path := fmt.Sprintf("%s/blobServices/default/containers/%s", c.storageAccountPath(resourceGroup, accountName), name)
	var result models.StorageContainerAPI
	err := c.Rest.DoRequest(ctx, http.MethodGet, withAPIVersion(path), nil, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteContainer removes a blob container from a storage account
func (c *Client) DeleteContainer(ctx context.Context, resourceGroup, accountName, name string) error {
	path := fmt.Sprintf("%s/blobServices/default/containers/%s", c.storageAccountPath(resourceGroup, accountName), name)
	err := c.Rest.DoRequest(ctx, http.MethodDelete, withAPIVersion(path), nil, nil)
	if err != nil {
		return fmt.Errorf("delete container %q in account %q: %w", name, accountName, err)
	}
	return nil
}

// ListContainers returns every container in a storage account, sorted by name
func (c *Client) ListContainers(ctx context.Context, resourceGroup, accountName string) ([]models.StorageContainerAPI, error) {
	path := fmt.Sprintf("%s/blobServices/default/containers", c.storageAccountPath(resourceGroup, accountName))
	var result struct {
		Value []models.StorageContainerAPI `json:"value"`
	}
	err := c.Rest.DoRequest(ctx, http.MethodGet, withAPIVersion(path), nil, &result)
	if err != nil {
		return nil, fmt.Errorf("list containers in account %q: %w", accountName, err)
	}
	return result.Value, nil
}
