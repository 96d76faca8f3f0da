// Package provider implements the azureinfra Terraform provider
package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// SensitiveFields are fields that should NEVER be logged
var SensitiveFields = []string{
	"client_secret",
	"administrator_password",
	"primary_access_key",
	"primary_connection_string",
	"token",
	"bearer",
	"secret",
}

// LogProviderConfig logs provider configuration (masking sensitive data)
func LogProviderConfig(ctx context.Context, config *AzureInfraProviderModel, endpoint string) {
	tflog.Debug(ctx, "Provider configuration loaded", map[string]interface{}{
		"endpoint":        endpoint,
		"subscription_id": config.SubscriptionID.ValueString(),
		// NEVER log: client_secret
	})
}

// LogAuthStart logs authentication attempt
func LogAuthStart(ctx context.Context) {
	tflog.Debug(ctx, "Requesting access token from the control plane")
}

// LogAuthSuccess logs successful authentication
func LogAuthSuccess(ctx context.Context) {
	tflog.Info(ctx, "Successfully authenticated with the control plane")
}

// LogClientInit logs API client initialization
func LogClientInit(ctx context.Context) {
	tflog.Debug(ctx, "Initializing control plane API client")
}

// LogClientSuccess logs successful API client creation
func LogClientSuccess(ctx context.Context) {
	tflog.Info(ctx, "Successfully initialized control plane API client")
}

// LogOperationStart logs the start of an API operation
func LogOperationStart(ctx context.Context, operation string, resourceType string) {
	tflog.Debug(ctx, "Starting operation", map[string]interface{}{
		"operation":     operation,
		"resource_type": resourceType,
	})
}

// LogOperationSuccess logs successful completion of an API operation
func LogOperationSuccess(ctx context.Context, operation string, resourceType string, resourceID string) {
	tflog.Info(ctx, "Operation completed successfully", map[string]interface{}{
		"operation":     operation,
		"resource_type": resourceType,
		"resource_id":   resourceID,
	})
}

// LogOperationError logs operation failure
func LogOperationError(ctx context.Context, operation string, resourceType string, err error) {
	tflog.Error(ctx, "Operation failed", map[string]interface{}{
		"operation":     operation,
		"resource_type": resourceType,
		"error":         err.Error(),
	})
}

// LogDriftDetected logs when state drift is detected
func LogDriftDetected(ctx context.Context, resourceType string, resourceID string) {
	tflog.Warn(ctx, "State drift detected - resource modified outside Terraform", map[string]interface{}{
		"resource_type": resourceType,
		"resource_id":   resourceID,
	})
}
