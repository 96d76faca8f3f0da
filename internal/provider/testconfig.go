// Package provider implements the azureinfra Terraform provider
package provider

// Environment variables read by the provider configuration and required for
// acceptance tests. Acceptance tests point these at a mock control plane.
const (
	// TF_ACC must be set to "1" to enable acceptance tests
	EnvTFAcc = "TF_ACC"

	// AZUREINFRA_ENDPOINT is the control plane endpoint
	EnvEndpoint = "AZUREINFRA_ENDPOINT"

	// AZUREINFRA_SUBSCRIPTION_ID is the target subscription
	EnvSubscriptionID = "AZUREINFRA_SUBSCRIPTION_ID"

	// AZUREINFRA_TENANT_ID is the directory tenant
	EnvTenantID = "AZUREINFRA_TENANT_ID"

	// AZUREINFRA_CLIENT_ID is the service principal application ID
	EnvClientID = "AZUREINFRA_CLIENT_ID"

	// AZUREINFRA_CLIENT_SECRET is the service principal secret
	EnvClientSecret = "AZUREINFRA_CLIENT_SECRET"
)

// TestAccPreCheckVars lists the required environment variables for acceptance tests
var TestAccPreCheckVars = []string{
	EnvEndpoint,
	EnvSubscriptionID,
	EnvTenantID,
	EnvClientID,
	EnvClientSecret,
}
