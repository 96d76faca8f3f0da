// Package provider implements the azureinfra Terraform provider
package provider

import (
	"os"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/providerserver"
	"github.com/hashicorp/terraform-plugin-go/tfprotov6"

	"github.com/platops/terraform-provider-azureinfra/internal/armmock"
)

// testAccProtoV6ProviderFactories are used to instantiate a provider during
// acceptance testing. The factory function will be invoked for every Terraform
// CLI command executed to create a provider server to which the CLI can
// reattach.
var testAccProtoV6ProviderFactories = map[string]func() (tfprotov6.ProviderServer, error){
	"azureinfra": providerserver.NewProtocol6WithError(New("test")()),
}

const testAccSubscriptionID = "00000000-0000-0000-0000-000000000001"

// testAccPreCheck validates that acceptance tests are enabled and points the
// provider at the in-process control-plane mock unless the caller already
// configured a real endpoint.
func testAccPreCheck(t *testing.T) {
	t.Helper()

	// Check that TF_ACC is set to enable acceptance tests
	if os.Getenv(EnvTFAcc) == "" {
		t.Skip("TF_ACC must be set to run acceptance tests")
	}

	if os.Getenv(EnvEndpoint) != "" {
		// Real endpoint supplied; the remaining credentials must be too
		for _, envVar := range TestAccPreCheckVars {
			if os.Getenv(envVar) == "" {
				t.Fatalf("%s must be set for acceptance tests", envVar)
			}
		}
		return
	}

	mock := armmock.New()
	t.Cleanup(mock.Close)

	t.Setenv(EnvEndpoint, mock.URL())
	t.Setenv(EnvSubscriptionID, testAccSubscriptionID)
	t.Setenv(EnvTenantID, "00000000-0000-0000-0000-0000000000aa")
	t.Setenv(EnvClientID, "00000000-0000-0000-0000-0000000000bb")
	t.Setenv(EnvClientSecret, "test-client-secret")
}
