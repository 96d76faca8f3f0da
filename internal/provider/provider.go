// Package provider implements the azureinfra Terraform provider
package provider

import (
	"context"
	"os"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"

	"github.com/platops/terraform-provider-azureinfra/internal/client"
)

// Ensure the implementation satisfies the expected interfaces
var _ provider.Provider = &AzureInfraProvider{}

// AzureInfraProvider defines the provider implementation
type AzureInfraProvider struct {
	// version is set to the provider version on release
	version string
}

// AzureInfraProviderModel describes the provider configuration data
type AzureInfraProviderModel struct {
	Endpoint       types.String `tfsdk:"endpoint"`
	SubscriptionID types.String `tfsdk:"subscription_id"`
	TenantID       types.String `tfsdk:"tenant_id"`
	ClientID       types.String `tfsdk:"client_id"`
	ClientSecret   types.String `tfsdk:"client_secret"`
}

// ProviderData is shared with every resource and data source via Configure
type ProviderData struct {
	Client         *client.Client
	SubscriptionID string
}

// New is a helper function to simplify provider server and testing implementation
func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &AzureInfraProvider{
			version: version,
		}
	}
}

// Metadata returns the provider type name
func (p *AzureInfraProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "azureinfra"
	resp.Version = p.version
}

// Schema defines the provider-level schema for configuration data
func (p *AzureInfraProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Terraform provider for opinionated Azure infrastructure (PostgreSQL flexible servers and storage accounts)",
		Attributes: map[string]schema.Attribute{
			"endpoint": schema.StringAttribute{
				Description: "Control plane endpoint. Defaults to the AZUREINFRA_ENDPOINT environment variable, " +
					"falling back to https://management.azure.com. Point this at a mock control plane for testing.",
				Optional: true,
			},
			"subscription_id": schema.StringAttribute{
				Description: "Azure subscription ID. Can also be set via the AZUREINFRA_SUBSCRIPTION_ID environment variable.",
				Optional:    true,
			},
			"tenant_id": schema.StringAttribute{
				Description: "Azure Active Directory tenant ID. Can also be set via the AZUREINFRA_TENANT_ID environment variable.",
				Optional:    true,
			},
			"client_id": schema.StringAttribute{
				Description: "Service principal application (client) ID. Can also be set via the AZUREINFRA_CLIENT_ID environment variable.",
				Optional:    true,
			},
			"client_secret": schema.StringAttribute{
				Description: "Service principal secret. Can also be set via the AZUREINFRA_CLIENT_SECRET environment variable.",
				Optional:    true,
				Sensitive:   true,
			},
		},
	}
}

// DefaultEndpoint is the public Azure Resource Manager endpoint
const DefaultEndpoint = "https://management.azure.com"

// configValue resolves a provider attribute against its environment fallback
func configValue(attr types.String, envVar string) string {
	if !attr.IsNull() && !attr.IsUnknown() {
		return attr.ValueString()
	}
	return os.Getenv(envVar)
}

// Configure authenticates against the control plane and prepares the API
// client shared by all resources and data sources
func (p *AzureInfraProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var config AzureInfraProviderModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	endpoint := configValue(config.Endpoint, EnvEndpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	subscriptionID := configValue(config.SubscriptionID, EnvSubscriptionID)
	tenantID := configValue(config.TenantID, EnvTenantID)
	clientID := configValue(config.ClientID, EnvClientID)
	clientSecret := configValue(config.ClientSecret, EnvClientSecret)

	if subscriptionID == "" {
		resp.Diagnostics.AddError(
			"Missing Subscription ID",
			"subscription_id must be set in the provider configuration or via the "+EnvSubscriptionID+" environment variable.",
		)
	}
	if tenantID == "" {
		resp.Diagnostics.AddError(
			"Missing Tenant ID",
			"tenant_id must be set in the provider configuration or via the "+EnvTenantID+" environment variable.",
		)
	}
	if clientID == "" {
		resp.Diagnostics.AddError(
			"Missing Client ID",
			"client_id must be set in the provider configuration or via the "+EnvClientID+" environment variable.",
		)
	}
	if clientSecret == "" {
		resp.Diagnostics.AddError(
			"Missing Client Secret",
			"client_secret must be set in the provider configuration or via the "+EnvClientSecret+" environment variable.",
		)
	}
	if resp.Diagnostics.HasError() {
		return
	}

	LogProviderConfig(ctx, &config, endpoint)
	LogAuthStart(ctx)

	token, err := client.GetAccessToken(ctx, &client.AuthConfig{
		Endpoint:     endpoint,
		TenantID:     tenantID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
	if err != nil {
		resp.Diagnostics.Append(client.MapError(err, "Provider Authentication"))
		return
	}
	LogAuthSuccess(ctx)

	LogClientInit(ctx)
	apiClient, err := client.NewClient(endpoint, subscriptionID, token.AccessToken)
	if err != nil {
		resp.Diagnostics.AddError(
			"Client Initialization Failed",
			"Unable to create the control plane API client: "+err.Error(),
		)
		return
	}
	LogClientSuccess(ctx)

	providerData := &ProviderData{
		Client:         apiClient,
		SubscriptionID: subscriptionID,
	}
	resp.ResourceData = providerData
	resp.DataSourceData = providerData
}

// Resources defines the resources implemented in the provider
func (p *AzureInfraProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewPostgresqlServerResource,
		NewPostgresqlDatabaseResource,
		NewPostgresqlFirewallRuleResource,
		NewStorageAccountResource,
		NewStorageContainerResource,
	}
}

// DataSources defines the data sources implemented in the provider
func (p *AzureInfraProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewStorageAccountDataSource,
	}
}
