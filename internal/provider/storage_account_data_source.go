// Package provider implements the storage_account data source
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/platops/terraform-provider-azureinfra/internal/client"
	"github.com/platops/terraform-provider-azureinfra/internal/models"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ datasource.DataSource              = &storageAccountDataSource{}
	_ datasource.DataSourceWithConfigure = &storageAccountDataSource{}
)

// NewStorageAccountDataSource is a helper function to simplify the provider implementation
func NewStorageAccountDataSource() datasource.DataSource {
	return &storageAccountDataSource{}
}

// storageAccountDataSource is the data source implementation
type storageAccountDataSource struct {
	providerData *ProviderData
}

// Metadata returns the data source type name
func (d *storageAccountDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_storage_account"
}

// Schema defines the schema for the data source
func (d *storageAccountDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Looks up an existing storage account by name and resource group, including " +
			"its access key, connection string and the names of its containers.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "ARM resource ID of the storage account",
				Computed:    true,
			},
			"name": schema.StringAttribute{
				Description: "Storage account name",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthBetween(3, 24),
				},
			},
			"resource_group_name": schema.StringAttribute{
				Description: "Resource group the account belongs to",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"location": schema.StringAttribute{
				Description: "Region the account lives in",
				Computed:    true,
			},
			"account_tier": schema.StringAttribute{
				Description: "Performance tier, Standard or Premium",
				Computed:    true,
			},
			"account_replication_type": schema.StringAttribute{
				Description: "Replication type",
				Computed:    true,
			},
			"account_kind": schema.StringAttribute{
				Description: "Account kind",
				Computed:    true,
			},
			"access_tier": schema.StringAttribute{
				Description: "Blob access tier. Null for Premium accounts.",
				Computed:    true,
			},
			"primary_blob_endpoint": schema.StringAttribute{
				Description: "Primary blob service endpoint URL",
				Computed:    true,
			},
			"primary_access_key": schema.StringAttribute{
				Description: "Primary access key",
				Computed:    true,
				Sensitive:   true,
			},
			"primary_connection_string": schema.StringAttribute{
				Description: "Connection string embedding the primary access key",
				Computed:    true,
				Sensitive:   true,
			},
			"container_names": schema.ListAttribute{
				Description: "Names of the blob containers in the account, sorted",
				Computed:    true,
				ElementType: types.StringType,
			},
			"tags": schema.MapAttribute{
				Description: "Resource tags",
				Computed:    true,
				ElementType: types.StringType,
			},
		},
	}
}

// Configure adds the provider configured client to the data source
func (d *storageAccountDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	providerData, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected DataSource Configure Type",
			fmt.Sprintf("Expected *ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	d.providerData = providerData
}

// Read performs the lookup and sets the data source state
func (d *storageAccountDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	if d.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.StorageAccountDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	resourceGroup := state.ResourceGroupName.ValueString()
	name := state.Name.ValueString()

	tflog.Debug(ctx, "Looking up storage account", map[string]interface{}{
		"name":           name,
		"resource_group": resourceGroup,
	})

	var account *models.StorageAccountAPI
	err := client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		account, apiErr = d.providerData.Client.GetStorageAccount(ctx, resourceGroup, name)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "read", "storage_account_data_source", err)
		resp.Diagnostics.Append(client.MapError(err, "Read Storage Account"))
		return
	}

	if account.ID != nil {
		state.ID = types.StringValue(*account.ID)
	}
	state.Location = types.StringValue(account.Location)
	state.AccountKind = types.StringValue(account.Kind)
	if account.SKU != nil {
		state.AccountTier = types.StringValue(account.SKU.Tier)
		state.AccountReplicationType = types.StringValue(account.SKU.Replication)
	}
	if account.Properties.AccessTier != nil {
		state.AccessTier = types.StringValue(*account.Properties.AccessTier)
	} else {
		state.AccessTier = types.StringNull()
	}
	if account.Properties.PrimaryEndpoints != nil {
		state.PrimaryBlobEndpoint = types.StringValue(account.Properties.PrimaryEndpoints.Blob)
	}

	stateTags, diags := tagsFromAPI(ctx, account.Tags)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	state.Tags = stateTags

	var keys *models.StorageKeysResponse
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		keys, apiErr = d.providerData.Client.ListStorageKeys(ctx, resourceGroup, name)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "read", "storage_account_data_source", err)
		resp.Diagnostics.Append(client.MapError(err, "List Storage Account Keys"))
		return
	}
	if len(keys.Keys) == 0 {
		resp.Diagnostics.AddError(
			"Missing Access Keys",
			fmt.Sprintf("Storage account %s returned no access keys", name),
		)
		return
	}
	state.PrimaryAccessKey = types.StringValue(keys.Keys[0].Value)
	state.PrimaryConnectionString = types.StringValue(
		models.StorageConnectionString(name, keys.Keys[0].Value))

	var containers []models.StorageContainerAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		containers, apiErr = d.providerData.Client.ListContainers(ctx, resourceGroup, name)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "read", "storage_account_data_source", err)
		resp.Diagnostics.Append(client.MapError(err, "List Storage Containers"))
		return
	}

	names := make([]string, 0, len(containers))
	for _, container := range containers {
		names = append(names, container.Name)
	}
	containerNames, diags := types.ListValueFrom(ctx, types.StringType, names)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	state.ContainerNames = containerNames

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}
