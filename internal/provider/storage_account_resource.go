// Package provider implements the storage_account resource
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/booldefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringdefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/platops/terraform-provider-azureinfra/internal/client"
	"github.com/platops/terraform-provider-azureinfra/internal/models"
	"github.com/platops/terraform-provider-azureinfra/internal/provider/helpers"
	"github.com/platops/terraform-provider-azureinfra/internal/validators"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                = &storageAccountResource{}
	_ resource.ResourceWithConfigure   = &storageAccountResource{}
	_ resource.ResourceWithImportState = &storageAccountResource{}
)

// NewStorageAccountResource is a helper function to simplify the provider implementation
func NewStorageAccountResource() resource.Resource {
	return &storageAccountResource{}
}

// storageAccountResource is the resource implementation
type storageAccountResource struct {
	providerData *ProviderData
}

// Metadata returns the resource type name
func (r *storageAccountResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_storage_account"
}

// Schema defines the schema for the resource
func (r *storageAccountResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages a blob storage account. Every account is created with versioning " +
			"enabled and a 7-day soft-delete window for blobs and containers.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "ARM resource ID of the storage account",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"name": schema.StringAttribute{
				Description: "Globally unique account name, 3-24 lowercase letters and digits. " +
					"Changing this value forces replacement.",
				Required: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					validators.StorageAccountName(),
				},
			},
			"resource_group_name": schema.StringAttribute{
				Description: "Resource group the account belongs to. Changing this value forces replacement.",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"location": schema.StringAttribute{
				Description: "Region the account is created in. Changing this value forces replacement.",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"account_tier": schema.StringAttribute{
				Description: "Performance tier, Standard or Premium. Changing this value forces replacement.",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.OneOf("Standard", "Premium"),
				},
			},
			"account_replication_type": schema.StringAttribute{
				Description: "Replication type: LRS, ZRS, GRS, GZRS, RAGRS or RAGZRS",
				Required:    true,
				Validators: []validator.String{
					validators.ReplicationType(),
				},
			},
			"account_kind": schema.StringAttribute{
				Description: "Account kind. Defaults to StorageV2. Changing this value forces replacement.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("StorageV2"),
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.OneOf("StorageV2", "BlobStorage", "BlockBlobStorage", "FileStorage"),
				},
			},
			"access_tier": schema.StringAttribute{
				Description: "Blob access tier, Hot or Cool. Standard accounts default to Hot; " +
					"Premium accounts do not support tiering and any configured value is never sent.",
				Optional: true,
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
				Validators: []validator.String{
					stringvalidator.OneOf("Hot", "Cool"),
				},
			},
			"min_tls_version": schema.StringAttribute{
				Description: "Minimum TLS version accepted by the account. Defaults to TLS1_2.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("TLS1_2"),
				Validators: []validator.String{
					stringvalidator.OneOf("TLS1_0", "TLS1_1", "TLS1_2"),
				},
			},
			"https_traffic_only_enabled": schema.BoolAttribute{
				Description: "Whether the account rejects plain HTTP traffic. Defaults to true.",
				Optional:    true,
				Computed:    true,
				Default:     booldefault.StaticBool(true),
			},
			"tags": schema.MapAttribute{
				Description: "Resource tags",
				Optional:    true,
				ElementType: types.StringType,
			},
			"primary_blob_endpoint": schema.StringAttribute{
				Description: "Primary blob service endpoint URL",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"primary_access_key": schema.StringAttribute{
				Description: "Primary access key. Generated once at creation and stable across applies.",
				Computed:    true,
				Sensitive:   true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"primary_connection_string": schema.StringAttribute{
				Description: "Connection string embedding the primary access key",
				Computed:    true,
				Sensitive:   true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *storageAccountResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}

	providerData, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Resource Configure Type",
			fmt.Sprintf("Expected *ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	r.providerData = providerData
}

// accountPayload builds the upsert body from the plan. AccessTier is only
// carried for Standard accounts; for Premium the field is dropped from the
// payload entirely, not defaulted and not rejected.
func accountPayload(plan *models.StorageAccountModel) *models.StorageAccountAPI {
	payload := &models.StorageAccountAPI{
		Name:     plan.Name.ValueString(),
		Location: plan.Location.ValueString(),
		Kind:     plan.AccountKind.ValueString(),
		SKU: &models.StorageSKU{
			Tier:        plan.AccountTier.ValueString(),
			Replication: plan.AccountReplicationType.ValueString(),
		},
		Properties: models.StorageAccountProperties{
			MinimumTLSVersion:        plan.MinTLSVersion.ValueString(),
			SupportsHTTPSTrafficOnly: plan.HTTPSTrafficOnlyEnabled.ValueBool(),
		},
	}

	if plan.AccountTier.ValueString() != "Premium" &&
		!plan.AccessTier.IsNull() && !plan.AccessTier.IsUnknown() {
		payload.Properties.AccessTier = models.StringPtr(plan.AccessTier.ValueString())
	}

	return payload
}

// accountStateFromAPI copies computed and server-defaulted fields into state
func accountStateFromAPI(state *models.StorageAccountModel, account *models.StorageAccountAPI) {
	if account.ID != nil {
		state.ID = types.StringValue(*account.ID)
	}
	// Premium accounts report no tier; a configured value is kept in state
	switch {
	case account.Properties.AccessTier != nil:
		state.AccessTier = types.StringValue(*account.Properties.AccessTier)
	case state.AccessTier.IsUnknown():
		state.AccessTier = types.StringNull()
	}
	if account.Properties.PrimaryEndpoints != nil {
		state.PrimaryBlobEndpoint = types.StringValue(account.Properties.PrimaryEndpoints.Blob)
	}
	state.MinTLSVersion = types.StringValue(account.Properties.MinimumTLSVersion)
	state.HTTPSTrafficOnlyEnabled = types.BoolValue(account.Properties.SupportsHTTPSTrafficOnly)
}

// refreshKeys fetches the primary key and derives the connection string
func (r *storageAccountResource) refreshKeys(ctx context.Context, state *models.StorageAccountModel, resourceGroup, name string) error {
	var keys *models.StorageKeysResponse
	err := client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		keys, apiErr = r.providerData.Client.ListStorageKeys(ctx, resourceGroup, name)
		return apiErr
	})
	if err != nil {
		return err
	}
	if len(keys.Keys) == 0 {
		return fmt.Errorf("storage account %s returned no access keys", name)
	}

	state.PrimaryAccessKey = types.StringValue(keys.Keys[0].Value)
	state.PrimaryConnectionString = types.StringValue(
		models.StorageConnectionString(name, keys.Keys[0].Value))
	return nil
}

// Create creates the resource and sets the initial Terraform state
func (r *storageAccountResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.StorageAccountModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Creating storage account", map[string]interface{}{
		"name":           plan.Name.ValueString(),
		"resource_group": plan.ResourceGroupName.ValueString(),
		"tier":           plan.AccountTier.ValueString(),
	})

	payload := accountPayload(&plan)

	tags, diags := tagsToAPI(ctx, plan.Tags)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	payload.Tags = tags

	var account *models.StorageAccountAPI
	err := client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		account, apiErr = r.providerData.Client.CreateOrUpdateStorageAccount(ctx,
			plan.ResourceGroupName.ValueString(), plan.Name.ValueString(), payload)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "create", "storage_account", err)
		resp.Diagnostics.Append(client.MapError(err, "Create Storage Account"))
		return
	}

	accountStateFromAPI(&plan, account)

	// Durability policy applied to every account: versioning plus 7-day
	// soft delete for blobs and containers
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		return r.providerData.Client.SetBlobServiceProperties(ctx,
			plan.ResourceGroupName.ValueString(), plan.Name.ValueString(),
			models.DefaultBlobServiceProperties())
	})
	if err != nil {
		LogOperationError(ctx, "create", "storage_account", err)
		resp.Diagnostics.Append(client.MapError(err, "Configure Blob Service Properties"))
		return
	}

	if err := r.refreshKeys(ctx, &plan, plan.ResourceGroupName.ValueString(), plan.Name.ValueString()); err != nil {
		LogOperationError(ctx, "create", "storage_account", err)
		resp.Diagnostics.Append(client.MapError(err, "List Storage Account Keys"))
		return
	}

	LogOperationSuccess(ctx, "create", "storage_account", plan.ID.ValueString())

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *storageAccountResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.StorageAccountModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	accountID, err := helpers.ParseStorageAccountID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Storage Account ID", err.Error())
		return
	}

	var account *models.StorageAccountAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		account, apiErr = r.providerData.Client.GetStorageAccount(ctx,
			accountID.ResourceGroup, accountID.Name)
		return apiErr
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			LogDriftDetected(ctx, "storage_account", state.ID.ValueString())
			resp.State.RemoveResource(ctx)
			return
		}
		LogOperationError(ctx, "read", "storage_account", err)
		resp.Diagnostics.Append(client.MapError(err, "Read Storage Account"))
		return
	}

	state.Name = types.StringValue(account.Name)
	state.ResourceGroupName = types.StringValue(accountID.ResourceGroup)
	state.Location = types.StringValue(account.Location)
	state.AccountKind = types.StringValue(account.Kind)
	if account.SKU != nil {
		state.AccountTier = types.StringValue(account.SKU.Tier)
		state.AccountReplicationType = types.StringValue(account.SKU.Replication)
	}
	accountStateFromAPI(&state, account)

	stateTags, diags := tagsFromAPI(ctx, account.Tags)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	state.Tags = stateTags

	if err := r.refreshKeys(ctx, &state, accountID.ResourceGroup, accountID.Name); err != nil {
		LogOperationError(ctx, "read", "storage_account", err)
		resp.Diagnostics.Append(client.MapError(err, "List Storage Account Keys"))
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update updates the resource and sets the updated Terraform state on success
func (r *storageAccountResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan, state models.StorageAccountModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating storage account", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	payload := accountPayload(&plan)

	tags, diags := tagsToAPI(ctx, plan.Tags)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	payload.Tags = tags

	var account *models.StorageAccountAPI
	err := client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		account, apiErr = r.providerData.Client.CreateOrUpdateStorageAccount(ctx,
			plan.ResourceGroupName.ValueString(), plan.Name.ValueString(), payload)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "update", "storage_account", err)
		resp.Diagnostics.Append(client.MapError(err, "Update Storage Account"))
		return
	}

	plan.ID = state.ID
	accountStateFromAPI(&plan, account)

	// Keys are stable across upserts; carry them forward from state
	plan.PrimaryAccessKey = state.PrimaryAccessKey
	plan.PrimaryConnectionString = state.PrimaryConnectionString
	if plan.PrimaryBlobEndpoint.IsUnknown() {
		plan.PrimaryBlobEndpoint = state.PrimaryBlobEndpoint
	}

	LogOperationSuccess(ctx, "update", "storage_account", plan.ID.ValueString())

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete deletes the resource and removes the Terraform state on success
func (r *storageAccountResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.StorageAccountModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	accountID, err := helpers.ParseStorageAccountID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Storage Account ID", err.Error())
		return
	}

	tflog.Info(ctx, "Deleting storage account", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		return r.providerData.Client.DeleteStorageAccount(ctx,
			accountID.ResourceGroup, accountID.Name)
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			tflog.Warn(ctx, "Storage account already deleted", map[string]interface{}{
				"id": state.ID.ValueString(),
			})
			return
		}
		LogOperationError(ctx, "delete", "storage_account", err)
		resp.Diagnostics.Append(client.MapError(err, "Delete Storage Account"))
		return
	}
}

// ImportState imports an existing resource into Terraform state. The access
// key and connection string are refreshed on the first Read after import.
func (r *storageAccountResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)

	tflog.Info(ctx, "Imported storage account", map[string]interface{}{
		"id": req.ID,
	})
}
