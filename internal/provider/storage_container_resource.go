// Package provider implements the storage_container resource
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringdefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/platops/terraform-provider-azureinfra/internal/client"
	"github.com/platops/terraform-provider-azureinfra/internal/models"
	"github.com/platops/terraform-provider-azureinfra/internal/provider/helpers"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                = &storageContainerResource{}
	_ resource.ResourceWithConfigure   = &storageContainerResource{}
	_ resource.ResourceWithImportState = &storageContainerResource{}
)

// NewStorageContainerResource is a helper function to simplify the provider implementation
func NewStorageContainerResource() resource.Resource {
	return &storageContainerResource{}
}

// storageContainerResource is the resource implementation
type storageContainerResource struct {
	providerData *ProviderData
}

// Metadata returns the resource type name
func (r *storageContainerResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_storage_container"
}

// Schema defines the schema for the resource
func (r *storageContainerResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages a blob container inside a storage account. Containers are keyed by " +
			"name within their account, so adding one never touches its siblings.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "ARM resource ID of the container",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"storage_account_id": schema.StringAttribute{
				Description: "ARM resource ID of the owning azureinfra_storage_account",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"name": schema.StringAttribute{
				Description: "Container name, unique within the account. Changing this value forces replacement.",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthBetween(3, 63),
				},
			},
			"container_access_type": schema.StringAttribute{
				Description: "Access level: private, blob or container. Defaults to private.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("private"),
				Validators: []validator.String{
					stringvalidator.OneOf("private", "blob", "container"),
				},
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *storageContainerResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// upsert creates or updates the container from the plan
func (r *storageContainerResource) upsert(ctx context.Context, plan *models.StorageContainerModel) error {
	accountID, err := helpers.ParseStorageAccountID(plan.StorageAccountID.ValueString())
	if err != nil {
		return err
	}

	payload := &models.StorageContainerAPI{
		Properties: models.StorageContainerProperties{
			PublicAccess: models.ContainerAccessToAPI(plan.ContainerAccessType.ValueString()),
		},
	}

	var container *models.StorageContainerAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		container, apiErr = r.providerData.Client.CreateOrUpdateContainer(ctx,
			accountID.ResourceGroup, accountID.Name, plan.Name.ValueString(), payload)
		return apiErr
	})
	if err != nil {
		return err
	}

	if container.ID != nil {
		plan.ID = types.StringValue(*container.ID)
	}
	plan.ContainerAccessType = types.StringValue(
		models.ContainerAccessFromAPI(container.Properties.PublicAccess))
	return nil
}

// Create creates the resource and sets the initial Terraform state
func (r *storageContainerResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.StorageContainerModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Creating storage container", map[string]interface{}{
		"name": plan.Name.ValueString(),
	})

	if err := r.upsert(ctx, &plan); err != nil {
		LogOperationError(ctx, "create", "storage_container", err)
		resp.Diagnostics.Append(client.MapError(err, "Create Storage Container"))
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *storageContainerResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.StorageContainerModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	containerID, err := helpers.ParseContainerID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Storage Container ID", err.Error())
		return
	}

	var container *models.StorageContainerAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		container, apiErr = r.providerData.Client.GetContainer(ctx,
			containerID.ResourceGroup, containerID.AccountName, containerID.Name)
		return apiErr
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			LogDriftDetected(ctx, "storage_container", state.ID.ValueString())
			resp.State.RemoveResource(ctx)
			return
		}
		LogOperationError(ctx, "read", "storage_container", err)
		resp.Diagnostics.Append(client.MapError(err, "Read Storage Container"))
		return
	}

	state.Name = types.StringValue(container.Name)
	state.ContainerAccessType = types.StringValue(
		models.ContainerAccessFromAPI(container.Properties.PublicAccess))
	if state.StorageAccountID.IsNull() {
		state.StorageAccountID = types.StringValue(fmt.Sprintf(
			"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Storage/storageAccounts/%s",
			containerID.SubscriptionID, containerID.ResourceGroup, containerID.AccountName))
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update updates the resource and sets the updated Terraform state on success
func (r *storageContainerResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.StorageContainerModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating storage container", map[string]interface{}{
		"id": plan.ID.ValueString(),
	})

	if err := r.upsert(ctx, &plan); err != nil {
		LogOperationError(ctx, "update", "storage_container", err)
		resp.Diagnostics.Append(client.MapError(err, "Update Storage Container"))
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete deletes the resource and removes the Terraform state on success
func (r *storageContainerResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.StorageContainerModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	containerID, err := helpers.ParseContainerID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Storage Container ID", err.Error())
		return
	}

	tflog.Info(ctx, "Deleting storage container", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		return r.providerData.Client.DeleteContainer(ctx,
			containerID.ResourceGroup, containerID.AccountName, containerID.Name)
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			tflog.Warn(ctx, "Storage container already deleted", map[string]interface{}{
				"id": state.ID.ValueString(),
			})
			return
		}
		LogOperationError(ctx, "delete", "storage_container", err)
		resp.Diagnostics.Append(client.MapError(err, "Delete Storage Container"))
		return
	}
}

// ImportState imports an existing resource into Terraform state
func (r *storageContainerResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)

	tflog.Info(ctx, "Imported storage container", map[string]interface{}{
		"id": req.ID,
	})
}
