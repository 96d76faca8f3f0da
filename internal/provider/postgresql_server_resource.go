// Package provider implements the postgresql_server resource
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/booldefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/boolplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/int64default"
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
	_ resource.Resource                = &postgresqlServerResource{}
	_ resource.ResourceWithConfigure   = &postgresqlServerResource{}
	_ resource.ResourceWithImportState = &postgresqlServerResource{}
)

// NewPostgresqlServerResource is a helper function to simplify the provider implementation
func NewPostgresqlServerResource() resource.Resource {
	return &postgresqlServerResource{}
}

// postgresqlServerResource is the resource implementation
type postgresqlServerResource struct {
	providerData *ProviderData
}

// Metadata returns the resource type name
func (r *postgresqlServerResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_postgresql_server"
}

// Schema defines the schema for the resource
func (r *postgresqlServerResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages a managed PostgreSQL flexible server. The administrator password is generated " +
			"by the provider at creation, stored as a sensitive attribute, and never regenerated on subsequent applies. " +
			"Availability zone placement is likewise fixed at creation.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "ARM resource ID of the server",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"name": schema.StringAttribute{
				Description: "Server name. Forms the FQDN ({name}" + models.ServerFQDNSuffix + "), " +
					"so it must be unique across the service. Changing this value forces replacement.",
				Required: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthBetween(3, 63),
				},
			},
			"resource_group_name": schema.StringAttribute{
				Description: "Resource group the server lives in. Changing this value forces replacement.",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"location": schema.StringAttribute{
				Description: "Azure region (e.g. westeurope). Changing this value forces replacement.",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"sku_name": schema.StringAttribute{
				Description: "Compute SKU, e.g. B_Standard_B1ms, GP_Standard_D2s_v3, MO_Standard_E4s_v3. " +
					"The tier prefix (B_, GP_, MO_) selects Burstable, GeneralPurpose, or MemoryOptimized compute.",
				Required: true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"version": schema.StringAttribute{
				Description: "Major PostgreSQL version. Defaults to 16. In-place major version upgrades are " +
					"applied via update; downgrades are rejected by the control plane.",
				Optional: true,
				Computed: true,
				Default:  stringdefault.StaticString("16"),
				Validators: []validator.String{
					stringvalidator.OneOf("11", "12", "13", "14", "15", "16"),
				},
			},
			"administrator_login": schema.StringAttribute{
				Description: "Administrator login name. Defaults to pgadmin. Changing this value forces replacement.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("pgadmin"),
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthBetween(1, 63),
				},
			},
			"administrator_password": schema.StringAttribute{
				Description: "Administrator password, generated by the provider at creation and pinned afterwards. " +
					"Re-applying an unchanged configuration never rotates it.",
				Computed:  true,
				Sensitive: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"zone": schema.StringAttribute{
				Description: "Availability zone (1, 2, or 3). When omitted the control plane picks a zone at " +
					"creation; either way the placement is pinned and never changes on re-apply.",
				Optional: true,
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
				Validators: []validator.String{
					validators.AvailabilityZone(),
				},
			},
			"storage_mb": schema.Int64Attribute{
				Description: "Provisioned storage in megabytes. Defaults to 32768 (32 GiB). Storage can grow " +
					"in place but the control plane rejects shrinking.",
				Optional: true,
				Computed: true,
				Default:  int64default.StaticInt64(32768),
				Validators: []validator.Int64{
					int64validator.Between(32768, 33554432),
				},
			},
			"backup_retention_days": schema.Int64Attribute{
				Description: "Backup retention window in days (7-35). Defaults to 7.",
				Optional:    true,
				Computed:    true,
				Default:     int64default.StaticInt64(7),
				Validators: []validator.Int64{
					int64validator.Between(7, 35),
				},
			},
			"geo_redundant_backup_enabled": schema.BoolAttribute{
				Description: "Replicate backups to the paired region. Defaults to false. " +
					"Changing this value forces replacement.",
				Optional: true,
				Computed: true,
				Default:  booldefault.StaticBool(false),
				PlanModifiers: []planmodifier.Bool{
					boolplanmodifier.RequiresReplace(),
				},
			},
			"high_availability": schema.SingleNestedAttribute{
				Description: "Standby replica configuration. Omit the whole block to run without high " +
					"availability; the API payload then carries no high availability object at all.",
				Optional: true,
				Attributes: map[string]schema.Attribute{
					"mode": schema.StringAttribute{
						Description: "SameZone places the standby in the primary's zone, ZoneRedundant in a different one.",
						Required:    true,
						Validators: []validator.String{
							stringvalidator.OneOf("SameZone", "ZoneRedundant"),
						},
					},
					"standby_availability_zone": schema.StringAttribute{
						Description: "Zone for the standby replica (1, 2, or 3). Only meaningful with ZoneRedundant mode.",
						Optional:    true,
						Validators: []validator.String{
							validators.AvailabilityZone(),
						},
					},
				},
			},
			"tags": schema.MapAttribute{
				Description: "Key-value tags applied to the server",
				ElementType: types.StringType,
				Optional:    true,
			},

			// Computed attributes
			"fqdn": schema.StringAttribute{
				Description: "Fully qualified domain name clients connect to",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *postgresqlServerResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	// Prevent panic if the provider has not been configured
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

// serverPayload builds the API representation of the planned server
func serverPayload(plan *models.PostgresqlServerModel) *models.PostgresqlServerAPI {
	api := &models.PostgresqlServerAPI{
		Location: plan.Location.ValueString(),
		SKU:      &models.ServerSKU{Name: plan.SKUName.ValueString()},
		Properties: models.PostgresqlServerProperties{
			AdministratorLogin: plan.AdministratorLogin.ValueString(),
			Version:            plan.Version.ValueString(),
			Storage: &models.ServerStorage{
				StorageSizeMB: plan.StorageMB.ValueInt64(),
			},
			Backup: &models.ServerBackup{
				BackupRetentionDays:       plan.BackupRetentionDays.ValueInt64(),
				GeoRedundantBackupEnabled: plan.GeoRedundantBackupEnabled.ValueBool(),
			},
		},
	}

	if !plan.Zone.IsNull() && !plan.Zone.IsUnknown() {
		api.Properties.AvailabilityZone = models.StringPtr(plan.Zone.ValueString())
	}

	// Disabled HA is structural: no block in config, no object on the wire
	if plan.HighAvailability != nil {
		ha := &models.ServerHighAvailability{
			Mode: plan.HighAvailability.Mode.ValueString(),
		}
		if !plan.HighAvailability.StandbyAvailabilityZone.IsNull() && !plan.HighAvailability.StandbyAvailabilityZone.IsUnknown() {
			ha.StandbyAvailabilityZone = models.StringPtr(plan.HighAvailability.StandbyAvailabilityZone.ValueString())
		}
		api.Properties.HighAvailability = ha
	}

	return api
}

// serverStateFromAPI copies computed and remote-authoritative fields into the model
func serverStateFromAPI(state *models.PostgresqlServerModel, server *models.PostgresqlServerAPI) {
	if server.ID != nil {
		state.ID = types.StringValue(*server.ID)
	}
	if server.Properties.FullyQualifiedDomainName != nil {
		state.FQDN = types.StringValue(*server.Properties.FullyQualifiedDomainName)
	}
	if server.Properties.AvailabilityZone != nil {
		state.Zone = types.StringValue(*server.Properties.AvailabilityZone)
	} else {
		state.Zone = types.StringNull()
	}
}

// Create creates the resource and sets the initial Terraform state
func (r *postgresqlServerResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.PostgresqlServerModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Creating PostgreSQL server", map[string]interface{}{
		"name":                plan.Name.ValueString(),
		"resource_group_name": plan.ResourceGroupName.ValueString(),
	})

	// Generated once, pinned in state afterwards
	password, err := GeneratePassword(AdminPasswordLength)
	if err != nil {
		resp.Diagnostics.AddError(
			"Password Generation Failed",
			"Unable to generate the administrator password: "+err.Error(),
		)
		return
	}

	payload := serverPayload(&plan)
	payload.Properties.AdministratorLoginPassword = models.StringPtr(password)

	tags, diags := tagsToAPI(ctx, plan.Tags)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	payload.Tags = tags

	var server *models.PostgresqlServerAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		server, apiErr = r.providerData.Client.CreateOrUpdateServer(ctx,
			plan.ResourceGroupName.ValueString(), plan.Name.ValueString(), payload)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "create", "postgresql_server", err)
		resp.Diagnostics.Append(client.MapError(err, "Create PostgreSQL Server"))
		return
	}

	serverStateFromAPI(&plan, server)
	plan.AdministratorPassword = types.StringValue(password)

	tflog.Info(ctx, "Created PostgreSQL server", map[string]interface{}{
		"id": plan.ID.ValueString(),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *postgresqlServerResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.PostgresqlServerModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	serverID, err := helpers.ParseServerID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Server ID", err.Error())
		return
	}

	tflog.Debug(ctx, "Reading PostgreSQL server", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	var server *models.PostgresqlServerAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		server, apiErr = r.providerData.Client.GetServer(ctx, serverID.ResourceGroup, serverID.Name)
		return apiErr
	})
	if err != nil {
		// Deleted outside Terraform: drop from state so the next plan recreates it
		if client.IsNotFoundError(err) {
			LogDriftDetected(ctx, "postgresql_server", state.ID.ValueString())
			resp.State.RemoveResource(ctx)
			return
		}
		LogOperationError(ctx, "read", "postgresql_server", err)
		resp.Diagnostics.Append(client.MapError(err, "Read PostgreSQL Server"))
		return
	}

	state.Name = types.StringValue(server.Name)
	state.ResourceGroupName = types.StringValue(serverID.ResourceGroup)
	state.Location = types.StringValue(server.Location)
	if server.SKU != nil {
		state.SKUName = types.StringValue(server.SKU.Name)
	}
	state.Version = types.StringValue(server.Properties.Version)
	state.AdministratorLogin = types.StringValue(server.Properties.AdministratorLogin)
	// administrator_password is write-only on the API and stays as stored in state

	if server.Properties.Storage != nil {
		state.StorageMB = types.Int64Value(server.Properties.Storage.StorageSizeMB)
	}
	if server.Properties.Backup != nil {
		state.BackupRetentionDays = types.Int64Value(server.Properties.Backup.BackupRetentionDays)
		state.GeoRedundantBackupEnabled = types.BoolValue(server.Properties.Backup.GeoRedundantBackupEnabled)
	}

	if server.Properties.HighAvailability != nil && server.Properties.HighAvailability.Mode != "" &&
		server.Properties.HighAvailability.Mode != "Disabled" {
		ha := &models.HighAvailabilityModel{
			Mode:                    types.StringValue(server.Properties.HighAvailability.Mode),
			StandbyAvailabilityZone: types.StringNull(),
		}
		if server.Properties.HighAvailability.StandbyAvailabilityZone != nil {
			ha.StandbyAvailabilityZone = types.StringValue(*server.Properties.HighAvailability.StandbyAvailabilityZone)
		}
		state.HighAvailability = ha
	} else {
		state.HighAvailability = nil
	}

	tagsMap, diags := tagsFromAPI(ctx, server.Tags)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	state.Tags = tagsMap

	serverStateFromAPI(&state, server)

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update updates the resource and sets the updated Terraform state on success
func (r *postgresqlServerResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan, state models.PostgresqlServerModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating PostgreSQL server", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	// PATCH carries only mutable fields. Password and zone are pinned and
	// never resent.
	patch := &models.PostgresqlServerAPI{
		SKU: &models.ServerSKU{Name: plan.SKUName.ValueString()},
		Properties: models.PostgresqlServerProperties{
			Version: plan.Version.ValueString(),
			Storage: &models.ServerStorage{
				StorageSizeMB: plan.StorageMB.ValueInt64(),
			},
			Backup: &models.ServerBackup{
				BackupRetentionDays:       plan.BackupRetentionDays.ValueInt64(),
				GeoRedundantBackupEnabled: plan.GeoRedundantBackupEnabled.ValueBool(),
			},
		},
	}
	if plan.HighAvailability != nil {
		ha := &models.ServerHighAvailability{Mode: plan.HighAvailability.Mode.ValueString()}
		if !plan.HighAvailability.StandbyAvailabilityZone.IsNull() && !plan.HighAvailability.StandbyAvailabilityZone.IsUnknown() {
			ha.StandbyAvailabilityZone = models.StringPtr(plan.HighAvailability.StandbyAvailabilityZone.ValueString())
		}
		patch.Properties.HighAvailability = ha
	}

	tags, diags := tagsToAPI(ctx, plan.Tags)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}
	patch.Tags = tags

	var server *models.PostgresqlServerAPI
	err := client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		server, apiErr = r.providerData.Client.UpdateServer(ctx,
			state.ResourceGroupName.ValueString(), state.Name.ValueString(), patch)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "update", "postgresql_server", err)
		resp.Diagnostics.Append(client.MapError(err, "Update PostgreSQL Server"))
		return
	}

	serverStateFromAPI(&plan, server)
	plan.AdministratorPassword = state.AdministratorPassword

	tflog.Info(ctx, "Updated PostgreSQL server", map[string]interface{}{
		"id": plan.ID.ValueString(),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete deletes the resource and removes the Terraform state on success
func (r *postgresqlServerResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.PostgresqlServerModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Deleting PostgreSQL server", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	err := client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		return r.providerData.Client.DeleteServer(ctx,
			state.ResourceGroupName.ValueString(), state.Name.ValueString())
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			tflog.Warn(ctx, "PostgreSQL server already deleted", map[string]interface{}{
				"id": state.ID.ValueString(),
			})
			return
		}
		LogOperationError(ctx, "delete", "postgresql_server", err)
		resp.Diagnostics.Append(client.MapError(err, "Delete PostgreSQL Server"))
		return
	}

	tflog.Info(ctx, "Deleted PostgreSQL server", map[string]interface{}{
		"id": state.ID.ValueString(),
	})
}

// ImportState imports an existing resource into Terraform state.
// The administrator password cannot be recovered from the control plane
// and stays null after import.
func (r *postgresqlServerResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)

	tflog.Info(ctx, "Imported PostgreSQL server", map[string]interface{}{
		"id": req.ID,
	})
}
