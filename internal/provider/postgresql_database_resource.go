// Package provider implements the postgresql_database resource
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
	_ resource.Resource                = &postgresqlDatabaseResource{}
	_ resource.ResourceWithConfigure   = &postgresqlDatabaseResource{}
	_ resource.ResourceWithImportState = &postgresqlDatabaseResource{}
)

// NewPostgresqlDatabaseResource is a helper function to simplify the provider implementation
func NewPostgresqlDatabaseResource() resource.Resource {
	return &postgresqlDatabaseResource{}
}

// postgresqlDatabaseResource is the resource implementation
type postgresqlDatabaseResource struct {
	providerData *ProviderData
}

// Metadata returns the resource type name
func (r *postgresqlDatabaseResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_postgresql_database"
}

// Schema defines the schema for the resource
func (r *postgresqlDatabaseResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages a database on a PostgreSQL flexible server. The control plane does not support " +
			"in-place database mutation, so every configurable attribute forces replacement.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "ARM resource ID of the database",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"server_id": schema.StringAttribute{
				Description: "ARM resource ID of the owning azureinfra_postgresql_server",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"name": schema.StringAttribute{
				Description: "Database name",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthBetween(1, 63),
				},
			},
			"charset": schema.StringAttribute{
				Description: "Character set. Defaults to UTF8.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("UTF8"),
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"collation": schema.StringAttribute{
				Description: "Collation. Defaults to en_US.utf8.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("en_US.utf8"),
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"connection_string": schema.StringAttribute{
				Description: "Client connection string: postgresql://{login}@{fqdn}:5432/{name}?sslmode=require. " +
					"TLS is always required. The string carries no password.",
				Computed: true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *postgresqlDatabaseResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// connectionString renders the database connection string from the owning
// server's login and FQDN
func (r *postgresqlDatabaseResource) connectionString(ctx context.Context, serverID *helpers.ServerID, databaseName string) (string, error) {
	var server *models.PostgresqlServerAPI
	err := client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		server, apiErr = r.providerData.Client.GetServer(ctx, serverID.ResourceGroup, serverID.Name)
		return apiErr
	})
	if err != nil {
		return "", err
	}
	if server.Properties.FullyQualifiedDomainName == nil {
		return "", fmt.Errorf("server %q has no FQDN yet", serverID.Name)
	}
	return models.PostgresConnectionString(
		server.Properties.AdministratorLogin,
		*server.Properties.FullyQualifiedDomainName,
		databaseName,
	), nil
}

// Create creates the resource and sets the initial Terraform state
func (r *postgresqlDatabaseResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.PostgresqlDatabaseModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	serverID, err := helpers.ParseServerID(plan.ServerID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Server ID", err.Error())
		return
	}

	tflog.Info(ctx, "Creating PostgreSQL database", map[string]interface{}{
		"name":   plan.Name.ValueString(),
		"server": serverID.Name,
	})

	payload := &models.PostgresqlDatabaseAPI{
		Properties: models.PostgresqlDatabaseProperties{
			Charset:   plan.Charset.ValueString(),
			Collation: plan.Collation.ValueString(),
		},
	}

	var database *models.PostgresqlDatabaseAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		database, apiErr = r.providerData.Client.CreateOrUpdateDatabase(ctx,
			serverID.ResourceGroup, serverID.Name, plan.Name.ValueString(), payload)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, "create", "postgresql_database", err)
		resp.Diagnostics.Append(client.MapError(err, "Create PostgreSQL Database"))
		return
	}

	if database.ID != nil {
		plan.ID = types.StringValue(*database.ID)
	}
	plan.Charset = types.StringValue(database.Properties.Charset)
	plan.Collation = types.StringValue(database.Properties.Collation)

	connStr, err := r.connectionString(ctx, serverID, plan.Name.ValueString())
	if err != nil {
		resp.Diagnostics.Append(client.MapError(err, "Resolve Database Connection String"))
		return
	}
	plan.ConnectionString = types.StringValue(connStr)

	tflog.Info(ctx, "Created PostgreSQL database", map[string]interface{}{
		"id": plan.ID.ValueString(),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *postgresqlDatabaseResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.PostgresqlDatabaseModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	databaseID, err := helpers.ParseDatabaseID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Database ID", err.Error())
		return
	}

	tflog.Debug(ctx, "Reading PostgreSQL database", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	var database *models.PostgresqlDatabaseAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		database, apiErr = r.providerData.Client.GetDatabase(ctx,
			databaseID.ResourceGroup, databaseID.ServerName, databaseID.Name)
		return apiErr
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			LogDriftDetected(ctx, "postgresql_database", state.ID.ValueString())
			resp.State.RemoveResource(ctx)
			return
		}
		LogOperationError(ctx, "read", "postgresql_database", err)
		resp.Diagnostics.Append(client.MapError(err, "Read PostgreSQL Database"))
		return
	}

	state.Name = types.StringValue(database.Name)
	state.Charset = types.StringValue(database.Properties.Charset)
	state.Collation = types.StringValue(database.Properties.Collation)

	// server_id is derivable from the database ID; fill it after import
	serverID := &helpers.ServerID{
		SubscriptionID: databaseID.SubscriptionID,
		ResourceGroup:  databaseID.ResourceGroup,
		Name:           databaseID.ServerName,
	}
	if state.ServerID.IsNull() {
		state.ServerID = types.StringValue(fmt.Sprintf(
			"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.DBforPostgreSQL/flexibleServers/%s",
			serverID.SubscriptionID, serverID.ResourceGroup, serverID.Name))
	}

	connStr, err := r.connectionString(ctx, serverID, database.Name)
	if err != nil {
		if client.IsNotFoundError(err) {
			LogDriftDetected(ctx, "postgresql_database", state.ID.ValueString())
			resp.State.RemoveResource(ctx)
			return
		}
		resp.Diagnostics.Append(client.MapError(err, "Resolve Database Connection String"))
		return
	}
	state.ConnectionString = types.StringValue(connStr)

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update is never reached: every configurable attribute forces replacement.
// The framework still requires the method to exist.
func (r *postgresqlDatabaseResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var plan models.PostgresqlDatabaseModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}
	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete deletes the resource and removes the Terraform state on success
func (r *postgresqlDatabaseResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.PostgresqlDatabaseModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	databaseID, err := helpers.ParseDatabaseID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Database ID", err.Error())
		return
	}

	tflog.Info(ctx, "Deleting PostgreSQL database", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		return r.providerData.Client.DeleteDatabase(ctx,
			databaseID.ResourceGroup, databaseID.ServerName, databaseID.Name)
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			tflog.Warn(ctx, "PostgreSQL database already deleted", map[string]interface{}{
				"id": state.ID.ValueString(),
			})
			return
		}
		LogOperationError(ctx, "delete", "postgresql_database", err)
		resp.Diagnostics.Append(client.MapError(err, "Delete PostgreSQL Database"))
		return
	}
}

// ImportState imports an existing resource into Terraform state
func (r *postgresqlDatabaseResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)

	tflog.Info(ctx, "Imported PostgreSQL database", map[string]interface{}{
		"id": req.ID,
	})
}
