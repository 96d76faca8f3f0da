// Package provider implements the postgresql_firewall_rule resource
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
	"github.com/platops/terraform-provider-azureinfra/internal/validators"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                = &postgresqlFirewallRuleResource{}
	_ resource.ResourceWithConfigure   = &postgresqlFirewallRuleResource{}
	_ resource.ResourceWithImportState = &postgresqlFirewallRuleResource{}
)

// NewPostgresqlFirewallRuleResource is a helper function to simplify the provider implementation
func NewPostgresqlFirewallRuleResource() resource.Resource {
	return &postgresqlFirewallRuleResource{}
}

// postgresqlFirewallRuleResource is the resource implementation
type postgresqlFirewallRuleResource struct {
	providerData *ProviderData
}

// Metadata returns the resource type name
func (r *postgresqlFirewallRuleResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_postgresql_firewall_rule"
}

// Schema defines the schema for the resource
func (r *postgresqlFirewallRuleResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages a firewall rule on a PostgreSQL flexible server. The default 0.0.0.0-0.0.0.0 " +
			"range is the service convention for allowing trusted platform services only.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "ARM resource ID of the firewall rule",
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
				Description: "Firewall rule name. Changing this value forces replacement.",
				Required:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
				Validators: []validator.String{
					stringvalidator.LengthBetween(1, 128),
				},
			},
			"start_ip_address": schema.StringAttribute{
				Description: "Inclusive lower bound of the permitted IPv4 range. Defaults to 0.0.0.0.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("0.0.0.0"),
				Validators: []validator.String{
					validators.IPv4Address(),
				},
			},
			"end_ip_address": schema.StringAttribute{
				Description: "Inclusive upper bound of the permitted IPv4 range. Defaults to 0.0.0.0.",
				Optional:    true,
				Computed:    true,
				Default:     stringdefault.StaticString("0.0.0.0"),
				Validators: []validator.String{
					validators.IPv4Address(),
				},
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *postgresqlFirewallRuleResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// upsert creates or updates the rule from the plan; Create and Update share it
func (r *postgresqlFirewallRuleResource) upsert(ctx context.Context, plan *models.FirewallRuleModel, operation string) error {
	serverID, err := helpers.ParseServerID(plan.ServerID.ValueString())
	if err != nil {
		return err
	}

	payload := &models.FirewallRuleAPI{
		Properties: models.FirewallRuleProperties{
			StartIPAddress: plan.StartIPAddress.ValueString(),
			EndIPAddress:   plan.EndIPAddress.ValueString(),
		},
	}

	var rule *models.FirewallRuleAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		rule, apiErr = r.providerData.Client.CreateOrUpdateFirewallRule(ctx,
			serverID.ResourceGroup, serverID.Name, plan.Name.ValueString(), payload)
		return apiErr
	})
	if err != nil {
		LogOperationError(ctx, operation, "postgresql_firewall_rule", err)
		return err
	}

	if rule.ID != nil {
		plan.ID = types.StringValue(*rule.ID)
	}
	plan.StartIPAddress = types.StringValue(rule.Properties.StartIPAddress)
	plan.EndIPAddress = types.StringValue(rule.Properties.EndIPAddress)
	return nil
}

// Create creates the resource and sets the initial Terraform state
func (r *postgresqlFirewallRuleResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.FirewallRuleModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Creating firewall rule", map[string]interface{}{
		"name": plan.Name.ValueString(),
	})

	if err := r.upsert(ctx, &plan, "create"); err != nil {
		resp.Diagnostics.Append(client.MapError(err, "Create Firewall Rule"))
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *postgresqlFirewallRuleResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.FirewallRuleModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	ruleID, err := helpers.ParseFirewallRuleID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Firewall Rule ID", err.Error())
		return
	}

	var rule *models.FirewallRuleAPI
	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		var apiErr error
		rule, apiErr = r.providerData.Client.GetFirewallRule(ctx,
			ruleID.ResourceGroup, ruleID.ServerName, ruleID.Name)
		return apiErr
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			LogDriftDetected(ctx, "postgresql_firewall_rule", state.ID.ValueString())
			resp.State.RemoveResource(ctx)
			return
		}
		LogOperationError(ctx, "read", "postgresql_firewall_rule", err)
		resp.Diagnostics.Append(client.MapError(err, "Read Firewall Rule"))
		return
	}

	state.Name = types.StringValue(rule.Name)
	state.StartIPAddress = types.StringValue(rule.Properties.StartIPAddress)
	state.EndIPAddress = types.StringValue(rule.Properties.EndIPAddress)
	if state.ServerID.IsNull() {
		state.ServerID = types.StringValue(fmt.Sprintf(
			"/subscriptions/%s/resourceGroups/%s/providers/Microsoft.DBforPostgreSQL/flexibleServers/%s",
			ruleID.SubscriptionID, ruleID.ResourceGroup, ruleID.ServerName))
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update updates the resource and sets the updated Terraform state on success
func (r *postgresqlFirewallRuleResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.FirewallRuleModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating firewall rule", map[string]interface{}{
		"id": plan.ID.ValueString(),
	})

	if err := r.upsert(ctx, &plan, "update"); err != nil {
		resp.Diagnostics.Append(client.MapError(err, "Update Firewall Rule"))
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete deletes the resource and removes the Terraform state on success
func (r *postgresqlFirewallRuleResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.FirewallRuleModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	ruleID, err := helpers.ParseFirewallRuleID(state.ID.ValueString())
	if err != nil {
		resp.Diagnostics.AddError("Invalid Firewall Rule ID", err.Error())
		return
	}

	tflog.Info(ctx, "Deleting firewall rule", map[string]interface{}{
		"id": state.ID.ValueString(),
	})

	err = client.RetryWithBackoff(ctx, client.DefaultRetryConfig(), func() error {
		return r.providerData.Client.DeleteFirewallRule(ctx,
			ruleID.ResourceGroup, ruleID.ServerName, ruleID.Name)
	})
	if err != nil {
		if client.IsNotFoundError(err) {
			tflog.Warn(ctx, "Firewall rule already deleted", map[string]interface{}{
				"id": state.ID.ValueString(),
			})
			return
		}
		LogOperationError(ctx, "delete", "postgresql_firewall_rule", err)
		resp.Diagnostics.Append(client.MapError(err, "Delete Firewall Rule"))
		return
	}
}

// ImportState imports an existing resource into Terraform state
func (r *postgresqlFirewallRuleResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resource.ImportStatePassthroughID(ctx, path.Root("id"), req, resp)

	tflog.Info(ctx, "Imported firewall rule", map[string]interface{}{
		"id": req.ID,
	})
}
