package models

import (
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// StorageAccountModel represents a blob storage account in Terraform state.
// This model maps to the azureinfra_storage_account resource schema.
//
// AccessTier is Optional+Computed: with a Standard tier the control plane
// defaults it to Hot and the result is read back into state; with a Premium
// tier the field is dropped from the API payload entirely, though a
// configured value is still kept in state.
type StorageAccountModel struct {
	Tags types.Map `tfsdk:"tags"`

	HTTPSTrafficOnlyEnabled types.Bool `tfsdk:"https_traffic_only_enabled"`

	ID   types.String `tfsdk:"id"`
	Name types.String `tfsdk:"name"`

	ResourceGroupName      types.String `tfsdk:"resource_group_name"`
	Location               types.String `tfsdk:"location"`
	AccountTier            types.String `tfsdk:"account_tier"`
	AccountReplicationType types.String `tfsdk:"account_replication_type"`
	AccountKind            types.String `tfsdk:"account_kind"`
	AccessTier             types.String `tfsdk:"access_tier"`
	MinTLSVersion          types.String `tfsdk:"min_tls_version"`

	// Computed attributes
	PrimaryBlobEndpoint     types.String `tfsdk:"primary_blob_endpoint"`
	PrimaryAccessKey        types.String `tfsdk:"primary_access_key"`        // Sensitive
	PrimaryConnectionString types.String `tfsdk:"primary_connection_string"` // Sensitive
}

// StorageAccountDataSourceModel represents the azureinfra_storage_account data
// source: the account lookup plus the resolved container name list.
type StorageAccountDataSourceModel struct {
	Tags types.Map `tfsdk:"tags"`

	ContainerNames types.List `tfsdk:"container_names"`

	ID                      types.String `tfsdk:"id"`
	Name                    types.String `tfsdk:"name"`
	ResourceGroupName       types.String `tfsdk:"resource_group_name"`
	Location                types.String `tfsdk:"location"`
	AccountTier             types.String `tfsdk:"account_tier"`
	AccountReplicationType  types.String `tfsdk:"account_replication_type"`
	AccountKind             types.String `tfsdk:"account_kind"`
	AccessTier              types.String `tfsdk:"access_tier"`
	PrimaryBlobEndpoint     types.String `tfsdk:"primary_blob_endpoint"`
	PrimaryAccessKey        types.String `tfsdk:"primary_access_key"`
	PrimaryConnectionString types.String `tfsdk:"primary_connection_string"`
}
