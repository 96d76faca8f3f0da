// Package models provides data structures for Terraform resources
package models

import (
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// PostgresqlServerModel represents a managed PostgreSQL flexible server in Terraform state.
// This model maps to the azureinfra_postgresql_server resource schema.
//
// Two fields are pinned after creation and must never change on re-apply:
// AdministratorPassword (generated once at Create) and Zone (placement is
// fixed by the control plane on first creation). Both use UseStateForUnknown
// plan modifiers so an unchanged configuration produces an empty plan.
type PostgresqlServerModel struct {
	// Optional metadata - key-value tags
	Tags types.Map `tfsdk:"tags"`

	// High availability block. nil means HA is disabled; the API payload
	// then carries no highAvailability object at all.
	HighAvailability *HighAvailabilityModel `tfsdk:"high_availability"`

	StorageMB           types.Int64 `tfsdk:"storage_mb"`
	BackupRetentionDays types.Int64 `tfsdk:"backup_retention_days"`

	GeoRedundantBackupEnabled types.Bool `tfsdk:"geo_redundant_backup_enabled"`

	// Core identifiers - ARM-style resource ID
	ID   types.String `tfsdk:"id"`
	Name types.String `tfsdk:"name"`

	ResourceGroupName types.String `tfsdk:"resource_group_name"`
	Location          types.String `tfsdk:"location"`
	SKUName           types.String `tfsdk:"sku_name"`
	Version           types.String `tfsdk:"version"`

	AdministratorLogin    types.String `tfsdk:"administrator_login"`
	AdministratorPassword types.String `tfsdk:"administrator_password"` // Sensitive, generated once

	Zone types.String `tfsdk:"zone"`

	// Computed attributes
	FQDN types.String `tfsdk:"fqdn"`
}

// HighAvailabilityModel represents the optional high_availability nested attribute.
// Only SameZone and ZoneRedundant are expressible here; "Disabled" is modeled
// as the absence of the whole block, not as a mode value.
type HighAvailabilityModel struct {
	Mode                    types.String `tfsdk:"mode"`
	StandbyAvailabilityZone types.String `tfsdk:"standby_availability_zone"`
}
