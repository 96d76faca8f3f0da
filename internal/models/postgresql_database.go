package models

import (
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// PostgresqlDatabaseModel represents a database on a flexible server in Terraform state.
// Every configurable attribute forces replacement - the control plane does not
// support in-place database mutation.
type PostgresqlDatabaseModel struct {
	ID        types.String `tfsdk:"id"`
	ServerID  types.String `tfsdk:"server_id"`
	Name      types.String `tfsdk:"name"`
	Charset   types.String `tfsdk:"charset"`
	Collation types.String `tfsdk:"collation"`

	// Computed: postgresql://{login}@{fqdn}:5432/{name}?sslmode=require
	ConnectionString types.String `tfsdk:"connection_string"`
}

// PostgresqlDatabaseAPI represents a database for control-plane API operations
type PostgresqlDatabaseAPI struct {
	ID         *string                      `json:"id,omitempty" mapstructure:"id"`
	Name       string                       `json:"name" mapstructure:"name"`
	Properties PostgresqlDatabaseProperties `json:"properties" mapstructure:"properties"`
}

// PostgresqlDatabaseProperties holds charset and collation, both fixed at creation
type PostgresqlDatabaseProperties struct {
	Charset   string `json:"charset,omitempty" mapstructure:"charset"`
	Collation string `json:"collation,omitempty" mapstructure:"collation"`
}
