package models

import (
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// FirewallRuleModel represents a server firewall rule in Terraform state.
// The 0.0.0.0-0.0.0.0 default range is the Azure convention for "allow
// trusted platform services"; both bounds stay configurable for callers
// that need a real address range.
type FirewallRuleModel struct {
	ID             types.String `tfsdk:"id"`
	ServerID       types.String `tfsdk:"server_id"`
	Name           types.String `tfsdk:"name"`
	StartIPAddress types.String `tfsdk:"start_ip_address"`
	EndIPAddress   types.String `tfsdk:"end_ip_address"`
}

// FirewallRuleAPI represents a firewall rule for control-plane API operations
type FirewallRuleAPI struct {
	ID         *string                `json:"id,omitempty" mapstructure:"id"`
	Name       string                 `json:"name" mapstructure:"name"`
	Properties FirewallRuleProperties `json:"properties" mapstructure:"properties"`
}

// FirewallRuleProperties holds the permitted IPv4 range, inclusive on both ends
type FirewallRuleProperties struct {
	StartIPAddress string `json:"startIpAddress" mapstructure:"startIpAddress"`
	EndIPAddress   string `json:"endIpAddress" mapstructure:"endIpAddress"`
}
