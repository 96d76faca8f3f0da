// Package provider implements acceptance tests for the postgresql_firewall_rule resource
package provider

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccPostgresqlFirewallRule_defaults tests the platform-services default range
func TestAccPostgresqlFirewallRule_defaults(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccPostgresqlFirewallRuleConfig_defaults,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_postgresql_firewall_rule.test", "name", "allow-azure-services"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_firewall_rule.test", "start_ip_address", "0.0.0.0"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_firewall_rule.test", "end_ip_address", "0.0.0.0"),
					resource.TestCheckResourceAttrSet("azureinfra_postgresql_firewall_rule.test", "id"),
				),
			},
			{
				Config:   testAccPostgresqlFirewallRuleConfig_defaults,
				PlanOnly: true,
			},
			// ImportState testing
			{
				ResourceName:      "azureinfra_postgresql_firewall_rule.test",
				ImportState:       true,
				ImportStateVerify: true,
			},
		},
	})
}

// TestAccPostgresqlFirewallRule_customRange tests an explicit IPv4 range with
// an in-place update of the upper bound
func TestAccPostgresqlFirewallRule_customRange(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccPostgresqlFirewallRuleConfig_officeRange,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_postgresql_firewall_rule.office", "start_ip_address", "203.0.113.0"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_firewall_rule.office", "end_ip_address", "203.0.113.127"),
				),
			},
			{
				Config: testAccPostgresqlFirewallRuleConfig_officeRangeWidened,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_postgresql_firewall_rule.office", "start_ip_address", "203.0.113.0"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_firewall_rule.office", "end_ip_address", "203.0.113.255"),
				),
			},
		},
	})
}

const testAccPostgresqlFirewallRuleConfig_defaults = `
resource "azureinfra_postgresql_server" "owner" {
  name                = "pg-acc-fw"
  resource_group_name = "rg-acc"
  location            = "westeurope"
  sku_name            = "B_Standard_B1ms"
}

resource "azureinfra_postgresql_firewall_rule" "test" {
  server_id = azureinfra_postgresql_server.owner.id
  name      = "allow-azure-services"
}
`

const testAccPostgresqlFirewallRuleConfig_officeRange = `
resource "azureinfra_postgresql_server" "owner" {
  name                = "pg-acc-fw2"
  resource_group_name = "rg-acc"
  location            = "westeurope"
  sku_name            = "B_Standard_B1ms"
}

resource "azureinfra_postgresql_firewall_rule" "office" {
  server_id        = azureinfra_postgresql_server.owner.id
  name             = "office"
  start_ip_address = "203.0.113.0"
  end_ip_address   = "203.0.113.127"
}
`

const testAccPostgresqlFirewallRuleConfig_officeRangeWidened = `
resource "azureinfra_postgresql_server" "owner" {
  name                = "pg-acc-fw2"
  resource_group_name = "rg-acc"
  location            = "westeurope"
  sku_name            = "B_Standard_B1ms"
}

resource "azureinfra_postgresql_firewall_rule" "office" {
  server_id        = azureinfra_postgresql_server.owner.id
  name             = "office"
  start_ip_address = "203.0.113.0"
  end_ip_address   = "203.0.113.255"
}
`
