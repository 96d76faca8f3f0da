// Package provider implements acceptance tests for the postgresql_server resource
package provider

import (
	"regexp"
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccPostgresqlServer_basic tests basic CRUD lifecycle with server-side defaults
func TestAccPostgresqlServer_basic(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			// Create and Read testing
			{
				Config: testAccPostgresqlServerConfig_basic,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "name", "pg-acc-basic"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "resource_group_name", "rg-acc"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "location", "westeurope"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "sku_name", "GP_Standard_D2s_v3"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "version", "16"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "administrator_login", "pgadmin"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "storage_mb", "32768"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "backup_retention_days", "7"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "geo_redundant_backup_enabled", "false"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.test", "fqdn", "pg-acc-basic.postgres.database.azure.com"),
					resource.TestCheckResourceAttrSet("azureinfra_postgresql_server.test", "id"),
					resource.TestCheckResourceAttrSet("azureinfra_postgresql_server.test", "zone"),
					resource.TestMatchResourceAttr("azureinfra_postgresql_server.test", "administrator_password", regexp.MustCompile(`^.{32}$`)),
				),
			},
			// Re-apply must be a no-op: password and zone stay pinned
			{
				Config:   testAccPostgresqlServerConfig_basic,
				PlanOnly: true,
			},
			// ImportState testing. The password is write-only on the control
			// plane and cannot be read back after import.
			{
				ResourceName:            "azureinfra_postgresql_server.test",
				ImportState:             true,
				ImportStateVerify:       true,
				ImportStateVerifyIgnore: []string{"administrator_password"},
			},
		},
	})
}

// TestAccPostgresqlServer_highAvailability tests the optional HA block
func TestAccPostgresqlServer_highAvailability(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccPostgresqlServerConfig_highAvailability,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.ha", "high_availability.mode", "ZoneRedundant"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.ha", "high_availability.standby_availability_zone", "2"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.ha", "zone", "1"),
					resource.TestCheckResourceAttrSet("azureinfra_postgresql_server.ha", "id"),
				),
			},
			{
				Config:   testAccPostgresqlServerConfig_highAvailability,
				PlanOnly: true,
			},
		},
	})
}

// TestAccPostgresqlServer_update tests in-place engine version and storage updates
func TestAccPostgresqlServer_update(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccPostgresqlServerConfig_v15,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.upgrade", "version", "15"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.upgrade", "storage_mb", "32768"),
				),
			},
			{
				Config: testAccPostgresqlServerConfig_v16,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.upgrade", "version", "16"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.upgrade", "storage_mb", "65536"),
					resource.TestCheckResourceAttr("azureinfra_postgresql_server.upgrade", "backup_retention_days", "14"),
				),
			},
		},
	})
}

// TestAccPostgresqlServer_invalidVersion tests validator rejection before any API call
func TestAccPostgresqlServer_invalidVersion(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config:      testAccPostgresqlServerConfig_invalidVersion,
				ExpectError: regexp.MustCompile(`Invalid Attribute Value Match|value must be one of`),
			},
		},
	})
}

const testAccPostgresqlServerConfig_basic = `
resource "azureinfra_postgresql_server" "test" {
  name                = "pg-acc-basic"
  resource_group_name = "rg-acc"
  location            = "westeurope"
  sku_name            = "GP_Standard_D2s_v3"
}
`

const testAccPostgresqlServerConfig_highAvailability = `
resource "azureinfra_postgresql_server" "ha" {
  name                = "pg-acc-ha"
  resource_group_name = "rg-acc"
  location            = "westeurope"
  sku_name            = "GP_Standard_D4s_v3"
  zone                = "1"

  high_availability = {
    mode                      = "ZoneRedundant"
    standby_availability_zone = "2"
  }
}
`

const testAccPostgresqlServerConfig_v15 = `
resource "azureinfra_postgresql_server" "upgrade" {
  name                = "pg-acc-upgrade"
  resource_group_name = "rg-acc"
  location            = "westeurope"
  sku_name            = "GP_Standard_D2s_v3"
  version             = "15"
}
`

const testAccPostgresqlServerConfig_v16 = `
resource "azureinfra_postgresql_server" "upgrade" {
  name                  = "pg-acc-upgrade"
  resource_group_name   = "rg-acc"
  location              = "westeurope"
  sku_name              = "GP_Standard_D2s_v3"
  version               = "16"
  storage_mb            = 65536
  backup_retention_days = 14
}
`

const testAccPostgresqlServerConfig_invalidVersion = `
resource "azureinfra_postgresql_server" "bad" {
  name                = "pg-acc-bad"
  resource_group_name = "rg-acc"
  location            = "westeurope"
  sku_name            = "GP_Standard_D2s_v3"
  version             = "10"
}
`
