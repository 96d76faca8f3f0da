// Package provider implements acceptance tests for the storage_account data source
package provider

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccStorageAccountDataSource_basic tests the account lookup including the
// sorted container name list
func TestAccStorageAccountDataSource_basic(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccStorageAccountDataSourceConfig_basic,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("data.azureinfra_storage_account.lookup", "name", "staccds001"),
					resource.TestCheckResourceAttr("data.azureinfra_storage_account.lookup", "account_tier", "Standard"),
					resource.TestCheckResourceAttr("data.azureinfra_storage_account.lookup", "access_tier", "Hot"),
					resource.TestCheckResourceAttr("data.azureinfra_storage_account.lookup", "container_names.#", "2"),
					resource.TestCheckResourceAttr("data.azureinfra_storage_account.lookup", "container_names.0", "curated"),
					resource.TestCheckResourceAttr("data.azureinfra_storage_account.lookup", "container_names.1", "raw"),
					resource.TestCheckResourceAttrSet("data.azureinfra_storage_account.lookup", "primary_access_key"),
					resource.TestCheckResourceAttrSet("data.azureinfra_storage_account.lookup", "primary_connection_string"),
				),
			},
		},
	})
}

const testAccStorageAccountDataSourceConfig_basic = `
resource "azureinfra_storage_account" "owner" {
  name                     = "staccds001"
  resource_group_name      = "rg-acc"
  location                 = "westeurope"
  account_tier             = "Standard"
  account_replication_type = "LRS"
}

resource "azureinfra_storage_container" "raw" {
  storage_account_id = azureinfra_storage_account.owner.id
  name               = "raw"
}

resource "azureinfra_storage_container" "curated" {
  storage_account_id = azureinfra_storage_account.owner.id
  name               = "curated"
}

data "azureinfra_storage_account" "lookup" {
  name                = azureinfra_storage_account.owner.name
  resource_group_name = azureinfra_storage_account.owner.resource_group_name

  depends_on = [
    azureinfra_storage_container.raw,
    azureinfra_storage_container.curated,
  ]
}
`
