// Package provider implements acceptance tests for the storage_container resource
package provider

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccStorageContainer_basic tests container creation with the private default
func TestAccStorageContainer_basic(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccStorageContainerConfig_basic,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_storage_container.test", "name", "raw"),
					resource.TestCheckResourceAttr("azureinfra_storage_container.test", "container_access_type", "private"),
					resource.TestCheckResourceAttrSet("azureinfra_storage_container.test", "id"),
				),
			},
			{
				Config:   testAccStorageContainerConfig_basic,
				PlanOnly: true,
			},
			// ImportState testing
			{
				ResourceName:      "azureinfra_storage_container.test",
				ImportState:       true,
				ImportStateVerify: true,
			},
		},
	})
}

// TestAccStorageContainer_accessTypeUpdate tests an in-place access level change
func TestAccStorageContainer_accessTypeUpdate(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccStorageContainerConfig_blobAccess,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_storage_container.public", "container_access_type", "blob"),
				),
			},
			{
				Config: testAccStorageContainerConfig_privateAccess,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("azureinfra_storage_container.public", "container_access_type", "private"),
				),
			},
		},
	})
}

// TestAccStorageContainer_forEach tests that a container map adds entries
// without touching existing siblings
func TestAccStorageContainer_forEach(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccStorageContainerConfig_twoContainers,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckOutput("container_names", "curated,raw"),
				),
			},
			{
				Config: testAccStorageContainerConfig_threeContainers,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckOutput("container_names", "archive,curated,raw"),
				),
			},
		},
	})
}

const testAccStorageContainerConfig_basic = `
resource "azureinfra_storage_account" "owner" {
  name                     = "staccctr001"
  resource_group_name      = "rg-acc"
  location                 = "westeurope"
  account_tier             = "Standard"
  account_replication_type = "LRS"
}

resource "azureinfra_storage_container" "test" {
  storage_account_id = azureinfra_storage_account.owner.id
  name               = "raw"
}
`

const testAccStorageContainerConfig_blobAccess = `
resource "azureinfra_storage_account" "owner" {
  name                     = "staccctr002"
  resource_group_name      = "rg-acc"
  location                 = "westeurope"
  account_tier             = "Standard"
  account_replication_type = "LRS"
}

resource "azureinfra_storage_container" "public" {
  storage_account_id    = azureinfra_storage_account.owner.id
  name                  = "assets"
  container_access_type = "blob"
}
`

const testAccStorageContainerConfig_privateAccess = `
resource "azureinfra_storage_account" "owner" {
  name                     = "staccctr002"
  resource_group_name      = "rg-acc"
  location                 = "westeurope"
  account_tier             = "Standard"
  account_replication_type = "LRS"
}

resource "azureinfra_storage_container" "public" {
  storage_account_id    = azureinfra_storage_account.owner.id
  name                  = "assets"
  container_access_type = "private"
}
`

const testAccStorageContainerConfig_twoContainers = `
resource "azureinfra_storage_account" "owner" {
  name                     = "staccctr003"
  resource_group_name      = "rg-acc"
  location                 = "westeurope"
  account_tier             = "Standard"
  account_replication_type = "LRS"
}

resource "azureinfra_storage_container" "set" {
  for_each = toset(["raw", "curated"])

  storage_account_id = azureinfra_storage_account.owner.id
  name               = each.value
}

output "container_names" {
  value = join(",", sort([for c in azureinfra_storage_container.set : c.name]))
}
`

const testAccStorageContainerConfig_threeContainers = `
resource "azureinfra_storage_account" "owner" {
  name                     = "staccctr003"
  resource_group_name      = "rg-acc"
  location                 = "westeurope"
  account_tier             = "Standard"
  account_replication_type = "LRS"
}

resource "azureinfra_storage_container" "set" {
  for_each = toset(["raw", "curated", "archive"])

  storage_account_id = azureinfra_storage_account.owner.id
  name               = each.value
}

output "container_names" {
  value = join(",", sort([for c in azureinfra_storage_container.set : c.name]))
}
`
