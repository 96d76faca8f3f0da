package models

import (
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/types"
)

// StorageContainerModel represents a blob container in Terraform state.
// Containers are keyed by name within their account, so a for_each over a
// container map adds and removes only the changed entries.
type StorageContainerModel struct {
	ID                  types.String `tfsdk:"id"`
	StorageAccountID    types.String `tfsdk:"storage_account_id"`
	Name                types.String `tfsdk:"name"`
	ContainerAccessType types.String `tfsdk:"container_access_type"`
}

// StorageContainerAPI represents a blob container for control-plane API operations
type StorageContainerAPI struct {
	ID         *string                    `json:"id,omitempty" mapstructure:"id"`
	Name       string                     `json:"name" mapstructure:"name"`
	Properties StorageContainerProperties `json:"properties" mapstructure:"properties"`
}

// StorageContainerProperties holds the container access level.
// PublicAccess is None, Blob, or Container on the wire.
type StorageContainerProperties struct {
	PublicAccess string `json:"publicAccess,omitempty" mapstructure:"publicAccess"`
}

// ContainerAccessToAPI converts Terraform container_access_type values to
// API PublicAccess values. Terraform uses lowercase (private, blob, container);
// the API uses None, Blob, Container.
func ContainerAccessToAPI(tfValue string) string {
	switch tfValue {
	case "private":
		return "None"
	case "blob":
		return "Blob"
	case "container":
		return "Container"
	default:
		return tfValue
	}
}

// ContainerAccessFromAPI converts API PublicAccess values to Terraform
// container_access_type values. Reverse of ContainerAccessToAPI()
func ContainerAccessFromAPI(apiValue string) string {
	switch apiValue {
	case "None", "":
		return "private"
	default:
		return strings.ToLower(apiValue)
	}
}
