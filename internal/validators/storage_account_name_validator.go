// Package validators provides custom validators for Terraform resources
package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

var _ validator.String = storageAccountNameValidator{}

// storageAccountNamePattern is the hard precondition for storage account
// names. Validation happens before any remote call so a bad name never
// reaches the control plane.
var storageAccountNamePattern = regexp.MustCompile(`^[a-z0-9]{3,24}$`)

// storageAccountNameValidator validates that a string is a legal storage account name:
// 3-24 characters, lowercase letters and numbers only (no hyphens).
type storageAccountNameValidator struct{}

// Description returns a plain text description of the validator's behavior.
func (v storageAccountNameValidator) Description(ctx context.Context) string {
	return "value must be 3-24 lowercase letters and numbers (storage account names allow no other characters)"
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior.
func (v storageAccountNameValidator) MarkdownDescription(ctx context.Context) string {
	return "value must match `^[a-z0-9]{3,24}$` - storage account names are 3-24 characters, " +
		"lowercase letters and numbers only, and globally unique"
}

// ValidateString performs the validation.
func (v storageAccountNameValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	// If the value is unknown or null, there's nothing to validate
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	if !storageAccountNamePattern.MatchString(value) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Storage Account Name",
			fmt.Sprintf("Value %q is not a valid storage account name. "+
				"Names must be 3-24 characters of lowercase letters and numbers only (no hyphens).", value),
		)
	}
}

// StorageAccountName returns a validator that checks if a string is a legal
// storage account name (3-24 lowercase alphanumeric characters).
func StorageAccountName() validator.String {
	return storageAccountNameValidator{}
}
