package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"golang.org/x/exp/slices"
)

var _ validator.String = replicationTypeValidator{}

// ReplicationTypes lists the replication strategies the control plane accepts
var ReplicationTypes = []string{"LRS", "GRS", "RAGRS", "ZRS", "GZRS", "RAGZRS"}

// replicationTypeValidator validates that a string is a supported storage
// replication type.
type replicationTypeValidator struct{}

// Description returns a plain text description of the validator's behavior.
func (v replicationTypeValidator) Description(ctx context.Context) string {
	return fmt.Sprintf("value must be one of: %s", strings.Join(ReplicationTypes, ", "))
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior.
func (v replicationTypeValidator) MarkdownDescription(ctx context.Context) string {
	return fmt.Sprintf("value must be one of: `%s`", strings.Join(ReplicationTypes, "`, `"))
}

// ValidateString performs the validation.
func (v replicationTypeValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	// If the value is unknown or null, there's nothing to validate
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	if !slices.Contains(ReplicationTypes, value) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Replication Type",
			fmt.Sprintf("Value %q is not a supported replication type. Must be one of: %s",
				value, strings.Join(ReplicationTypes, ", ")),
		)
	}
}

// ReplicationType returns a validator that checks if a string is a supported
// storage account replication type (LRS, GRS, RAGRS, ZRS, GZRS, RAGZRS).
func ReplicationType() validator.String {
	return replicationTypeValidator{}
}
