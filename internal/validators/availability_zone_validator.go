package validators

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

var _ validator.String = availabilityZoneValidator{}

// availabilityZones are the zones Azure regions expose
var availabilityZones = []string{"1", "2", "3"}

// availabilityZoneValidator validates that a string is an availability zone identifier.
type availabilityZoneValidator struct{}

// Description returns a plain text description of the validator's behavior.
func (v availabilityZoneValidator) Description(ctx context.Context) string {
	return "value must be an availability zone: 1, 2, or 3"
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior.
func (v availabilityZoneValidator) MarkdownDescription(ctx context.Context) string {
	return "value must be an availability zone: `1`, `2`, or `3`"
}

// ValidateString performs the validation.
func (v availabilityZoneValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	if !slices.Contains(availabilityZones, value) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Availability Zone",
			fmt.Sprintf("Value %q is not a valid availability zone. Must be 1, 2, or 3.", value),
		)
	}
}

// AvailabilityZone returns a validator that checks if a string is an
// availability zone identifier (1, 2, or 3).
func AvailabilityZone() validator.String {
	return availabilityZoneValidator{}
}
