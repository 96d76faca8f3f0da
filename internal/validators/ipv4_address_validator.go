package validators

import (
	"context"
	"fmt"
	"net"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

var _ validator.String = ipv4AddressValidator{}

// ipv4AddressValidator validates that a string is a dotted-quad IPv4 address.
// Firewall rule bounds are validated locally so a malformed address never
// reaches the control plane.
type ipv4AddressValidator struct{}

// Description returns a plain text description of the validator's behavior.
func (v ipv4AddressValidator) Description(ctx context.Context) string {
	return "value must be an IPv4 address in dotted-quad notation"
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior.
func (v ipv4AddressValidator) MarkdownDescription(ctx context.Context) string {
	return "value must be an IPv4 address in dotted-quad notation (e.g., `10.0.0.1`)"
}

// ValidateString performs the validation.
func (v ipv4AddressValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	ip := net.ParseIP(value)
	if ip == nil || ip.To4() == nil {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid IPv4 Address",
			fmt.Sprintf("Value %q is not a valid IPv4 address.", value),
		)
	}
}

// IPv4Address returns a validator that checks if a string is a valid IPv4 address.
func IPv4Address() validator.String {
	return ipv4AddressValidator{}
}
