package validators

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

func TestAvailabilityZoneValidator(t *testing.T) {
	tests := []struct {
		name      string
		value     types.String
		expectErr bool
	}{
		{name: "valid zone 1", value: types.StringValue("1"), expectErr: false},
		{name: "valid zone 2", value: types.StringValue("2"), expectErr: false},
		{name: "valid zone 3", value: types.StringValue("3"), expectErr: false},
		{name: "zone 0 rejected", value: types.StringValue("0"), expectErr: true},
		{name: "zone 4 rejected", value: types.StringValue("4"), expectErr: true},
		{name: "non-numeric rejected", value: types.StringValue("one"), expectErr: true},
		{name: "null skipped", value: types.StringNull(), expectErr: false},
		{name: "unknown skipped", value: types.StringUnknown(), expectErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validator.StringRequest{
				Path:        path.Root("zone"),
				ConfigValue: tt.value,
			}
			resp := &validator.StringResponse{}

			AvailabilityZone().ValidateString(context.Background(), req, resp)

			if tt.expectErr && !resp.Diagnostics.HasError() {
				t.Errorf("expected validation error for %v, got none", tt.value)
			}
			if !tt.expectErr && resp.Diagnostics.HasError() {
				t.Errorf("unexpected validation error for %v: %v", tt.value, resp.Diagnostics)
			}
		})
	}
}
