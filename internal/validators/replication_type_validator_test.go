package validators

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

func TestReplicationTypeValidator(t *testing.T) {
	tests := []struct {
		name      string
		value     types.String
		expectErr bool
	}{
		{name: "valid LRS", value: types.StringValue("LRS"), expectErr: false},
		{name: "valid GRS", value: types.StringValue("GRS"), expectErr: false},
		{name: "valid RAGRS", value: types.StringValue("RAGRS"), expectErr: false},
		{name: "valid ZRS", value: types.StringValue("ZRS"), expectErr: false},
		{name: "valid GZRS", value: types.StringValue("GZRS"), expectErr: false},
		{name: "valid RAGZRS", value: types.StringValue("RAGZRS"), expectErr: false},
		{name: "lowercase rejected", value: types.StringValue("lrs"), expectErr: true},
		{name: "unknown type rejected", value: types.StringValue("MRS"), expectErr: true},
		{name: "empty rejected", value: types.StringValue(""), expectErr: true},
		{name: "null skipped", value: types.StringNull(), expectErr: false},
		{name: "unknown value skipped", value: types.StringUnknown(), expectErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validator.StringRequest{
				Path:        path.Root("account_replication_type"),
				ConfigValue: tt.value,
			}
			resp := &validator.StringResponse{}

			ReplicationType().ValidateString(context.Background(), req, resp)

			if tt.expectErr && !resp.Diagnostics.HasError() {
				t.Errorf("expected validation error for %v, got none", tt.value)
			}
			if !tt.expectErr && resp.Diagnostics.HasError() {
				t.Errorf("unexpected validation error for %v: %v", tt.value, resp.Diagnostics)
			}
		})
	}
}
