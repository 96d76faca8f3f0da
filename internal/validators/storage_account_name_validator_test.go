package validators

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

func TestStorageAccountNameValidator(t *testing.T) {
	tests := []struct {
		name      string
		value     types.String
		expectErr bool
	}{
		{
			name:      "valid lowercase alphanumeric",
			value:     types.StringValue("stmyappdev"),
			expectErr: false,
		},
		{
			name:      "valid minimum length",
			value:     types.StringValue("abc"),
			expectErr: false,
		},
		{
			name:      "valid maximum length",
			value:     types.StringValue("abcdefghijklmnopqrstuvwx"),
			expectErr: false,
		},
		{
			name:      "valid digits only",
			value:     types.StringValue("123456"),
			expectErr: false,
		},
		{
			name:      "too short",
			value:     types.StringValue("ab"),
			expectErr: true,
		},
		{
			name:      "too long",
			value:     types.StringValue("abcdefghijklmnopqrstuvwxy"),
			expectErr: true,
		},
		{
			name:      "hyphens not allowed",
			value:     types.StringValue("st-myapp-dev"),
			expectErr: true,
		},
		{
			name:      "uppercase not allowed",
			value:     types.StringValue("StMyAppDev"),
			expectErr: true,
		},
		{
			name:      "underscores not allowed",
			value:     types.StringValue("st_myapp"),
			expectErr: true,
		},
		{
			name:      "empty string",
			value:     types.StringValue(""),
			expectErr: true,
		},
		{
			name:      "null value skipped",
			value:     types.StringNull(),
			expectErr: false,
		},
		{
			name:      "unknown value skipped",
			value:     types.StringUnknown(),
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validator.StringRequest{
				Path:        path.Root("name"),
				ConfigValue: tt.value,
			}
			resp := &validator.StringResponse{}

			StorageAccountName().ValidateString(context.Background(), req, resp)

			if tt.expectErr && !resp.Diagnostics.HasError() {
				t.Errorf("expected validation error for %v, got none", tt.value)
			}
			if !tt.expectErr && resp.Diagnostics.HasError() {
				t.Errorf("unexpected validation error for %v: %v", tt.value, resp.Diagnostics)
			}
		})
	}
}
