// Package provider implements the azureinfra Terraform provider
package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

// tagsToAPI converts the tags attribute to the map the control plane expects.
// Returns nil for a null or unknown map so the payload omits tags entirely.
func tagsToAPI(ctx context.Context, tags types.Map) (map[string]string, diag.Diagnostics) {
	var diags diag.Diagnostics
	if tags.IsNull() || tags.IsUnknown() {
		return nil, diags
	}

	result := make(map[string]string)
	diags.Append(tags.ElementsAs(ctx, &result, false)...)
	return result, diags
}

// tagsFromAPI converts control-plane tags back to the tags attribute.
// An empty or absent map becomes a null map, matching an omitted attribute.
func tagsFromAPI(ctx context.Context, tags map[string]string) (types.Map, diag.Diagnostics) {
	if len(tags) == 0 {
		return types.MapNull(types.StringType), nil
	}
	return types.MapValueFrom(ctx, types.StringType, tags)
}
