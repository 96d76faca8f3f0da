package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// A server without high availability must emit no highAvailability object at
// all - absence is structural, not a defaulted "Disabled" block.
func TestServerPayloadOmitsHighAvailabilityWhenDisabled(t *testing.T) {
	server := PostgresqlServerAPI{
		Name:     "psql-myapp-dev",
		Location: "eastus",
		SKU:      &ServerSKU{Name: "GP_Standard_D2s_v3"},
		Properties: PostgresqlServerProperties{
			AdministratorLogin: "pgadmin",
			Version:            "16",
			Storage:            &ServerStorage{StorageSizeMB: 65536},
			Backup:             &ServerBackup{BackupRetentionDays: 7},
		},
	}

	payload, err := json.Marshal(server)
	if err != nil {
		t.Fatalf("marshal server: %v", err)
	}

	if strings.Contains(string(payload), "highAvailability") {
		t.Errorf("payload contains highAvailability object for a disabled-HA server: %s", payload)
	}
}

func TestServerPayloadCarriesHighAvailabilityMode(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{name: "same zone", mode: "SameZone"},
		{name: "zone redundant", mode: "ZoneRedundant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := PostgresqlServerAPI{
				Name:     "psql-myapp-prod",
				Location: "eastus",
				Properties: PostgresqlServerProperties{
					HighAvailability: &ServerHighAvailability{Mode: tt.mode},
				},
			}

			payload, err := json.Marshal(server)
			if err != nil {
				t.Fatalf("marshal server: %v", err)
			}

			var decoded map[string]any
			if err := json.Unmarshal(payload, &decoded); err != nil {
				t.Fatalf("unmarshal payload: %v", err)
			}

			props := decoded["properties"].(map[string]any)
			ha, ok := props["highAvailability"].(map[string]any)
			if !ok {
				t.Fatalf("payload missing highAvailability object: %s", payload)
			}
			if ha["mode"] != tt.mode {
				t.Errorf("highAvailability.mode = %v, want %s", ha["mode"], tt.mode)
			}
		})
	}
}

// The admin password is write-only: it must never round-trip through GET
// responses, so an API struct without it marshals without the field.
func TestServerPayloadOmitsPasswordWhenUnset(t *testing.T) {
	server := PostgresqlServerAPI{
		Name:       "psql-myapp-dev",
		Location:   "eastus",
		Properties: PostgresqlServerProperties{AdministratorLogin: "pgadmin"},
	}

	payload, err := json.Marshal(server)
	if err != nil {
		t.Fatalf("marshal server: %v", err)
	}

	if strings.Contains(string(payload), "administratorLoginPassword") {
		t.Errorf("payload contains administratorLoginPassword without a value: %s", payload)
	}
}
