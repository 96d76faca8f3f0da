package models

// PostgresqlServerAPI represents a PostgreSQL flexible server for control-plane API operations.
// Used for Create (PUT), Update (PATCH), and Read (GET) - single struct with pointers for
// optional fields (AWS SDK for Go pattern, not Java-style DTOs).
//
// Field Notes:
//   - ID, Properties.FullyQualifiedDomainName, Properties.State: computed (read-only from API)
//   - Properties.AdministratorLoginPassword: write-only, never returned by GET
//   - Properties.HighAvailability: pointer + omitempty so a disabled-HA server
//     emits no highAvailability object at all (absent, not defaulted)
type PostgresqlServerAPI struct {
	ID         *string                    `json:"id,omitempty" mapstructure:"id"`
	Name       string                     `json:"name" mapstructure:"name"`
	Location   string                     `json:"location" mapstructure:"location"`
	SKU        *ServerSKU                 `json:"sku,omitempty" mapstructure:"sku"`
	Tags       map[string]string          `json:"tags,omitempty" mapstructure:"tags"`
	Properties PostgresqlServerProperties `json:"properties" mapstructure:"properties"`
}

// ServerSKU identifies the compute SKU of a flexible server
type ServerSKU struct {
	Name string `json:"name" mapstructure:"name"`
}

// PostgresqlServerProperties holds the mutable and computed server properties
type PostgresqlServerProperties struct {
	AdministratorLogin         string  `json:"administratorLogin,omitempty" mapstructure:"administratorLogin"`
	AdministratorLoginPassword *string `json:"administratorLoginPassword,omitempty" mapstructure:"administratorLoginPassword"`
	Version                    string  `json:"version,omitempty" mapstructure:"version"`
	AvailabilityZone           *string `json:"availabilityZone,omitempty" mapstructure:"availabilityZone"`

	Storage *ServerStorage `json:"storage,omitempty" mapstructure:"storage"`
	Backup  *ServerBackup  `json:"backup,omitempty" mapstructure:"backup"`

	// nil when high availability is disabled
	HighAvailability *ServerHighAvailability `json:"highAvailability,omitempty" mapstructure:"highAvailability"`

	// Computed fields (read-only from API)
	FullyQualifiedDomainName *string `json:"fullyQualifiedDomainName,omitempty" mapstructure:"fullyQualifiedDomainName"`
	State                    *string `json:"state,omitempty" mapstructure:"state"`
}

// ServerStorage holds the provisioned storage size
type ServerStorage struct {
	StorageSizeMB int64 `json:"storageSizeMB" mapstructure:"storageSizeMB"`
}

// ServerBackup holds backup retention settings
type ServerBackup struct {
	BackupRetentionDays       int64 `json:"backupRetentionDays" mapstructure:"backupRetentionDays"`
	GeoRedundantBackupEnabled bool  `json:"geoRedundantBackupEnabled" mapstructure:"geoRedundantBackupEnabled"`
}

// ServerHighAvailability holds the HA mode and standby placement.
// Mode is SameZone or ZoneRedundant; a disabled-HA server has no
// ServerHighAvailability at all.
type ServerHighAvailability struct {
	Mode                    string  `json:"mode" mapstructure:"mode"`
	StandbyAvailabilityZone *string `json:"standbyAvailabilityZone,omitempty" mapstructure:"standbyAvailabilityZone"`
}
