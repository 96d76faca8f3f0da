package models

// StorageAccountAPI represents a storage account for control-plane API operations.
//
// Field Notes:
//   - Properties.AccessTier is a pointer + omitempty: Premium accounts do not
//     support tiering, so the field must be absent from the payload, not
//     defaulted. The resource layer nils it out for Premium.
//   - Properties.PrimaryEndpoints and ProvisioningState are computed.
type StorageAccountAPI struct {
	ID         *string                  `json:"id,omitempty" mapstructure:"id"`
	Name       string                   `json:"name" mapstructure:"name"`
	Location   string                   `json:"location" mapstructure:"location"`
	Kind       string                   `json:"kind,omitempty" mapstructure:"kind"`
	SKU        *StorageSKU              `json:"sku,omitempty" mapstructure:"sku"`
	Tags       map[string]string        `json:"tags,omitempty" mapstructure:"tags"`
	Properties StorageAccountProperties `json:"properties" mapstructure:"properties"`
}

// StorageSKU combines performance tier and replication type
type StorageSKU struct {
	Tier        string `json:"tier" mapstructure:"tier"`
	Replication string `json:"replication" mapstructure:"replication"`
}

// StorageAccountProperties holds account settings and computed endpoints
type StorageAccountProperties struct {
	AccessTier               *string           `json:"accessTier,omitempty" mapstructure:"accessTier"`
	MinimumTLSVersion        string            `json:"minimumTlsVersion,omitempty" mapstructure:"minimumTlsVersion"`
	SupportsHTTPSTrafficOnly bool              `json:"supportsHttpsTrafficOnly" mapstructure:"supportsHttpsTrafficOnly"`
	PrimaryEndpoints         *StorageEndpoints `json:"primaryEndpoints,omitempty" mapstructure:"primaryEndpoints"`
	ProvisioningState        *string           `json:"provisioningState,omitempty" mapstructure:"provisioningState"`
}

// StorageEndpoints holds the computed service endpoints
type StorageEndpoints struct {
	Blob string `json:"blob" mapstructure:"blob"`
}

// StorageKeysResponse is the response of the listKeys operation
type StorageKeysResponse struct {
	Keys []StorageKey `json:"keys" mapstructure:"keys"`
}

// StorageKey is a single named access key. Keys are generated once at account
// creation and stay stable across re-applies.
type StorageKey struct {
	KeyName string `json:"keyName" mapstructure:"keyName"`
	Value   string `json:"value" mapstructure:"value"`
}

// BlobServicePropertiesAPI holds the durability policy applied to every
// account created by this provider: versioning on, 7-day blob and container
// soft-delete retention. These are fixed policy choices, not schema tunables.
type BlobServicePropertiesAPI struct {
	Properties BlobServiceProperties `json:"properties" mapstructure:"properties"`
}

// BlobServiceProperties holds versioning and soft-delete retention settings
type BlobServiceProperties struct {
	IsVersioningEnabled            bool             `json:"isVersioningEnabled" mapstructure:"isVersioningEnabled"`
	DeleteRetentionPolicy          *RetentionPolicy `json:"deleteRetentionPolicy,omitempty" mapstructure:"deleteRetentionPolicy"`
	ContainerDeleteRetentionPolicy *RetentionPolicy `json:"containerDeleteRetentionPolicy,omitempty" mapstructure:"containerDeleteRetentionPolicy"`
}

// RetentionPolicy is a soft-delete recovery window in days
type RetentionPolicy struct {
	Enabled bool  `json:"enabled" mapstructure:"enabled"`
	Days    int64 `json:"days,omitempty" mapstructure:"days"`
}

// SoftDeleteRetentionDays is the recovery window applied to blobs and
// containers on every account this provider creates.
const SoftDeleteRetentionDays = 7

// DefaultBlobServiceProperties returns the baked-in durability policy
func DefaultBlobServiceProperties() *BlobServicePropertiesAPI {
	return &BlobServicePropertiesAPI{
		Properties: BlobServiceProperties{
			IsVersioningEnabled: true,
			DeleteRetentionPolicy: &RetentionPolicy{
				Enabled: true,
				Days:    SoftDeleteRetentionDays,
			},
			ContainerDeleteRetentionPolicy: &RetentionPolicy{
				Enabled: true,
				Days:    SoftDeleteRetentionDays,
			},
		},
	}
}
