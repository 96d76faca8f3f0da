package models

import "fmt"

// PostgresPort is the fixed listener port of managed PostgreSQL servers
const PostgresPort = 5432

// ServerFQDNSuffix is appended to server names when computing the FQDN
const ServerFQDNSuffix = ".postgres.database.azure.com"

// StorageEndpointSuffix is the public-cloud blob endpoint suffix
const StorageEndpointSuffix = "core.windows.net"

// PostgresConnectionString renders the connection string exposed by the
// database resource. TLS is enforced: the sslmode=require suffix is not
// configurable.
func PostgresConnectionString(login, fqdn, database string) string {
	return fmt.Sprintf("postgresql://%s@%s:%d/%s?sslmode=require", login, fqdn, PostgresPort, database)
}

// StorageConnectionString renders the primary connection string of a storage
// account from its name and primary access key. The result embeds the key and
// is always a sensitive value.
func StorageConnectionString(accountName, accessKey string) string {
	return fmt.Sprintf(
		"DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;EndpointSuffix=%s",
		accountName, accessKey, StorageEndpointSuffix,
	)
}
