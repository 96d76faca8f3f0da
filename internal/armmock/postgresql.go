package armmock

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/platops/terraform-provider-azureinfra/internal/models"
)

// handlePostgres serves flexibleServers and their child databases and
// firewall rules
func (s *Server) handlePostgres(w http.ResponseWriter, r *http.Request, path, rg, serverName string, rest []string) {
	if len(rest) == 0 {
		s.handlePostgresServer(w, r, path, rg, serverName)
		return
	}
	if len(rest) == 2 && rest[0] == "databases" {
		s.handlePostgresDatabase(w, r, path, rg, serverName, rest[1])
		return
	}
	if len(rest) == 2 && rest[0] == "firewallRules" {
		s.handleFirewallRule(w, r, path, rg, serverName, rest[1])
		return
	}
	armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("no route for %s", path))
}

func (s *Server) handlePostgresServer(w http.ResponseWriter, r *http.Request, path, rg, name string) {
	key := rg + "/" + name

	switch r.Method {
	case http.MethodPut:
		var server models.PostgresqlServerAPI
		if err := s.decodeBody(r, path, &server); err != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		existing, exists := s.servers[key]

		server.Name = name
		server.ID = models.StringPtr(path)
		server.Properties.FullyQualifiedDomainName = models.StringPtr(name + FQDNSuffix)
		server.Properties.State = models.StringPtr("Ready")

		record := &serverRecord{}
		if exists {
			// Re-PUT of an existing server: zone placement and password are
			// pinned at first creation
			record.password = existing.password
			server.Properties.AvailabilityZone = existing.server.Properties.AvailabilityZone
		} else {
			if server.Properties.AdministratorLoginPassword != nil {
				record.password = *server.Properties.AdministratorLoginPassword
			}
			if server.Properties.AvailabilityZone == nil {
				// placement is picked server-side when the caller does not pin one
				server.Properties.AvailabilityZone = models.StringPtr("1")
			}
		}

		// password is write-only
		server.Properties.AdministratorLoginPassword = nil
		record.server = server
		s.servers[key] = record

		writeJSON(w, http.StatusCreated, server)

	case http.MethodPatch:
		var patch models.PostgresqlServerAPI
		if err := s.decodeBody(r, path, &patch); err != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		record, exists := s.servers[key]
		if !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("server %q was not found", name))
			return
		}

		if patch.SKU != nil {
			record.server.SKU = patch.SKU
		}
		if patch.Tags != nil {
			record.server.Tags = patch.Tags
		}
		if patch.Properties.Version != "" {
			record.server.Properties.Version = patch.Properties.Version
		}
		if patch.Properties.Storage != nil {
			record.server.Properties.Storage = patch.Properties.Storage
		}
		if patch.Properties.Backup != nil {
			record.server.Properties.Backup = patch.Properties.Backup
		}
		record.server.Properties.HighAvailability = patch.Properties.HighAvailability

		writeJSON(w, http.StatusOK, record.server)

	case http.MethodGet:
		s.mu.Lock()
		defer s.mu.Unlock()

		record, exists := s.servers[key]
		if !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("server %q was not found", name))
			return
		}
		writeJSON(w, http.StatusOK, record.server)

	case http.MethodDelete:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.servers[key]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("server %q was not found", name))
			return
		}
		delete(s.servers, key)
		// cascade children
		for k := range s.databases {
			if strings.HasPrefix(k, key+"/") {
				delete(s.databases, k)
			}
		}
		for k := range s.firewall {
			if strings.HasPrefix(k, key+"/") {
				delete(s.firewall, k)
			}
		}
		w.WriteHeader(http.StatusOK)

	default:
		armError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handlePostgresDatabase(w http.ResponseWriter, r *http.Request, path, rg, serverName, name string) {
	serverKey := rg + "/" + serverName
	key := serverKey + "/" + name

	switch r.Method {
	case http.MethodPut:
		var database models.PostgresqlDatabaseAPI
		if err := s.decodeBody(r, path, &database); err != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.servers[serverKey]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("server %q was not found", serverName))
			return
		}

		database.Name = name
		database.ID = models.StringPtr(path)
		if database.Properties.Charset == "" {
			database.Properties.Charset = "UTF8"
		}
		if database.Properties.Collation == "" {
			database.Properties.Collation = "en_US.utf8"
		}
		s.databases[key] = database

		writeJSON(w, http.StatusCreated, database)

	case http.MethodGet:
		s.mu.Lock()
		defer s.mu.Unlock()

		database, exists := s.databases[key]
		if !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("database %q was not found", name))
			return
		}
		writeJSON(w, http.StatusOK, database)

	case http.MethodDelete:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.databases[key]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("database %q was not found", name))
			return
		}
		delete(s.databases, key)
		w.WriteHeader(http.StatusOK)

	default:
		armError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handleFirewallRule(w http.ResponseWriter, r *http.Request, path, rg, serverName, name string) {
	serverKey := rg + "/" + serverName
	key := serverKey + "/" + name

	switch r.Method {
	case http.MethodPut:
		var rule models.FirewallRuleAPI
		if err := s.decodeBody(r, path, &rule); err != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.servers[serverKey]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("server %q was not found", serverName))
			return
		}

		rule.Name = name
		rule.ID = models.StringPtr(path)
		s.firewall[key] = rule

		writeJSON(w, http.StatusCreated, rule)

	case http.MethodGet:
		s.mu.Lock()
		defer s.mu.Unlock()

		rule, exists := s.firewall[key]
		if !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("firewall rule %q was not found", name))
			return
		}
		writeJSON(w, http.StatusOK, rule)

	case http.MethodDelete:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.firewall[key]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("firewall rule %q was not found", name))
			return
		}
		delete(s.firewall, key)
		w.WriteHeader(http.StatusOK)

	default:
		armError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}
