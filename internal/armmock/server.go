// Package armmock provides an in-memory mock of the Azure-flavored control
// plane used by this provider. Tests bind the provider to a mock endpoint so
// plans and applies run without contacting a real cloud account.
//
// The mock keeps the behaviors the provider's contract depends on:
//   - storage account names are globally unique (409 NameAlreadyTaken)
//   - access keys are generated once at creation and stay stable
//   - server FQDNs and availability zones are computed server-side
//   - Premium accounts reject an accessTier field (400 InvalidParameter)
//
// Request bodies are recorded per path so tests can assert payload shape
// (for instance that a disabled-HA server carries no highAvailability object).
package armmock

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/platops/terraform-provider-azureinfra/internal/models"
)

// FQDNSuffix is appended to server names when computing the FQDN
const FQDNSuffix = models.ServerFQDNSuffix

type serverRecord struct {
	server   models.PostgresqlServerAPI
	password string // write-only, never echoed in GET responses
}

type accountRecord struct {
	account models.StorageAccountAPI
	keys    models.StorageKeysResponse
}

// Server is an httptest-backed mock control plane
type Server struct {
	httpServer *httptest.Server

	mu            sync.Mutex
	servers       map[string]*serverRecord                   // rg/server
	databases     map[string]models.PostgresqlDatabaseAPI    // rg/server/db
	firewall      map[string]models.FirewallRuleAPI          // rg/server/rule
	accounts      map[string]*accountRecord                  // rg/account
	blobProps     map[string]models.BlobServicePropertiesAPI // rg/account
	containers    map[string]models.StorageContainerAPI      // rg/account/container
	requestBodies map[string][]byte                          // canonical path -> last body
}

// New starts a mock control plane listening on a local port
func New() *Server {
	s := &Server{
		servers:       make(map[string]*serverRecord),
		databases:     make(map[string]models.PostgresqlDatabaseAPI),
		firewall:      make(map[string]models.FirewallRuleAPI),
		accounts:      make(map[string]*accountRecord),
		blobProps:     make(map[string]models.BlobServicePropertiesAPI),
		containers:    make(map[string]models.StorageContainerAPI),
		requestBodies: make(map[string][]byte),
	}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the endpoint tests should point the provider at
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the mock down
func (s *Server) Close() {
	s.httpServer.Close()
}

// LastRequestBody returns the most recent request body received for the given
// resource path (without query string), or nil if none was recorded
func (s *Server) LastRequestBody(path string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestBodies[path]
}

// armError writes an ARM-style error envelope
func armError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeBody reads the request body into out via an untyped map, recording the
// raw body for later payload-shape assertions
func (s *Server) decodeBody(r *http.Request, path string, out any) error {
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.requestBodies[path] = body
	s.mu.Unlock()

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("malformed JSON body: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

func randomKey() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// handle routes every request. Paths follow the ARM layout:
//
//	/{tenant}/oauth2/token
//	/subscriptions/{sub}/resourceGroups/{rg}/providers/{ns}/{type}/{name}[/{subtype}/{subname}...]
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if r.Method == http.MethodPost && strings.HasSuffix(path, "/oauth2/token") {
		writeJSON(w, http.StatusOK, TokenResponse{
			AccessToken: "mock-access-token",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
		})
		return
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	// subscriptions/{sub}/resourceGroups/{rg}/providers/{ns}/{type}/{name}...
	if len(segments) < 8 || segments[0] != "subscriptions" || segments[2] != "resourceGroups" || segments[4] != "providers" {
		armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("no route for %s", path))
		return
	}

	rg := segments[3]
	namespace := segments[5]
	resourceType := segments[6]
	name := segments[7]
	rest := segments[8:]

	switch {
	case namespace == "Microsoft.DBforPostgreSQL" && resourceType == "flexibleServers":
		s.handlePostgres(w, r, path, rg, name, rest)
	case namespace == "Microsoft.Storage" && resourceType == "storageAccounts":
		s.handleStorage(w, r, path, rg, name, rest)
	default:
		armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("unknown resource type %s/%s", namespace, resourceType))
	}
}

// TokenResponse mirrors the OAuth2 token endpoint response shape
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
