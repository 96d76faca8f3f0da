package armmock

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/platops/terraform-provider-azureinfra/internal/models"
)

// handleStorage serves storageAccounts, their blob-service properties,
// containers, and the listKeys operation
func (s *Server) handleStorage(w http.ResponseWriter, r *http.Request, path, rg, accountName string, rest []string) {
	switch {
	case len(rest) == 0:
		s.handleStorageAccount(w, r, path, rg, accountName)
	case len(rest) == 1 && rest[0] == "listKeys" && r.Method == http.MethodPost:
		s.handleListKeys(w, rg, accountName)
	case len(rest) == 2 && rest[0] == "blobServices" && rest[1] == "default":
		s.handleBlobServices(w, r, path, rg, accountName)
	case len(rest) == 3 && rest[0] == "blobServices" && rest[1] == "default" && rest[2] == "containers" && r.Method == http.MethodGet:
		s.handleListContainers(w, rg, accountName)
	case len(rest) == 4 && rest[0] == "blobServices" && rest[1] == "default" && rest[2] == "containers":
		s.handleContainer(w, r, path, rg, accountName, rest[3])
	default:
		armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("no route for %s", path))
	}
}

func (s *Server) handleStorageAccount(w http.ResponseWriter, r *http.Request, path, rg, name string) {
	key := rg + "/" + name

	switch r.Method {
	case http.MethodPut:
		var account models.StorageAccountAPI
		if err := s.decodeBody(r, path, &account); err != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		// account names are globally unique, not per resource group
		for existingKey := range s.accounts {
			if existingKey != key && strings.HasSuffix(existingKey, "/"+name) {
				armError(w, http.StatusConflict, "NameAlreadyTaken",
					fmt.Sprintf("The storage account named %s is already taken.", name))
				return
			}
		}

		if account.SKU == nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", "sku is required")
			return
		}

		// Premium storage does not support tiering
		if account.SKU.Tier == "Premium" && account.Properties.AccessTier != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter",
				"accessTier is not permitted for Premium storage accounts")
			return
		}

		existing, exists := s.accounts[key]

		account.Name = name
		account.ID = models.StringPtr(path)
		account.Properties.ProvisioningState = models.StringPtr("Succeeded")
		account.Properties.PrimaryEndpoints = &models.StorageEndpoints{
			Blob: fmt.Sprintf("https://%s.blob.%s/", name, models.StorageEndpointSuffix),
		}
		if account.SKU.Tier == "Standard" && account.Properties.AccessTier == nil {
			account.Properties.AccessTier = models.StringPtr("Hot")
		}

		record := &accountRecord{account: account}
		if exists {
			// keys are generated once and survive re-applies
			record.keys = existing.keys
		} else {
			record.keys = models.StorageKeysResponse{
				Keys: []models.StorageKey{
					{KeyName: "key1", Value: randomKey()},
					{KeyName: "key2", Value: randomKey()},
				},
			}
		}
		s.accounts[key] = record

		writeJSON(w, http.StatusCreated, account)

	case http.MethodGet:
		s.mu.Lock()
		defer s.mu.Unlock()

		record, exists := s.accounts[key]
		if !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("storage account %q was not found", name))
			return
		}
		writeJSON(w, http.StatusOK, record.account)

	case http.MethodDelete:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.accounts[key]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("storage account %q was not found", name))
			return
		}
		delete(s.accounts, key)
		delete(s.blobProps, key)
		for k := range s.containers {
			if strings.HasPrefix(k, key+"/") {
				delete(s.containers, k)
			}
		}
		w.WriteHeader(http.StatusOK)

	default:
		armError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handleListKeys(w http.ResponseWriter, rg, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.accounts[rg+"/"+name]
	if !exists {
		armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("storage account %q was not found", name))
		return
	}
	writeJSON(w, http.StatusOK, record.keys)
}

func (s *Server) handleBlobServices(w http.ResponseWriter, r *http.Request, path, rg, name string) {
	key := rg + "/" + name

	switch r.Method {
	case http.MethodPut:
		var props models.BlobServicePropertiesAPI
		if err := s.decodeBody(r, path, &props); err != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.accounts[key]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("storage account %q was not found", name))
			return
		}
		s.blobProps[key] = props
		writeJSON(w, http.StatusOK, props)

	case http.MethodGet:
		s.mu.Lock()
		defer s.mu.Unlock()

		props, exists := s.blobProps[key]
		if !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("blob service properties for %q were not found", name))
			return
		}
		writeJSON(w, http.StatusOK, props)

	default:
		armError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}

func (s *Server) handleListContainers(w http.ResponseWriter, rg, accountName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := rg + "/" + accountName + "/"
	var containers []models.StorageContainerAPI
	for k, c := range s.containers {
		if strings.HasPrefix(k, prefix) {
			containers = append(containers, c)
		}
	}
	sort.Slice(containers, func(i, j int) bool { return containers[i].Name < containers[j].Name })

	writeJSON(w, http.StatusOK, map[string]any{"value": containers})
}

func (s *Server) handleContainer(w http.ResponseWriter, r *http.Request, path, rg, accountName, name string) {
	accountKey := rg + "/" + accountName
	key := accountKey + "/" + name

	switch r.Method {
	case http.MethodPut:
		var container models.StorageContainerAPI
		if err := s.decodeBody(r, path, &container); err != nil {
			armError(w, http.StatusBadRequest, "InvalidParameter", err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.accounts[accountKey]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("storage account %q was not found", accountName))
			return
		}

		switch container.Properties.PublicAccess {
		case "", "None", "Blob", "Container":
		default:
			armError(w, http.StatusBadRequest, "InvalidParameter",
				fmt.Sprintf("publicAccess %q is not valid", container.Properties.PublicAccess))
			return
		}

		container.Name = name
		container.ID = models.StringPtr(path)
		if container.Properties.PublicAccess == "" {
			container.Properties.PublicAccess = "None"
		}
		s.containers[key] = container

		writeJSON(w, http.StatusCreated, container)

	case http.MethodGet:
		s.mu.Lock()
		defer s.mu.Unlock()

		container, exists := s.containers[key]
		if !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("container %q was not found", name))
			return
		}
		writeJSON(w, http.StatusOK, container)

	case http.MethodDelete:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.containers[key]; !exists {
			armError(w, http.StatusNotFound, "ResourceNotFound", fmt.Sprintf("container %q was not found", name))
			return
		}
		delete(s.containers, key)
		w.WriteHeader(http.StatusOK)

	default:
		armError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method)
	}
}
