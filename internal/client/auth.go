// Package client provides control-plane API client wrappers
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenResponse represents the response from the OAuth2 token endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AuthConfig holds configuration for OAuth2 client credentials authentication
type AuthConfig struct {
	Endpoint     string // Control plane endpoint (e.g., https://management.azure.com)
	TenantID     string // Directory tenant ID
	ClientID     string // Service principal application ID
	ClientSecret string // Service principal secret
}

// GetAccessToken obtains an OAuth2 access token using the client credentials
// grant against the tenant's token endpoint:
//
//	POST {endpoint}/{tenant_id}/oauth2/token
//	Content-Type: application/x-www-form-urlencoded
//	Body: grant_type=client_credentials&client_id=...&client_secret=...
//
// The returned access token authorizes all subsequent resource operations.
func GetAccessToken(ctx context.Context, config *AuthConfig) (*TokenResponse, error) {
	if config == nil {
		return nil, fmt.Errorf("auth config cannot be nil")
	}
	if config.Endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if config.TenantID == "" {
		return nil, fmt.Errorf("tenant_id is required")
	}
	if config.ClientID == "" {
		return nil, fmt.Errorf("client_id is required")
	}
	if config.ClientSecret == "" {
		return nil, fmt.Errorf("client_secret is required")
	}

	tokenURL := fmt.Sprintf("%s/%s/oauth2/token", strings.TrimSuffix(config.Endpoint, "/"), config.TenantID)

	formData := url.Values{}
	formData.Set("grant_type", "client_credentials")
	formData.Set("client_id", config.ClientID)
	formData.Set("client_secret", config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authentication failed - [%d] - [%s]", resp.StatusCode, string(bodyBytes))
	}

	var token TokenResponse
	if err := json.Unmarshal(bodyBytes, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access_token")
	}

	return &token, nil
}
