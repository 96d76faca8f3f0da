package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// RestClient provides a generic HTTP client for control-plane operations
// with bearer authentication, retry logic, and error mapping
type RestClient struct {
	HTTPClient  *http.Client
	BaseURL     string
	AccessToken string
}

// NewRestClient creates a new generic REST client with an OAuth2 access token
func NewRestClient(baseURL, accessToken string) (*RestClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	return &RestClient{
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		AccessToken: accessToken,
	}, nil
}

// DoRequest performs a generic HTTP request with retry logic and error handling.
// Transient failures (429, 5xx, network errors) are retried with exponential
// backoff; 4xx rejections are surfaced verbatim with the control plane's
// message intact.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - method: HTTP method (PUT, GET, PATCH, POST, DELETE)
//   - path: API path (e.g., "/subscriptions/{sub}/resourceGroups/{rg}/...")
//   - requestBody: Request body marshaled to JSON (nil for GET/DELETE)
//   - responseData: Pointer to struct for unmarshaling response JSON (nil if no response expected)
func (c *RestClient) DoRequest(
	ctx context.Context,
	method string,
	path string,
	requestBody interface{},
	responseData interface{},
) error {
	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	return RetryWithBackoff(ctx, DefaultRetryConfig(), func() error {
		var bodyReader io.Reader
		if requestBody != nil {
			bodyBytes, err := json.Marshal(requestBody)
			if err != nil {
				return fmt.Errorf("failed to marshal request body: %w", err)
			}
			bodyReader = bytes.NewReader(bodyBytes)

			// Log request (sanitized - no payload, it may carry credentials)
			tflog.Debug(ctx, "REST API request", map[string]interface{}{
				"method": method,
				"path":   path,
			})
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create HTTP request: %w", err)
		}

		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.AccessToken))
		if requestBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()

		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("HTTP %d - %s", resp.StatusCode, string(respBodyBytes))
		}

		tflog.Debug(ctx, "REST API response", map[string]interface{}{
			"status_code": resp.StatusCode,
			"method":      method,
			"path":        path,
		})

		if responseData != nil && len(respBodyBytes) > 0 {
			if err := json.Unmarshal(respBodyBytes, responseData); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}

		return nil
	})
}
