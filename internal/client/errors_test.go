package client

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// mockNetError implements net.Error for testing
type mockNetError struct {
	temporary bool
	timeout   bool
	msg       string
}

func (e *mockNetError) Error() string   { return e.msg }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return e.temporary }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		expected ErrorCategory
	}{
		// Context errors (most reliable)
		{
			name:     "context deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: ErrorCategoryTimeout,
		},
		{
			name:     "context canceled",
			err:      context.Canceled,
			expected: ErrorCategoryNetwork,
		},

		// Network errors
		{
			name:     "network timeout",
			err:      &mockNetError{timeout: true, msg: "i/o timeout"},
			expected: ErrorCategoryTimeout,
		},
		{
			name:     "network temporary error",
			err:      &mockNetError{temporary: true, msg: "connection reset"},
			expected: ErrorCategoryNetwork,
		},

		// Authentication errors
		{
			name:     "authentication failed",
			err:      errors.New("authentication failed - [401] - [invalid secret]"),
			expected: ErrorCategoryAuth,
		},
		{
			name:     "unauthorized 401",
			err:      errors.New("HTTP 401 unauthorized"),
			expected: ErrorCategoryAuth,
		},
		{
			name:     "invalid_client oauth error",
			err:      errors.New("invalid_client: client authentication failed"),
			expected: ErrorCategoryAuth,
		},
		{
			name:     "expired bearer token",
			err:      errors.New("HTTP 401 - InvalidAuthenticationToken: the access token has expired"),
			expected: ErrorCategoryAuth,
		},

		// Permission errors
		{
			name:     "forbidden 403",
			err:      errors.New("HTTP 403 forbidden"),
			expected: ErrorCategoryPermission,
		},
		{
			name:     "missing role assignment",
			err:      errors.New("HTTP 403 - AuthorizationFailed: the client does not have authorization"),
			expected: ErrorCategoryPermission,
		},

		// Rate limiting
		{
			name:     "too many requests 429",
			err:      errors.New("HTTP 429 too many requests"),
			expected: ErrorCategoryRateLimit,
		},
		{
			name:     "throttled",
			err:      errors.New("request was throttled, retry after 30 seconds"),
			expected: ErrorCategoryRateLimit,
		},

		// Quota rejections
		{
			name:     "subscription quota",
			err:      errors.New("HTTP 409 - QuotaExceeded: regional vcore quota reached"),
			expected: ErrorCategoryQuota,
		},
		{
			name:     "storage account quota",
			err:      errors.New("SubscriptionQuotaExceeded for storage accounts"),
			expected: ErrorCategoryQuota,
		},

		// Not found errors
		{
			name:     "not found 404",
			err:      errors.New("HTTP 404 not found"),
			expected: ErrorCategoryNotFound,
		},
		{
			name:     "arm resource not found",
			err:      errors.New("HTTP 404 - ResourceNotFound: server 'pg-app' was not found"),
			expected: ErrorCategoryNotFound,
		},

		// Conflict errors
		{
			name:     "conflict 409",
			err:      errors.New("HTTP 409 conflict"),
			expected: ErrorCategoryConflict,
		},
		{
			name:     "storage name already taken",
			err:      errors.New("HTTP 409 - NameAlreadyTaken: the storage account name is already taken"),
			expected: ErrorCategoryConflict,
		},

		// Validation errors
		{
			name:     "bad request 400",
			err:      errors.New("HTTP 400 bad request"),
			expected: ErrorCategoryValidation,
		},
		{
			name:     "premium access tier rejection",
			err:      errors.New("HTTP 400 - InvalidParameter: accessTier is not permitted for Premium storage accounts"),
			expected: ErrorCategoryValidation,
		},

		// Server errors
		{
			name:     "internal server error 500",
			err:      errors.New("HTTP 500 internal server error"),
			expected: ErrorCategoryServer,
		},
		{
			name:     "service unavailable 503",
			err:      errors.New("HTTP 503 service unavailable"),
			expected: ErrorCategoryServer,
		},

		// Network patterns in plain errors
		{
			name:     "connection refused",
			err:      errors.New("connection refused"),
			expected: ErrorCategoryNetwork,
		},
		{
			name:     "dns failure",
			err:      errors.New("no such host"),
			expected: ErrorCategoryNetwork,
		},

		// Fallback
		{
			name:     "unknown error",
			err:      errors.New("something unexpected happened"),
			expected: ErrorCategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifyError(tt.err)
			if result != tt.expected {
				t.Errorf("classifyError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestErrorCategoryString(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		expected string
	}{
		{ErrorCategoryAuth, "authentication"},
		{ErrorCategoryPermission, "permission"},
		{ErrorCategoryNotFound, "not_found"},
		{ErrorCategoryConflict, "conflict"},
		{ErrorCategoryQuota, "quota"},
		{ErrorCategoryValidation, "validation"},
		{ErrorCategoryNetwork, "network"},
		{ErrorCategoryTimeout, "timeout"},
		{ErrorCategoryRateLimit, "rate_limit"},
		{ErrorCategoryServer, "server"},
		{ErrorCategoryUnknown, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.expected {
			t.Errorf("ErrorCategory(%d).String() = %q, want %q", tt.category, got, tt.expected)
		}
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		err      error
		name     string
		expected bool
	}{
		{
			name:     "404 response",
			err:      errors.New("HTTP 404 - ResourceNotFound: the server was not found"),
			expected: true,
		},
		{
			name:     "drift detection message",
			err:      errors.New("resource does not exist"),
			expected: true,
		},
		{
			name:     "conflict is not a not-found",
			err:      errors.New("HTTP 409 - NameAlreadyTaken"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsConflictError(t *testing.T) {
	if !IsConflictError(errors.New("HTTP 409 - NameAlreadyTaken: name is already taken")) {
		t.Error("expected NameAlreadyTaken to classify as conflict")
	}
	if IsConflictError(errors.New("HTTP 404 not found")) {
		t.Error("404 should not classify as conflict")
	}
	if IsConflictError(nil) {
		t.Error("nil should not classify as conflict")
	}
}

func TestMapError_PreservesOriginalMessage(t *testing.T) {
	// Remote rejections must surface verbatim in the diagnostic detail,
	// whatever category they classify into.
	tests := []struct {
		err           error
		name          string
		wantedSummary string
	}{
		{
			err:           errors.New("HTTP 401 unauthorized"),
			name:          "auth",
			wantedSummary: "Authentication Failed",
		},
		{
			err:           errors.New("HTTP 403 - AuthorizationFailed: no role assignment"),
			name:          "permission",
			wantedSummary: "Insufficient Permissions",
		},
		{
			err:           errors.New("HTTP 404 - ResourceNotFound: gone"),
			name:          "not found",
			wantedSummary: "Resource Not Found",
		},
		{
			err:           errors.New("HTTP 409 - NameAlreadyTaken: taken"),
			name:          "conflict",
			wantedSummary: "Resource Conflict",
		},
		{
			err:           errors.New("QuotaExceeded: regional vcore quota reached"),
			name:          "quota",
			wantedSummary: "Quota Exceeded",
		},
		{
			err:           errors.New("HTTP 400 - InvalidParameter: accessTier is not permitted for Premium storage accounts"),
			name:          "validation",
			wantedSummary: "Validation Failed",
		},
		{
			err:           errors.New("connection refused"),
			name:          "network",
			wantedSummary: "Network Error",
		},
		{
			err:           context.DeadlineExceeded,
			name:          "timeout",
			wantedSummary: "Request Timeout",
		},
		{
			err:           errors.New("HTTP 429 too many requests"),
			name:          "rate limit",
			wantedSummary: "Rate Limit Exceeded",
		},
		{
			err:           errors.New("HTTP 503 service unavailable"),
			name:          "server",
			wantedSummary: "Control Plane Server Error",
		},
		{
			err:           errors.New("something unexpected happened"),
			name:          "unknown",
			wantedSummary: "Control Plane Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MapError(tt.err, "Create PostgreSQL Server")

			if !strings.Contains(d.Summary(), tt.wantedSummary) {
				t.Errorf("summary %q does not contain %q", d.Summary(), tt.wantedSummary)
			}
			if !strings.Contains(d.Summary(), "Create PostgreSQL Server") {
				t.Errorf("summary %q does not include the operation", d.Summary())
			}
			if !strings.Contains(d.Detail(), tt.err.Error()) {
				t.Errorf("detail %q does not include original error %q", d.Detail(), tt.err.Error())
			}
		})
	}
}
