package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/diag"
)

// ErrorCategory represents the classification of an error
type ErrorCategory int

const (
	ErrorCategoryAuth ErrorCategory = iota
	ErrorCategoryPermission
	ErrorCategoryNotFound
	ErrorCategoryConflict
	ErrorCategoryQuota
	ErrorCategoryValidation
	ErrorCategoryNetwork
	ErrorCategoryTimeout
	ErrorCategoryRateLimit
	ErrorCategoryServer
	ErrorCategoryUnknown
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryAuth:
		return "authentication"
	case ErrorCategoryPermission:
		return "permission"
	case ErrorCategoryNotFound:
		return "not_found"
	case ErrorCategoryConflict:
		return "conflict"
	case ErrorCategoryQuota:
		return "quota"
	case ErrorCategoryValidation:
		return "validation"
	case ErrorCategoryNetwork:
		return "network"
	case ErrorCategoryTimeout:
		return "timeout"
	case ErrorCategoryRateLimit:
		return "rate_limit"
	case ErrorCategoryServer:
		return "server"
	default:
		return "unknown"
	}
}

// classifyError determines the error category using multiple detection strategies.
// The control plane returns ARM-style error codes inside the response body
// (NameAlreadyTaken, QuotaExceeded, ...) which the REST client folds into the
// error message, so classification works on status codes and code patterns.
func classifyError(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryUnknown
	}

	errorMsg := strings.ToLower(err.Error())

	// 1. Standard Go error types (most reliable)

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCategoryNetwork // Treat as network since operation was interrupted
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorCategoryTimeout
		}
		return ErrorCategoryNetwork
	}

	// 2. Pattern matching (ordered by specificity - most specific first)

	// Authentication (401)
	if strings.Contains(errorMsg, "http 401") ||
		strings.Contains(errorMsg, "authentication failed") ||
		strings.Contains(errorMsg, "invalid_client") ||
		strings.Contains(errorMsg, "invalidauthenticationtoken") ||
		strings.Contains(errorMsg, "unauthorized") {
		return ErrorCategoryAuth
	}

	// Permission errors (403 Forbidden)
	if strings.Contains(errorMsg, "http 403") ||
		strings.Contains(errorMsg, "authorizationfailed") ||
		strings.Contains(errorMsg, "forbidden") ||
		strings.Contains(errorMsg, "permission denied") {
		return ErrorCategoryPermission
	}

	// Rate limiting (429 Too Many Requests)
	if strings.Contains(errorMsg, "http 429") ||
		strings.Contains(errorMsg, "too many requests") ||
		strings.Contains(errorMsg, "throttled") {
		return ErrorCategoryRateLimit
	}

	// Quota rejections (check before generic conflict/validation patterns)
	if strings.Contains(errorMsg, "quotaexceeded") ||
		strings.Contains(errorMsg, "quota exceeded") ||
		strings.Contains(errorMsg, "subscriptionquota") {
		return ErrorCategoryQuota
	}

	// Resource not found (404)
	if strings.Contains(errorMsg, "http 404") ||
		strings.Contains(errorMsg, "resourcenotfound") ||
		strings.Contains(errorMsg, "not found") ||
		strings.Contains(errorMsg, "does not exist") {
		return ErrorCategoryNotFound
	}

	// Conflict/duplicate (409 Conflict) - typically name collisions
	if strings.Contains(errorMsg, "http 409") ||
		strings.Contains(errorMsg, "namealreadytaken") ||
		strings.Contains(errorMsg, "alreadyexists") ||
		strings.Contains(errorMsg, "already exists") ||
		strings.Contains(errorMsg, "conflict") {
		return ErrorCategoryConflict
	}

	// Validation errors (400 Bad Request, 422 Unprocessable Entity)
	if strings.Contains(errorMsg, "http 400") ||
		strings.Contains(errorMsg, "http 422") ||
		strings.Contains(errorMsg, "invalidparameter") ||
		strings.Contains(errorMsg, "validation") ||
		strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "bad request") {
		return ErrorCategoryValidation
	}

	// Server errors (5xx)
	if strings.Contains(errorMsg, "http 500") ||
		strings.Contains(errorMsg, "http 502") ||
		strings.Contains(errorMsg, "http 503") ||
		strings.Contains(errorMsg, "http 504") ||
		strings.Contains(errorMsg, "internal server error") ||
		strings.Contains(errorMsg, "service unavailable") {
		return ErrorCategoryServer
	}

	// Network/connectivity (check after other patterns)
	if strings.Contains(errorMsg, "connection refused") ||
		strings.Contains(errorMsg, "connection reset") ||
		strings.Contains(errorMsg, "timeout") ||
		strings.Contains(errorMsg, "timed out") ||
		strings.Contains(errorMsg, "dial") ||
		strings.Contains(errorMsg, "no such host") {
		return ErrorCategoryNetwork
	}

	// 3. Fallback for unknown errors
	return ErrorCategoryUnknown
}

// IsNotFoundError returns true if the error represents a 404 Not Found response
// Used for drift detection in Read() methods to determine if resource was deleted
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return classifyError(err) == ErrorCategoryNotFound
}

// IsConflictError returns true if the error represents a 409 Conflict response,
// typically a name collision on a globally unique resource
func IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	return classifyError(err) == ErrorCategoryConflict
}

// MapError converts control-plane errors to Terraform diagnostics with
// actionable guidance. The original error message is always included intact -
// remote rejections are never masked or downgraded.
// Returns an empty diagnostic if err is nil (caller should check before appending)
func MapError(err error, operation string) diag.Diagnostic {
	if err == nil {
		return diag.NewErrorDiagnostic("", "")
	}

	errorMsg := err.Error()
	category := classifyError(err)

	switch category {
	case ErrorCategoryAuth:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Authentication Failed - %s", operation),
			fmt.Sprintf("Invalid client_id or client_secret.\n\n"+
				"Error: %s\n\n"+
				"Recommended actions:\n"+
				"1. Verify the service principal credentials in the provider configuration\n"+
				"2. Verify tenant_id matches the directory the service principal lives in\n"+
				"3. Check the secret has not expired", errorMsg),
		)

	case ErrorCategoryPermission:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Insufficient Permissions - %s", operation),
			fmt.Sprintf("The service principal lacks a required role assignment.\n\n"+
				"Error: %s\n\n"+
				"Recommended action:\n"+
				"Verify the service principal has Contributor (or equivalent) on the target resource group", errorMsg),
		)

	case ErrorCategoryNotFound:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Resource Not Found - %s", operation),
			fmt.Sprintf("The requested resource was not found.\n\n"+
				"Error: %s\n\n"+
				"This may occur if:\n"+
				"- The resource was deleted outside Terraform\n"+
				"- The resource ID is incorrect\n\n"+
				"Run 'terraform refresh' to sync state", errorMsg),
		)

	case ErrorCategoryConflict:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Resource Conflict - %s", operation),
			fmt.Sprintf("A resource with this name already exists.\n\n"+
				"Error: %s\n\n"+
				"Storage account and server names are globally unique. "+
				"Choose a different name, or use 'terraform import' to manage the existing resource", errorMsg),
		)

	case ErrorCategoryQuota:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Quota Exceeded - %s", operation),
			fmt.Sprintf("The subscription has reached a resource quota.\n\n"+
				"Error: %s\n\n"+
				"Request a quota increase or delete unused resources before retrying", errorMsg),
		)

	case ErrorCategoryValidation:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Validation Failed - %s", operation),
			fmt.Sprintf("The control plane rejected the request.\n\n"+
				"Error: %s\n\n"+
				"Check configuration values against the resource documentation", errorMsg),
		)

	case ErrorCategoryNetwork:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Network Error - %s", operation),
			fmt.Sprintf("Unable to connect to the control plane.\n\n"+
				"Error: %s\n\n"+
				"Recommended actions:\n"+
				"1. Check network connectivity\n"+
				"2. Verify the endpoint in the provider configuration\n"+
				"3. Check firewall rules", errorMsg),
		)

	case ErrorCategoryTimeout:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Request Timeout - %s", operation),
			fmt.Sprintf("Request to the control plane exceeded the timeout limit.\n\n"+
				"Error: %s\n\n"+
				"This is typically transient. Retry the operation; if the problem persists, "+
				"check network latency to the endpoint", errorMsg),
		)

	case ErrorCategoryRateLimit:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Rate Limit Exceeded - %s", operation),
			fmt.Sprintf("Too many requests to the control plane.\n\n"+
				"Error: %s\n\n"+
				"Reduce parallelism in the Terraform configuration or wait before retrying", errorMsg),
		)

	case ErrorCategoryServer:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Control Plane Server Error - %s", operation),
			fmt.Sprintf("The control plane encountered an internal error.\n\n"+
				"Error: %s\n\n"+
				"This is typically a transient issue and the provider retries automatically. "+
				"If the problem persists, contact the platform team.", errorMsg),
		)

	case ErrorCategoryUnknown:
		fallthrough
	default:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Control Plane Error - %s", operation),
			fmt.Sprintf("An error occurred communicating with the control plane.\n\n"+
				"Error: %s\n\n"+
				"If this error persists, please report it with the full error message above.", errorMsg),
		)
	}
}
