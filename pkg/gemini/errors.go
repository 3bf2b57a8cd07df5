package gemini

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ErrorType categorizes remote call failures.
type ErrorType string

const (
	ErrInvalidRequest ErrorType = "invalid_request_error"
	ErrAuthentication ErrorType = "authentication_error"
	ErrPermission     ErrorType = "permission_error"
	ErrNotFound       ErrorType = "not_found_error"
	ErrRateLimit      ErrorType = "rate_limit_error"
	ErrAPI            ErrorType = "api_error"
	ErrOverloaded     ErrorType = "overloaded_error"
	ErrProvider       ErrorType = "provider_error"
)

// Error represents an API error from the Gemini endpoint. The remote message
// is carried through verbatim; no call is ever retried at this layer.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    string    `json:"code,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gemini: %s: %s (code: %s)", e.Type, e.Message, e.Code)
	}
	return fmt.Sprintf("gemini: %s: %s", e.Type, e.Message)
}

// apiError is the Google RPC error envelope returned by the REST surface.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// parseError maps an HTTP error response onto the canonical taxonomy.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &Error{Type: ErrProvider, Message: string(body)}
	}

	var errType ErrorType
	switch envelope.Error.Status {
	case "INVALID_ARGUMENT", "FAILED_PRECONDITION":
		errType = ErrInvalidRequest
	case "UNAUTHENTICATED":
		errType = ErrAuthentication
	case "PERMISSION_DENIED":
		errType = ErrPermission
	case "NOT_FOUND":
		errType = ErrNotFound
	case "RESOURCE_EXHAUSTED":
		errType = ErrRateLimit
	case "INTERNAL":
		errType = ErrAPI
	case "UNAVAILABLE":
		errType = ErrOverloaded
	default:
		errType = ErrProvider
	}

	// The HTTP status wins when the RPC status is absent or ambiguous.
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		errType = ErrRateLimit
	case http.StatusServiceUnavailable:
		errType = ErrOverloaded
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ErrAuthentication
	}

	return &Error{
		Type:    errType,
		Message: envelope.Error.Message,
		Code:    envelope.Error.Status,
	}
}
