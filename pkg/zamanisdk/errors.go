package zamanisdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UnreachableMessage is the user-facing message for transport failures. The
// gateway proxy uses the same text in its 502 body.
const UnreachableMessage = "Unable to reach the backend server."

// ============================================================================
// APIError - non-2xx responses
// ============================================================================

// APIError is returned for every non-2xx response from the Zamani API.
//
// Message is taken from the payload's "message" field when present, otherwise
// a generated fallback. Payload holds the decoded JSON object so callers can
// branch on backend-specific flags (see MustChangePassword).
type APIError struct {
	// StatusCode is the HTTP status returned by the backend
	StatusCode int

	// Message is the human-readable error message
	Message string

	// Payload is the decoded JSON object, nil for text or non-object bodies
	Payload map[string]any

	// Body is the raw response body
	Body string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Field returns a top-level payload field.
func (e *APIError) Field(key string) (any, bool) {
	if e.Payload == nil {
		return nil, false
	}
	v, ok := e.Payload[key]
	return v, ok
}

// MustChangePassword reports whether the backend rejected a login because the
// account has to set a new password first.
func (e *APIError) MustChangePassword() bool {
	for _, key := range []string{"mustChangePassword", "requirePasswordChange", "passwordChangeRequired"} {
		if v, ok := e.Field(key); ok && truthy(v) {
			return true
		}
	}

	// Some endpoints nest flags under "data"
	if data, ok := e.Field("data"); ok {
		if m, ok := data.(map[string]any); ok {
			nested := &APIError{Payload: m}
			return nested.MustChangePassword()
		}
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	case float64:
		return t != 0
	default:
		return false
	}
}

// hasServerMessage reports whether Message came from the backend rather than
// from fallbackMessage.
func (e *APIError) hasServerMessage() bool {
	msg := strings.TrimSpace(e.Message)
	return msg != "" && msg != fallbackMessage(e.StatusCode)
}

// fallbackMessage is used when the error payload carries no message.
func fallbackMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}

// newAPIError builds an APIError from a failed response.
func newAPIError(status int, contentType string, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    fallbackMessage(status),
		Body:       string(body),
	}

	if !isJSONContentType(contentType) {
		return apiErr
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	apiErr.Payload = payload

	if msg, ok := payload["message"].(string); ok && strings.TrimSpace(msg) != "" {
		apiErr.Message = msg
	}
	return apiErr
}

// ============================================================================
// NetworkError - transport failures
// ============================================================================

// NetworkError is returned when the request never produced an HTTP response.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return UnreachableMessage
}

// Unwrap exposes the transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// ============================================================================
// ValidationErrors - client-side form validation
// ============================================================================

// ValidationErrors maps form field names to messages. A request that fails
// validation is never sent.
type ValidationErrors map[string]string

// Error implements the error interface with a stable field order.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// orNil returns nil when no field failed.
func (v ValidationErrors) orNil() ValidationErrors {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ============================================================================
// Helpers
// ============================================================================

// UserMessage turns an error into a message suitable for a notification,
// falling back to fallback when the error carries nothing useful.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.hasServerMessage() {
			return apiErr.Message
		}
		return fallback
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return UnreachableMessage
	}

	var valErr ValidationErrors
	if errors.As(err, &valErr) {
		return fallback
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// StatusCode returns the HTTP status of an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
