package glean

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ErrorKind partitions upstream failures by what the caller can do about
// them: fix the request, fix credentials, wait, or give up.
type ErrorKind string

const (
	KindInvalidRequest ErrorKind = "invalid_request"
	KindAuthentication ErrorKind = "authentication"
	KindPermission     ErrorKind = "permission"
	KindRequestTimeout ErrorKind = "request_timeout"
	KindValidation     ErrorKind = "validation"
	KindRateLimit      ErrorKind = "rate_limit"
	KindGeneric        ErrorKind = "generic"
)

// rate-limit responses without a usable reset_at get this window.
const rateLimitDefaultReset = 60 * time.Second

// APIError is a non-2xx answer from the Glean API, classified by status.
// Response always holds valid JSON; non-JSON bodies are wrapped.
type APIError struct {
	Kind     ErrorKind
	Status   int
	Message  string
	Response json.RawMessage
	ResetAt  time.Time
}

func (e *APIError) Error() string {
	return fmt.Sprintf("glean api: %s (status %d)", e.Message, e.Status)
}

// IsAPIError reports whether err wraps an upstream-classified failure, as
// opposed to a transport or serialization error.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

type errorPayload struct {
	Message string `json:"message"`
	ResetAt any    `json:"reset_at"`
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case 400:
		return KindInvalidRequest
	case 401:
		return KindAuthentication
	case 403:
		return KindPermission
	case 408:
		return KindRequestTimeout
	case 422:
		return KindValidation
	case 429:
		return KindRateLimit
	default:
		return KindGeneric
	}
}

func defaultMessage(kind ErrorKind) string {
	switch kind {
	case KindInvalidRequest:
		return "Invalid request"
	case KindAuthentication:
		return "Authentication failed"
	case KindPermission:
		return "Forbidden"
	case KindRequestTimeout:
		return "Request timeout"
	case KindValidation:
		return "Invalid query"
	case KindRateLimit:
		return "Too many requests"
	default:
		return "Glean API error"
	}
}

// ClassifyStatus builds the typed error for a non-2xx response. The body's
// message field, when present, replaces the per-kind default; rate-limit
// responses additionally carry a reset time.
func ClassifyStatus(status int, body []byte) *APIError {
	kind := kindForStatus(status)
	apiErr := &APIError{
		Kind:     kind,
		Status:   status,
		Message:  defaultMessage(kind),
		Response: normalizeResponsePayload(body),
	}

	var payload errorPayload
	if err := json.Unmarshal(apiErr.Response, &payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		}
		if kind == KindRateLimit {
			apiErr.ResetAt = parseResetAt(payload.ResetAt)
		}
	} else if kind == KindRateLimit {
		apiErr.ResetAt = time.Now().Add(rateLimitDefaultReset)
	}
	return apiErr
}

// parseResetAt accepts the formats seen in the wild: an RFC 3339 string, a
// Unix epoch as a string, or a Unix epoch as a JSON number. Anything else
// falls back to the default window.
func parseResetAt(value any) time.Time {
	switch v := value.(type) {
	case string:
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts
		}
		if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.Unix(epoch, 0)
		}
	case float64:
		return time.Unix(int64(v), 0)
	}
	return time.Now().Add(rateLimitDefaultReset)
}

// normalizeResponsePayload guarantees valid JSON: parseable bodies are
// compacted, everything else is wrapped as {"raw": <body>}.
func normalizeResponsePayload(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return json.RawMessage(`{}`)
	}
	if json.Valid(trimmed) {
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err == nil {
			return json.RawMessage(compact.Bytes())
		}
	}
	wrapped, err := json.Marshal(map[string]string{"raw": string(trimmed)})
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return wrapped
}

func label(kind ErrorKind) string {
	switch kind {
	case KindInvalidRequest:
		return "Invalid Request"
	case KindAuthentication:
		return "Authentication Failed"
	case KindPermission:
		return "Permission Denied"
	case KindRequestTimeout:
		return "Request Timeout"
	case KindValidation:
		return "Invalid Query"
	case KindRateLimit:
		return "Rate Limit Exceeded"
	default:
		return "Glean API Error"
	}
}

// FormatAPIError renders the error the way tool callers see it: a labeled
// message, a details line for request-shape failures, and the reset time for
// rate limits.
func FormatAPIError(e *APIError) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s: %s", label(e.Kind), e.Message)

	switch e.Kind {
	case KindInvalidRequest, KindValidation:
		if details := compactResponse(e.Response); details != "" {
			fmt.Fprintf(&b, "\nDetails: %s", details)
		}
	case KindRateLimit:
		if !e.ResetAt.IsZero() {
			fmt.Fprintf(&b, "\nResets at: %s", e.ResetAt.UTC().Format(time.RFC3339))
		}
	}
	return b.String()
}

// compactResponse returns the response payload for display, or "" when it
// carries nothing worth showing.
func compactResponse(raw json.RawMessage) string {
	s := string(bytes.TrimSpace(raw))
	switch s {
	case "", "{}", "null", `""`, "[]":
		return ""
	}
	return s
}
