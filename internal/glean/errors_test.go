package glean

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestClassifyStatus_KindTable(t *testing.T) {
	cases := []struct {
		status      int
		wantKind    ErrorKind
		wantMessage string
	}{
		{400, KindInvalidRequest, "Invalid request"},
		{401, KindAuthentication, "Authentication failed"},
		{403, KindPermission, "Forbidden"},
		{408, KindRequestTimeout, "Request timeout"},
		{422, KindValidation, "Invalid query"},
		{429, KindRateLimit, "Too many requests"},
		{500, KindGeneric, "Glean API error"},
		{502, KindGeneric, "Glean API error"},
		{418, KindGeneric, "Glean API error"},
	}
	for _, tc := range cases {
		apiErr := ClassifyStatus(tc.status, nil)
		if apiErr.Kind != tc.wantKind {
			t.Fatalf("status %d: kind = %q, want %q", tc.status, apiErr.Kind, tc.wantKind)
		}
		if apiErr.Status != tc.status {
			t.Fatalf("status %d: recorded status = %d", tc.status, apiErr.Status)
		}
		if apiErr.Message != tc.wantMessage {
			t.Fatalf("status %d: message = %q, want %q", tc.status, apiErr.Message, tc.wantMessage)
		}
	}
}

func TestClassifyStatus_BodyMessageWins(t *testing.T) {
	apiErr := ClassifyStatus(400, []byte(`{"message":"bad"}`))
	if apiErr.Kind != KindInvalidRequest {
		t.Fatalf("kind = %q, want %q", apiErr.Kind, KindInvalidRequest)
	}
	if apiErr.Message != "bad" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "bad")
	}
	if apiErr.Status != 400 {
		t.Fatalf("status = %d, want 400", apiErr.Status)
	}
}

func TestClassifyStatus_RateLimitDefaultReset(t *testing.T) {
	before := time.Now()
	apiErr := ClassifyStatus(429, []byte(`{}`))
	after := time.Now()

	if apiErr.Message != "Too many requests" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	low := before.Add(59 * time.Second)
	high := after.Add(61 * time.Second)
	if apiErr.ResetAt.Before(low) || apiErr.ResetAt.After(high) {
		t.Fatalf("ResetAt = %v, want roughly 60s in the future", apiErr.ResetAt)
	}
}

func TestClassifyStatus_RateLimitResetFormats(t *testing.T) {
	apiErr := ClassifyStatus(429, []byte(`{"reset_at":"2026-01-02T15:04:05Z"}`))
	want := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	if !apiErr.ResetAt.Equal(want) {
		t.Fatalf("RFC3339 ResetAt = %v, want %v", apiErr.ResetAt, want)
	}

	apiErr = ClassifyStatus(429, []byte(`{"reset_at":1767366245}`))
	if !apiErr.ResetAt.Equal(time.Unix(1767366245, 0)) {
		t.Fatalf("epoch ResetAt = %v", apiErr.ResetAt)
	}

	// Unparseable strings fall back to the default window.
	apiErr = ClassifyStatus(429, []byte(`{"reset_at":"soon"}`))
	if until := time.Until(apiErr.ResetAt); until < 55*time.Second || until > 65*time.Second {
		t.Fatalf("fallback ResetAt = %v", apiErr.ResetAt)
	}
}

func TestClassifyStatus_NonJSONBody(t *testing.T) {
	apiErr := ClassifyStatus(500, []byte("upstream exploded"))
	if apiErr.Message != "Glean API error" {
		t.Fatalf("message = %q", apiErr.Message)
	}
	if !strings.Contains(string(apiErr.Response), "upstream exploded") {
		t.Fatalf("response payload lost: %s", apiErr.Response)
	}
}

func TestIsAPIError(t *testing.T) {
	if !IsAPIError(ClassifyStatus(403, nil)) {
		t.Fatal("classified error not recognized")
	}
	if IsAPIError(errors.New("dial tcp: connection refused")) {
		t.Fatal("plain error misclassified as API error")
	}
	if IsAPIError(nil) {
		t.Fatal("nil misclassified as API error")
	}
}

func TestFormatAPIError_Labels(t *testing.T) {
	cases := []struct {
		status int
		want   string
	}{
		{400, "Invalid Request: Invalid request"},
		{401, "Authentication Failed: Authentication failed"},
		{403, "Permission Denied: Forbidden"},
		{408, "Request Timeout: Request timeout"},
		{422, "Invalid Query: Invalid query"},
		{429, "Rate Limit Exceeded: Too many requests"},
		{500, "Glean API Error: Glean API error"},
	}
	for _, tc := range cases {
		got := FormatAPIError(ClassifyStatus(tc.status, nil))
		if !strings.HasPrefix(got, tc.want) {
			t.Fatalf("status %d: format = %q, want prefix %q", tc.status, got, tc.want)
		}
	}
}

func TestFormatAPIError_InvalidRequestDetails(t *testing.T) {
	apiErr := ClassifyStatus(400, []byte(`{"message":"Bad request","details":"Invalid parameter"}`))
	got := FormatAPIError(apiErr)
	if !strings.Contains(got, "Invalid Request: Bad request") {
		t.Fatalf("missing label line: %q", got)
	}
	if !strings.Contains(got, `Details: {"message":"Bad request","details":"Invalid parameter"}`) {
		t.Fatalf("missing details line: %q", got)
	}
}

func TestFormatAPIError_ValidationDetails(t *testing.T) {
	apiErr := ClassifyStatus(422, []byte(`{"field":"query"}`))
	got := FormatAPIError(apiErr)
	if !strings.Contains(got, "Details: ") {
		t.Fatalf("missing details line: %q", got)
	}
}

func TestFormatAPIError_NoDetailsWhenEmpty(t *testing.T) {
	got := FormatAPIError(ClassifyStatus(400, []byte(`{}`)))
	if strings.Contains(got, "Details:") {
		t.Fatalf("unexpected details line for empty response: %q", got)
	}
}

func TestFormatAPIError_RateLimitResetLine(t *testing.T) {
	apiErr := ClassifyStatus(429, []byte(`{"reset_at":"2026-01-02T15:04:05Z"}`))
	got := FormatAPIError(apiErr)
	if !strings.Contains(got, "Resets at: 2026-01-02T15:04:05Z") {
		t.Fatalf("missing reset line: %q", got)
	}
}
