package mcp

import (
	"reflect"
	"strings"
	"testing"
)

func TestValidateArguments_SearchMinimal(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{"query": "roadmap"})
	if len(violations) != 0 {
		t.Fatalf("violations = %v", violations)
	}
}

func TestValidateArguments_SearchMissingQuery(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{})
	want := []string{"query: required field is missing"}
	if !reflect.DeepEqual(violations, want) {
		t.Fatalf("violations = %v, want %v", violations, want)
	}
}

func TestValidateArguments_SearchEmptyQuery(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{"query": ""})
	if len(violations) != 1 || !strings.Contains(violations[0], "query") {
		t.Fatalf("violations = %v", violations)
	}
}

func TestValidateArguments_SearchWrongTypes(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{
		"query":    float64(7),
		"pageSize": "ten",
	})
	if len(violations) != 2 {
		t.Fatalf("violations = %v", violations)
	}
	// Property order is stable, pageSize sorts before query.
	if !strings.HasPrefix(violations[0], "pageSize:") {
		t.Fatalf("violations[0] = %q", violations[0])
	}
	if !strings.HasPrefix(violations[1], "query:") {
		t.Fatalf("violations[1] = %q", violations[1])
	}
}

func TestValidateArguments_IntegerRejectsFraction(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{
		"query":    "q",
		"pageSize": 2.5,
	})
	if len(violations) != 1 || violations[0] != "pageSize: must be an integer" {
		t.Fatalf("violations = %v", violations)
	}
	// A whole-valued float is how JSON integers arrive, so it passes.
	violations = validateArguments(searchInputSchema(), map[string]any{
		"query":    "q",
		"pageSize": float64(2),
	})
	if len(violations) != 0 {
		t.Fatalf("violations = %v", violations)
	}
}

func TestValidateArguments_UnknownFieldsTolerated(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{
		"query":        "q",
		"futureOption": true,
	})
	if len(violations) != 0 {
		t.Fatalf("violations = %v", violations)
	}
}

func TestValidateArguments_NullIsAbsent(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{
		"query":  "q",
		"cursor": nil,
	})
	if len(violations) != 0 {
		t.Fatalf("violations = %v", violations)
	}
}

func TestValidateArguments_NestedArrayPaths(t *testing.T) {
	violations := validateArguments(searchInputSchema(), map[string]any{
		"query": "q",
		"people": []any{
			map[string]any{"name": "Ada", "obfuscatedId": "p1"},
			map[string]any{"name": "Grace"},
		},
	})
	want := []string{"people[1].obfuscatedId: required field is missing"}
	if !reflect.DeepEqual(violations, want) {
		t.Fatalf("violations = %v, want %v", violations, want)
	}
}

func TestValidateArguments_ChatEnumViolation(t *testing.T) {
	violations := validateArguments(chatInputSchema(), map[string]any{
		"messages": []any{
			map[string]any{
				"author":    "ROBOT",
				"fragments": []any{map[string]any{"text": "hi"}},
			},
		},
	})
	if len(violations) != 1 {
		t.Fatalf("violations = %v", violations)
	}
	if violations[0] != "messages[0].author: must be one of USER, GLEAN_AI" {
		t.Fatalf("violations[0] = %q", violations[0])
	}
}

func TestValidateArguments_ChatMessagesNotArray(t *testing.T) {
	violations := validateArguments(chatInputSchema(), map[string]any{
		"messages": "hello",
	})
	if len(violations) != 1 || violations[0] != "messages: must be an array" {
		t.Fatalf("violations = %v", violations)
	}
}

func TestValidateArguments_ChatMinimal(t *testing.T) {
	violations := validateArguments(chatInputSchema(), map[string]any{
		"messages": []any{
			map[string]any{
				"author":    "USER",
				"fragments": []any{map[string]any{"text": "What is the roadmap?"}},
			},
		},
	})
	if len(violations) != 0 {
		t.Fatalf("violations = %v", violations)
	}
}

func TestArgumentViolations_ErrorJoinsLines(t *testing.T) {
	err := &argumentViolations{violations: []string{"a: bad", "b: worse"}}
	if err.Error() != "a: bad\nb: worse" {
		t.Fatalf("error = %q", err.Error())
	}
}
