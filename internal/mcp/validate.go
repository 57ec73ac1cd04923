package mcp

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// argumentViolations is the local validation failure: one entry per violated
// field path. It is distinguishable from upstream failures so the router can
// render it as itemized "field: reason" lines.
type argumentViolations struct {
	violations []string
}

func (e *argumentViolations) Error() string {
	return strings.Join(e.violations, "\n")
}

// validateArguments walks args against a declared schema document and returns
// one message per violation, each qualified with the field path. Unknown
// extra fields are tolerated; missing required fields, wrong primitive types
// and out-of-enum values are not. The walk is total: it never panics on any
// input shape.
func validateArguments(schema map[string]any, args map[string]any) []string {
	var violations []string
	validateObject(schema, args, "", &violations)
	return violations
}

func validateObject(schema map[string]any, value map[string]any, path string, violations *[]string) {
	if required, ok := schema["required"].([]any); ok {
		names := make([]string, 0, len(required))
		for _, item := range required {
			if name, ok := item.(string); ok {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			if _, present := value[name]; !present {
				*violations = append(*violations, fmt.Sprintf("%s: required field is missing", joinPath(path, name)))
			}
		}
	}

	properties, _ := schema["properties"].(map[string]any)
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fieldValue, present := value[name]
		if !present {
			continue
		}
		fieldSchema, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		validateValue(fieldSchema, fieldValue, joinPath(path, name), violations)
	}
}

func validateValue(schema map[string]any, value any, path string, violations *[]string) {
	if value == nil {
		// null is treated like an absent optional field.
		return
	}

	schemaType, _ := schema["type"].(string)
	switch schemaType {
	case "string":
		s, ok := value.(string)
		if !ok {
			*violations = append(*violations, fmt.Sprintf("%s: must be a string", path))
			return
		}
		if minLen, ok := schema["minLength"].(int); ok && len(s) < minLen {
			*violations = append(*violations, fmt.Sprintf("%s: must not be empty", path))
			return
		}
		validateEnum(schema, s, path, violations)
	case "integer":
		f, ok := value.(float64)
		if !ok || math.Trunc(f) != f {
			*violations = append(*violations, fmt.Sprintf("%s: must be an integer", path))
		}
	case "number":
		if _, ok := value.(float64); !ok {
			*violations = append(*violations, fmt.Sprintf("%s: must be a number", path))
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			*violations = append(*violations, fmt.Sprintf("%s: must be a boolean", path))
		}
	case "array":
		items, ok := value.([]any)
		if !ok {
			*violations = append(*violations, fmt.Sprintf("%s: must be an array", path))
			return
		}
		itemSchema, hasItems := schema["items"].(map[string]any)
		if !hasItems {
			return
		}
		for idx, item := range items {
			validateValue(itemSchema, item, fmt.Sprintf("%s[%d]", path, idx), violations)
		}
	case "object":
		obj, ok := value.(map[string]any)
		if !ok {
			*violations = append(*violations, fmt.Sprintf("%s: must be an object", path))
			return
		}
		validateObject(schema, obj, path, violations)
	}
}

func validateEnum(schema map[string]any, value string, path string, violations *[]string) {
	allowed, ok := schema["enum"].([]any)
	if !ok {
		return
	}
	labels := make([]string, 0, len(allowed))
	for _, item := range allowed {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s == value {
			return
		}
		labels = append(labels, s)
	}
	*violations = append(*violations, fmt.Sprintf("%s: must be one of %s", path, strings.Join(labels, ", ")))
}

func joinPath(parent, field string) string {
	if parent == "" {
		return field
	}
	return parent + "." + field
}
