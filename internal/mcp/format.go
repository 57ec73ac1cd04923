package mcp

import (
	"fmt"
	"sort"
	"strings"
)

// The formatters turn raw upstream JSON into a single human-readable string.
// Upstream response shapes vary a lot between deployments, so every field
// access is defensive: a missing or mistyped field degrades to a placeholder,
// never a panic.

func getString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func getMap(m map[string]any, key string) map[string]any {
	v, _ := m[key].(map[string]any)
	return v
}

func getList(m map[string]any, key string) ([]any, bool) {
	v, ok := m[key].([]any)
	return v, ok
}

func stringOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// formatSearchResults renders a search response as a numbered result list.
func formatSearchResults(raw map[string]any) string {
	if raw == nil {
		return "No results found."
	}
	results, ok := getList(raw, "results")
	if !ok {
		return "No results found."
	}

	// Upstream always sends metadata alongside results, but guard anyway.
	metadata := getMap(raw, "metadata")
	if metadata == nil {
		metadata = map[string]any{}
	}
	query := stringOr(getString(metadata, "searchedQuery"), "your query")
	total := len(results)
	if v, ok := metadata["totalResults"].(float64); ok {
		total = int(v)
	}

	blocks := make([]string, 0, len(results))
	for i, entry := range results {
		result, _ := entry.(map[string]any)
		if result == nil {
			result = map[string]any{}
		}
		document := getMap(result, "document")
		if document == nil {
			document = map[string]any{}
		}

		var b strings.Builder
		fmt.Fprintf(&b, "[%d] %s\n", i+1, stringOr(getString(result, "title"), "No title"))
		b.WriteString(snippetBlock(result))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Source: %s\n", stringOr(getString(document, "datasource"), "Unknown source"))
		fmt.Fprintf(&b, "URL: %s", getString(result, "url"))
		blocks = append(blocks, b.String())
	}

	header := fmt.Sprintf("Search results for %q (%d results):", query, total)
	if len(blocks) == 0 {
		return header + "\n"
	}
	return header + "\n\n" + strings.Join(blocks, "\n\n")
}

// snippetBlock joins a result's snippet texts in snippetTextOrdering order.
func snippetBlock(result map[string]any) string {
	snippets, _ := getList(result, "snippets")

	type orderedSnippet struct {
		order float64
		text  string
	}
	ordered := make([]orderedSnippet, 0, len(snippets))
	for _, entry := range snippets {
		snippet, _ := entry.(map[string]any)
		if snippet == nil {
			continue
		}
		order, _ := snippet["snippetTextOrdering"].(float64)
		ordered = append(ordered, orderedSnippet{order: order, text: getString(snippet, "text")})
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].order < ordered[j].order })

	lines := make([]string, 0, len(ordered))
	for _, s := range ordered {
		if s.text != "" {
			lines = append(lines, s.text)
		}
	}
	if len(lines) == 0 {
		return "No description available"
	}
	return strings.Join(lines, "\n")
}

// formatChatResponse renders chat messages with their fragments and source
// citations.
func formatChatResponse(raw map[string]any) string {
	if raw == nil {
		return "No response received."
	}
	messages, ok := getList(raw, "messages")
	if !ok || len(messages) == 0 {
		return "No response received."
	}

	blocks := make([]string, 0, len(messages))
	for _, entry := range messages {
		message, _ := entry.(map[string]any)
		if message == nil {
			message = map[string]any{}
		}
		blocks = append(blocks, formatChatMessage(message))
	}
	return strings.Join(blocks, "\n\n")
}

func formatChatMessage(message map[string]any) string {
	var b strings.Builder
	b.WriteString(stringOr(getString(message, "author"), "USER"))
	if messageType := getString(message, "messageType"); messageType != "" {
		fmt.Fprintf(&b, " (%s)", messageType)
	}
	if stepID := getString(message, "stepId"); stepID != "" {
		fmt.Fprintf(&b, " [Step: %s]", stepID)
	}
	b.WriteString(": ")

	fragments, _ := getList(message, "fragments")
	lines := make([]string, 0, len(fragments))
	for _, entry := range fragments {
		fragment, _ := entry.(map[string]any)
		if fragment == nil {
			continue
		}
		lines = append(lines, fragmentLines(fragment)...)
	}
	b.WriteString(strings.Join(lines, "\n"))

	if citations, _ := getList(message, "citations"); len(citations) > 0 {
		b.WriteString("\n\nSources:")
		for i, entry := range citations {
			citation, _ := entry.(map[string]any)
			if citation == nil {
				citation = map[string]any{}
			}
			source := getMap(citation, "sourceDocument")
			if source == nil {
				source = map[string]any{}
			}
			fmt.Fprintf(&b, "\n[%d] %s - %s",
				i+1,
				stringOr(getString(source, "title"), "Unknown source"),
				getString(source, "url"))
		}
	}
	return b.String()
}

// fragmentLines renders every populated kind of one fragment. The wire format
// allows a single fragment to carry several kinds at once, so each applicable
// rule contributes a line rather than the first match winning.
func fragmentLines(fragment map[string]any) []string {
	var lines []string
	if text := getString(fragment, "text"); text != "" {
		lines = append(lines, text)
	}
	if suggestion := getMap(fragment, "querySuggestion"); suggestion != nil {
		lines = append(lines, "Query: "+getString(suggestion, "query"))
	}
	if file := getMap(fragment, "file"); file != nil {
		if name := getString(file, "name"); name != "" {
			lines = append(lines, "File: "+name)
		}
	}
	if structured, _ := getList(fragment, "structuredResults"); structured != nil {
		for _, entry := range structured {
			item, _ := entry.(map[string]any)
			if item == nil {
				continue
			}
			document := getMap(item, "document")
			if document == nil {
				continue
			}
			lines = append(lines, fmt.Sprintf("Document: %s (%s)",
				stringOr(getString(document, "title"), "Untitled"),
				stringOr(getString(document, "url"), "No URL")))
		}
	}
	return lines
}
