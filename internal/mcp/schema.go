package mcp

// Input schemas are declared as plain JSON-schema documents. They are the
// single source of truth: the same maps drive argument validation and are
// marshaled verbatim into the tools/list advertisement, so the two can never
// diverge.

func personSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "A person referenced in a search filter.",
		"properties": map[string]any{
			"name":         map[string]any{"type": "string", "description": "Display name."},
			"obfuscatedId": map[string]any{"type": "string", "description": "Opaque person identifier."},
			"email":        map[string]any{"type": "string"},
			"metadata":     map[string]any{"type": "object"},
		},
		"required": []any{"name", "obfuscatedId"},
	}
}

func facetFilterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"fieldName": map[string]any{"type": "string"},
			"values": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"value":        map[string]any{"type": "string"},
						"relationType": map[string]any{"type": "string"},
					},
				},
			},
		},
	}
}

func searchInputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The search terms.",
			},
			"cursor": map[string]any{
				"type":        "string",
				"description": "Pagination cursor from a previous response.",
			},
			"pageSize": map[string]any{
				"type":        "integer",
				"description": "Number of results to return.",
			},
			"maxSnippetSize": map[string]any{
				"type":        "integer",
				"description": "Maximum characters per result snippet.",
			},
			"disableSpellcheck": map[string]any{
				"type":        "boolean",
				"description": "Skip spellcheck-based query rewriting.",
			},
			"timeoutMillis": map[string]any{
				"type":        "integer",
				"description": "Request timeout in milliseconds.",
			},
			"people": map[string]any{
				"type":        "array",
				"description": "Restrict results to content involving these people.",
				"items":       personSchema(),
			},
			"resultTabIds": map[string]any{
				"type":        "array",
				"description": "Unique IDs of result tabs to fetch.",
				"items":       map[string]any{"type": "string"},
			},
			"trackingToken": map[string]any{
				"type":        "string",
				"description": "Opaque token echoed back across paginated requests.",
			},
			"timestamp": map[string]any{
				"type":        "string",
				"description": "ISO 8601 timestamp of the client request.",
			},
			"requestOptions": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"facetFilters": map[string]any{
						"type":  "array",
						"items": facetFilterSchema(),
					},
					"datasourceFilter": map[string]any{
						"type":        "string",
						"description": "Restrict results to a single datasource.",
					},
					"datasourcesFilter": map[string]any{
						"type":        "array",
						"description": "Restrict results to these datasources.",
						"items":       map[string]any{"type": "string"},
					},
					"fetchAllDatasourceCounts": map[string]any{"type": "boolean"},
					"responseHints": map[string]any{
						"type":        "array",
						"description": "Hints for which response content to include.",
						"items":       map[string]any{"type": "string"},
					},
				},
			},
		},
		"required": []any{"query"},
	}
}

func agentConfigSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Agent controls for which backend answers and how.",
		"properties": map[string]any{
			"agent": map[string]any{
				"type": "string",
				"enum": []any{"DEFAULT", "GPT"},
			},
			"mode": map[string]any{
				"type": "string",
				"enum": []any{"DEFAULT", "QUICK"},
			},
		},
	}
}

func chatFragmentSchema() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "One piece of a chat message; any combination of the optional fields may be populated.",
		"properties": map[string]any{
			"text":   map[string]any{"type": "string"},
			"action": map[string]any{"type": "object"},
			"file": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": "string"},
					"name": map[string]any{"type": "string"},
				},
			},
			"querySuggestion": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query":      map[string]any{"type": "string"},
					"datasource": map[string]any{"type": "string"},
				},
			},
			"structuredResults": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"document": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title": map[string]any{"type": "string"},
								"url":   map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	}
}

func citationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sourceDocument": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":              map[string]any{"type": "string"},
					"title":           map[string]any{"type": "string"},
					"url":             map[string]any{"type": "string"},
					"referenceRanges": map[string]any{"type": "array"},
				},
			},
		},
	}
}

func chatMessageSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"author": map[string]any{
				"type":    "string",
				"enum":    []any{"USER", "GLEAN_AI"},
				"default": "USER",
			},
			"fragments": map[string]any{
				"type":  "array",
				"items": chatFragmentSchema(),
			},
			"citations": map[string]any{
				"type":  "array",
				"items": citationSchema(),
			},
			"messageId": map[string]any{"type": "string"},
			"messageType": map[string]any{
				"type": "string",
				"enum": []any{
					"UPDATE", "CONTENT", "CONTEXT", "DEBUG",
					"DEBUG_EXTERNAL", "ERROR", "HEADING", "WARNING",
				},
			},
			"ts": map[string]any{"type": "string"},
			"uploadedFileIds": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"agentConfig": agentConfigSchema(),
		},
	}
}

func restrictionFilterSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"datasources": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
}

func chatInputSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"messages": map[string]any{
				"type":        "array",
				"description": "Conversation so far, ordered most recent first.",
				"items":       chatMessageSchema(),
			},
			"agentConfig": agentConfigSchema(),
			"chatId": map[string]any{
				"type":        "string",
				"description": "ID of an existing conversation to continue.",
			},
			"saveChat": map[string]any{
				"type":        "boolean",
				"description": "Persist the conversation in chat history.",
			},
			"stream": map[string]any{
				"type":        "boolean",
				"description": "Stream response fragments as they are generated.",
			},
			"timeoutMillis": map[string]any{
				"type":        "integer",
				"description": "Request timeout in milliseconds.",
			},
			"applicationId": map[string]any{
				"type":        "string",
				"description": "ID of the application the request originates from.",
			},
			"timezoneOffset": map[string]any{
				"type":        "integer",
				"description": "Client timezone offset from UTC in minutes.",
			},
			"inclusions": restrictionFilterSchema(),
			"exclusions": restrictionFilterSchema(),
		},
		"required": []any{"messages"},
	}
}
