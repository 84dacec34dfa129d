package generator

import (
	"reflect"
	"testing"
)

func TestExtractAndParseJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{
			name:     "fenced JSON with trailing comma",
			input:    "Sure! ```json\n{\"title\": \"X\",}\n```",
			expected: map[string]any{"title": "X"},
		},
		{
			name:     "clean JSON object",
			input:    `{"title": "Graphs", "count": 3}`,
			expected: map[string]any{"title": "Graphs", "count": float64(3)},
		},
		{
			name:     "empty input",
			input:    "",
			expected: map[string]any{},
		},
		{
			name:     "plain prose",
			input:    "I could not generate the material you asked for.",
			expected: map[string]any{},
		},
		{
			name:     "single quotes and bare keys",
			input:    `{name: 'Alice', role: 'admin'}`,
			expected: map[string]any{"name": "Alice", "role": "admin"},
		},
		{
			name:     "truncated object",
			input:    `{"title": "X", "items": ["a", "b"`,
			expected: map[string]any{"title": "X", "items": []any{"a", "b"}},
		},
		{
			name:     "object buried in prose",
			input:    `Here is the result you wanted: [{"q": "1"}] hope it helps`,
			expected: []any{map[string]any{"q": "1"}},
		},
		{
			name:     "fence with language tag and surrounding prose",
			input:    "Of course.\n```json\n{\"done\": true}\n```\nLet me know if you need more.",
			expected: map[string]any{"done": true},
		},
		{
			name:     "two broken fences combined into array",
			input:    "```json\n{\"a\": 1,}\n```\nand\n```json\n{\"b\": 2,}\n```",
			expected: []any{map[string]any{"a": float64(1)}, map[string]any{"b": float64(2)}},
		},
		{
			name:     "first parseable fence wins",
			input:    "```json\n{\"first\": true}\n```\n```json\n{\"second\": true}\n```",
			expected: map[string]any{"first": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractAndParseJSON(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ExtractAndParseJSON(%q) = %#v, expected %#v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExtractAndParseJSONNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"```",
		"``````",
		"{{{{{",
		"]]]]]",
		`{"a": "unterminated`,
		"\x00\x01\x02",
		`{'single': 'quotes', broken: }`,
	}

	for _, input := range inputs {
		result := ExtractAndParseJSON(input)
		if result == nil {
			t.Errorf("ExtractAndParseJSON(%q) returned nil, expected a value", input)
		}
	}
}

func TestExtractAndParseJSONControlCharacters(t *testing.T) {
	input := "{\"notes\": \"line one\nline two\"}"

	result := ExtractAndParseJSON(input)
	parsed, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %#v", result)
	}
	if parsed["notes"] != "line one\nline two" {
		t.Errorf("notes = %q, expected embedded newline preserved", parsed["notes"])
	}
}
