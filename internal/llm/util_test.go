package llm

import (
	"testing"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"title\": \"Roadmap\"}\n```",
			expected: `{"title": "Roadmap"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"title\": \"Roadmap\"}\n```",
			expected: `{"title": "Roadmap"}`,
		},
		{
			name:     "code block with language identifier",
			input:    "```javascript\n{\"title\": \"Roadmap\"}\n```",
			expected: `{"title": "Roadmap"}`,
		},
		{
			name:     "plain JSON untouched",
			input:    `{"title": "Roadmap"}`,
			expected: `{"title": "Roadmap"}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"title\": \"Roadmap\"}\n  ",
			expected: `{"title": "Roadmap"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CleanJSONBlock(tt.input)
			if result != tt.expected {
				t.Errorf("CleanJSONBlock() = %q, want %q", result, tt.expected)
			}
		})
	}
}
