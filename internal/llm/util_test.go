package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"skills\": 0.8}\n```",
			expected: `{"skills": 0.8}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"skills\": 0.8}\n```",
			expected: `{"skills": 0.8}`,
		},
		{
			name:     "code block with language identifier",
			input:    "```javascript\n{\"skills\": 0.8}\n```",
			expected: `{"skills": 0.8}`,
		},
		{
			name:     "plain JSON untouched",
			input:    `{"skills": 0.8}`,
			expected: `{"skills": 0.8}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n{\"skills\": 0.8}\n  ",
			expected: `{"skills": 0.8}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "object with preamble and trailer",
			input:    "Here are the scores:\n{\"skills\": 0.8}\nLet me know!",
			expected: `{"skills": 0.8}`,
		},
		{
			name:     "fenced object with preamble",
			input:    "```json\n{\"skills\": 0.8}\n```",
			expected: `{"skills": 0.8}`,
		},
		{
			name:     "no braces returned unchanged",
			input:    "sorry, I cannot help with that",
			expected: "sorry, I cannot help with that",
		},
		{
			name:     "nested object kept whole",
			input:    `prefix {"a": {"b": 1}} suffix`,
			expected: `{"a": {"b": 1}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONObject(tt.input))
		})
	}
}
