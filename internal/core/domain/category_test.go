package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryTable_Derive(t *testing.T) {
	table := DefaultCategoryTable()

	tests := []struct {
		name     string
		topics   []string
		expected []string
	}{
		{
			name:     "many tags map to one category",
			topics:   []string{"cursor", "cursor-ai", "cursor-rules"},
			expected: []string{"Cursor"},
		},
		{
			name:     "sorted and deduplicated",
			topics:   []string{"rag", "ollama", "mcp", "ragflow"},
			expected: []string{"MCP", "Ollama", "RAG"},
		},
		{
			name:     "case-insensitive lookup",
			topics:   []string{"LangChain", "CLAUDE-CODE"},
			expected: []string{"Claude", "LangChain"},
		},
		{
			name:     "unknown topics ignored",
			topics:   []string{"python", "machine-learning"},
			expected: []string{},
		},
		{
			name:     "no topics",
			topics:   nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, table.Derive(tt.topics))
		})
	}
}

func TestCategoryTable_Categories(t *testing.T) {
	table := CategoryTable{"a": "X", "b": "X", "c": "A"}

	assert.Equal(t, []string{"A", "X"}, table.Categories())
}

func TestCategoryTable_Normalized(t *testing.T) {
	table := CategoryTable{"Claude-Code": "Claude", " Cursor ": "Cursor"}

	assert.Empty(t, table.Derive([]string{"claude-code"}))
	assert.Equal(t, []string{"Claude", "Cursor"}, table.Normalized().Derive([]string{"claude-code", "cursor"}))
}
