package domain

import (
	"sort"
	"strings"
)

// CategoryTable maps a raw topic tag to a tool category.
// The mapping is many-to-one: several tags can name the same category.
type CategoryTable map[string]string

// Derive returns the tool categories implied by topics, deduplicated and sorted.
// Lookups are case-insensitive on the topic side.
func (t CategoryTable) Derive(topics []string) []string {
	seen := make(map[string]struct{})
	for _, topic := range topics {
		if category, ok := t[strings.ToLower(topic)]; ok {
			seen[category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Normalized returns a copy of the table keyed by lowercase topic, matching
// how topics are looked up. Mixed-case keys from configuration otherwise
// never match.
func (t CategoryTable) Normalized() CategoryTable {
	out := make(CategoryTable, len(t))
	for topic, category := range t {
		out[strings.ToLower(strings.TrimSpace(topic))] = category
	}
	return out
}

// Categories returns every distinct category the table can produce, sorted.
func (t CategoryTable) Categories() []string {
	seen := make(map[string]struct{}, len(t))
	for _, category := range t {
		seen[category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// DefaultCategoryTable returns the built-in topic to tool category mapping.
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		// Cursor
		"cursor":       "Cursor",
		"cursor-ai":    "Cursor",
		"cursor-rules": "Cursor",
		// Antigravity
		"antigravity":     "Antigravity",
		"antigravity-ide": "Antigravity",
		"antigravity-ai":  "Antigravity",
		"gemini-cli":      "Antigravity",
		// Windsurf
		"windsurf":    "Windsurf",
		"windsurf-ai": "Windsurf",
		// Claude
		"claude-code": "Claude",
		"claude":      "Claude",
		"anthropic":   "Claude",
		// Other agents
		"cline":          "Cline",
		"aider":          "Aider",
		"copilot":        "Copilot",
		"github-copilot": "Copilot",
		// NotebookLM
		"notebooklm":      "NotebookLM",
		"open-notebooklm": "NotebookLM",
		"ai-podcast":      "Podcast",
		// Infrastructure
		"ollama":                 "Ollama",
		"local-llm":              "Ollama",
		"vllm":                   "vLLM",
		"rag":                    "RAG",
		"ragflow":                "RAG",
		"langchain":              "LangChain",
		"langflow":               "LangChain",
		"mcp":                    "MCP",
		"model-context-protocol": "MCP",
		// PDF
		"pdf-extract":         "PDF",
		"pdf-parser":          "PDF",
		"pdf-to-pptx":         "PDF",
		"pdf-text-extraction": "PDF",
		"ocr":                 "PDF",
		"document-ai":         "PDF",
		"pdf-to-markdown":     "PDF",
	}
}
