package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEcosystem_IsValid(t *testing.T) {
	for _, eco := range AllEcosystems() {
		assert.True(t, eco.IsValid(), eco)
		assert.NotEqual(t, string(eco), eco.DisplayName(), "display name for %s", eco)
	}

	assert.False(t, Ecosystem("").IsValid())
	assert.False(t, Ecosystem("web3").IsValid())
	assert.Equal(t, "web3", Ecosystem("web3").DisplayName())
}

func TestResolveEcosystem(t *testing.T) {
	tests := []struct {
		name     string
		existing Ecosystem
		incoming Ecosystem
		expected Ecosystem
	}{
		{"first assignment wins", EcosystemVibeCodingIDE, EcosystemAIInfrastructure, EcosystemVibeCodingIDE},
		{"empty existing takes incoming", "", EcosystemPDFTools, EcosystemPDFTools},
		{"same value", EcosystemNotebookLM, EcosystemNotebookLM, EcosystemNotebookLM},
		{"empty incoming keeps existing", EcosystemAntigravity, "", EcosystemAntigravity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveEcosystem(tt.existing, tt.incoming))
		})
	}
}

func TestKeywordSpec_Pairs(t *testing.T) {
	t.Run("limits topics per keyword", func(t *testing.T) {
		spec := KeywordSpec{
			Keywords:         []string{"a", "b"},
			Topics:           []string{"llm", "ai", "gpt", "ollama"},
			TopicsPerKeyword: 2,
		}

		assert.Equal(t, [][2]string{
			{"a", "llm"}, {"a", "ai"},
			{"b", "llm"}, {"b", "ai"},
		}, spec.Pairs())
	})

	t.Run("caps total combinations", func(t *testing.T) {
		spec := KeywordSpec{
			Keywords:         []string{"a", "b", "c"},
			Topics:           []string{"llm", "ai"},
			TopicsPerKeyword: 2,
			MaxCombinations:  3,
		}

		assert.Equal(t, [][2]string{{"a", "llm"}, {"a", "ai"}, {"b", "llm"}}, spec.Pairs())
	})

	t.Run("non-positive limits mean unbounded", func(t *testing.T) {
		spec := KeywordSpec{
			Keywords: []string{"a"},
			Topics:   []string{"llm", "ai", "gpt"},
		}

		assert.Len(t, spec.Pairs(), 3)
	})

	t.Run("defaults produce twelve queries", func(t *testing.T) {
		spec := DefaultSettings().KeywordSpec()

		pairs := spec.Pairs()
		assert.Len(t, pairs, 12)
		assert.Equal(t, [2]string{"繁體中文", "llm"}, pairs[0])
		assert.Equal(t, [2]string{"Chinese README", "chatgpt"}, pairs[11])
	})

	t.Run("no keywords", func(t *testing.T) {
		assert.Empty(t, KeywordSpec{Topics: []string{"llm"}}.Pairs())
	})
}
