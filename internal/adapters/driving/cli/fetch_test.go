package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
)

func fetchResult() domain.DiscoveryResult {
	repos := []domain.Repository{
		testRepo("o/a", 50, domain.EcosystemAICodingAgents),
		testRepo("o/b", 20, domain.EcosystemAICodingAgents),
		testRepo("o/c", 5, domain.EcosystemPDFTools),
	}
	return domain.DiscoveryResult{
		Repositories: repos,
		Ecosystems: []domain.AggregateResult{
			{Ecosystem: domain.EcosystemAICodingAgents, Repositories: repos[:2], Queries: 7},
			{
				Ecosystem:    domain.EcosystemPDFTools,
				Repositories: repos[2:],
				Queries:      5,
				Failures:     []domain.TopicFailure{{Ecosystem: domain.EcosystemPDFTools, Topic: "ocr", Err: errors.New("x")}},
			},
		},
	}
}

func TestFetchCmd_Use(t *testing.T) {
	assert.Equal(t, "fetch", fetchCmd.Use)
	assert.NotNil(t, fetchCmd.Flags().Lookup("json"))
	assert.NotNil(t, fetchCmd.Flags().Lookup("limit"))
}

func TestFetchCmd_Table(t *testing.T) {
	buf := setupCLITest(t)
	discoveryService = &mockDiscoveryService{result: fetchResult()}

	err := execute("fetch")

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "AI Coding Agents")
	assert.Contains(t, out, "2 repositories from 7 queries")
	assert.Contains(t, out, "(1 failed)")
	assert.Contains(t, out, "3 of 3 repositories by forks")
	assert.Contains(t, out, "o/c")
}

func TestFetchCmd_Limit(t *testing.T) {
	buf := setupCLITest(t)
	discoveryService = &mockDiscoveryService{result: fetchResult()}

	err := execute("fetch", "--limit", "2")

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "2 of 3 repositories by forks")
	assert.Contains(t, out, "o/b")
	assert.NotContains(t, out, "o/c ")
}

func TestFetchCmd_JSON(t *testing.T) {
	buf := setupCLITest(t)
	discoveryService = &mockDiscoveryService{result: fetchResult()}

	err := execute("fetch", "--json", "--limit", "1")

	require.NoError(t, err)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "o/a", out[0]["full_name"])
	assert.Equal(t, float64(50), out[0]["forks"])
	assert.Equal(t, "ai_coding_agents", out[0]["ecosystem"])
	assert.Equal(t, "https://github.com/o/a", out[0]["url"])
}

func TestFetchCmd_Empty(t *testing.T) {
	buf := setupCLITest(t)
	discoveryService = &mockDiscoveryService{}

	err := execute("fetch")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No repositories found.")
}

func TestFetchCmd_Error(t *testing.T) {
	setupCLITest(t)
	discoveryService = &mockDiscoveryService{err: domain.ErrDiscoveryFailed}

	err := execute("fetch")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDiscoveryFailed)
	assert.Contains(t, err.Error(), "fetch failed")
}
