package domain

// Ecosystem is the fixed classification assigned to a discovered repository.
type Ecosystem string

// Known ecosystems.
const (
	EcosystemVibeCodingIDE      Ecosystem = "vibe_coding_ide"
	EcosystemAntigravity        Ecosystem = "antigravity"
	EcosystemAICodingAgents     Ecosystem = "ai_coding_agents"
	EcosystemNotebookLM         Ecosystem = "notebooklm"
	EcosystemAIInfrastructure   Ecosystem = "ai_infrastructure"
	EcosystemPDFTools           Ecosystem = "pdf_tools"
	EcosystemChineseTraditional Ecosystem = "chinese_traditional"
)

var ecosystemDisplayNames = map[Ecosystem]string{
	EcosystemVibeCodingIDE:      "Vibe Coding IDE",
	EcosystemAntigravity:        "Antigravity",
	EcosystemAICodingAgents:     "AI Coding Agents",
	EcosystemNotebookLM:         "NotebookLM",
	EcosystemAIInfrastructure:   "AI Infrastructure",
	EcosystemPDFTools:           "PDF Tools",
	EcosystemChineseTraditional: "Traditional Chinese",
}

// AllEcosystems returns every known ecosystem in canonical order.
func AllEcosystems() []Ecosystem {
	return []Ecosystem{
		EcosystemVibeCodingIDE,
		EcosystemAntigravity,
		EcosystemAICodingAgents,
		EcosystemNotebookLM,
		EcosystemAIInfrastructure,
		EcosystemPDFTools,
		EcosystemChineseTraditional,
	}
}

// IsValid returns true if the ecosystem is recognised.
func (e Ecosystem) IsValid() bool {
	_, ok := ecosystemDisplayNames[e]
	return ok
}

// String returns the string representation.
func (e Ecosystem) String() string {
	return string(e)
}

// DisplayName returns the human-readable label written to the catalog.
// Unknown ecosystems fall back to their raw key.
func (e Ecosystem) DisplayName() string {
	if name, ok := ecosystemDisplayNames[e]; ok {
		return name
	}
	return string(e)
}

// ResolveEcosystem decides which ecosystem a record keeps when the same
// identity is discovered more than once in a fetch pass.
//
// The first assignment wins: a later duplicate hit never reclassifies a
// record, it only contributes tags. An empty existing value is the only
// case where the incoming ecosystem is taken.
func ResolveEcosystem(existing, incoming Ecosystem) Ecosystem {
	if existing == "" {
		return incoming
	}
	return existing
}

// EcosystemSpec is one configured ecosystem: its key and the topics searched for it.
type EcosystemSpec struct {
	// Name is the ecosystem assigned to every repository found through Topics.
	Name Ecosystem

	// Topics are searched in order, one "topic:<t>" query each.
	Topics []string
}

// KeywordSpec configures the keyword cross-topic search pass.
// It discovers repositories by language signal in their README rather
// than by a single topic tag.
type KeywordSpec struct {
	// Ecosystem is assigned to repositories first found by this pass.
	Ecosystem Ecosystem

	// Keywords are free-text phrases searched inside READMEs.
	Keywords []string

	// Topics are AI-domain terms combined with each keyword.
	Topics []string

	// TopicsPerKeyword limits how many Topics are paired with each keyword.
	TopicsPerKeyword int

	// MaxCombinations caps the total number of (keyword, topic) queries.
	MaxCombinations int

	// TagPrefix labels the matched topic as "<prefix>-<topic>".
	TagPrefix string
}

// Pairs returns the (keyword, topic) combinations to search, in order,
// honouring TopicsPerKeyword and MaxCombinations. Non-positive limits mean
// "no limit".
func (k KeywordSpec) Pairs() [][2]string {
	topics := k.Topics
	if k.TopicsPerKeyword > 0 && len(topics) > k.TopicsPerKeyword {
		topics = topics[:k.TopicsPerKeyword]
	}

	pairs := make([][2]string, 0, len(k.Keywords)*len(topics))
	for _, keyword := range k.Keywords {
		for _, topic := range topics {
			if k.MaxCombinations > 0 && len(pairs) >= k.MaxCombinations {
				return pairs
			}
			pairs = append(pairs, [2]string{keyword, topic})
		}
	}
	return pairs
}
