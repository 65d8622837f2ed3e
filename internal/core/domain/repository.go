package domain

import (
	"sort"
	"time"
)

// Repository is one discovered repository, normalised from a search hit.
// It is constructed per fetch pass and mutated only while merging duplicates.
type Repository struct {
	// FullName is the canonical "owner/name" identity.
	// It is case-sensitive and the sole dedup and sync key.
	FullName string

	// Name is the display name.
	Name string

	// Description is free text; empty when the upstream has none.
	Description string

	// HTMLURL is the canonical web URL.
	HTMLURL string

	// Homepage is the project website. Empty means absent.
	Homepage string

	// License is the licence name. Empty means absent.
	License string

	// Language is the primary language. Empty means absent.
	Language string

	// Forks is the primary ranking metric.
	Forks int

	// Stars is the secondary popularity metric.
	Stars int

	// OpenIssues is the open issue count.
	OpenIssues int

	// Ecosystem is assigned once per fetch pass, see ResolveEcosystem.
	Ecosystem Ecosystem

	// Topics are the raw topic tags, deduplicated, in first-seen order.
	Topics []string

	// ToolCategories are derived from Topics, deduplicated and sorted.
	ToolCategories []string

	// MatchedTopic is the query label that first produced this repository.
	MatchedTopic string

	// CreatedAt is the upstream creation time, in UTC.
	CreatedAt time.Time

	// UpdatedAt is the upstream last-update time, in UTC.
	UpdatedAt time.Time

	// FetchedAt is when this pass discovered the repository, in UTC.
	FetchedAt time.Time
}

// Absorb merges a duplicate hit for the same identity into r.
// Only the topic and category sets grow; every other field, including the
// ecosystem, keeps the value of the first hit.
func (r *Repository) Absorb(other Repository) {
	r.Ecosystem = ResolveEcosystem(r.Ecosystem, other.Ecosystem)
	r.Topics = unionOrdered(r.Topics, other.Topics)
	r.ToolCategories = unionSorted(r.ToolCategories, other.ToolCategories)
}

// Clone returns a deep copy so callers can merge without aliasing slices.
func (r Repository) Clone() Repository {
	r.Topics = append([]string(nil), r.Topics...)
	r.ToolCategories = append([]string(nil), r.ToolCategories...)
	return r
}

// NormalizeTime converts t to UTC so naive and offset timestamps compare
// without ambiguity. A zero time stays zero.
func NormalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// IsNewer reports whether a source timestamp should overwrite a stored one.
// Both are normalised to UTC first. A missing stored timestamp counts as
// older, so the record is rewritten.
func IsNewer(source time.Time, stored *time.Time) bool {
	if stored == nil || stored.IsZero() {
		return true
	}
	return NormalizeTime(source).After(NormalizeTime(*stored))
}

// unionOrdered appends values from b not present in a, keeping a's order.
func unionOrdered(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// unionSorted returns the sorted set union of a and b.
func unionSorted(a, b []string) []string {
	out := unionOrdered(a, b)
	sort.Strings(out)
	return out
}

// DedupTopics removes duplicate topics, keeping first-seen order.
func DedupTopics(topics []string) []string {
	return unionOrdered(nil, topics)
}
