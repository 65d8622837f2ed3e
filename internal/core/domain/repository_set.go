package domain

import "sort"

// RepositorySet is an insertion-ordered map of repositories keyed by identity.
// It is not safe for concurrent use; a fetch pass owns its sets exclusively.
type RepositorySet struct {
	index map[string]int
	items []Repository
}

// NewRepositorySet creates an empty set.
func NewRepositorySet() *RepositorySet {
	return &RepositorySet{index: make(map[string]int)}
}

// Add inserts repo if its identity is new, otherwise merges it into the
// existing entry via Repository.Absorb. Returns true on insert.
func (s *RepositorySet) Add(repo Repository) bool {
	if i, ok := s.index[repo.FullName]; ok {
		s.items[i].Absorb(repo)
		return false
	}
	s.index[repo.FullName] = len(s.items)
	s.items = append(s.items, repo.Clone())
	return true
}

// AddAll adds every repository in order.
func (s *RepositorySet) AddAll(repos []Repository) {
	for i := range repos {
		s.Add(repos[i])
	}
}

// Get returns the entry for an identity.
func (s *RepositorySet) Get(fullName string) (Repository, bool) {
	i, ok := s.index[fullName]
	if !ok {
		return Repository{}, false
	}
	return s.items[i], true
}

// Len returns the number of distinct identities.
func (s *RepositorySet) Len() int {
	return len(s.items)
}

// Ranked returns the entries sorted by Forks descending. Ties keep
// first-seen order. A positive limit truncates the result.
func (s *RepositorySet) Ranked(limit int) []Repository {
	out := make([]Repository, len(s.items))
	for i := range s.items {
		out[i] = s.items[i].Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Forks > out[j].Forks
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
