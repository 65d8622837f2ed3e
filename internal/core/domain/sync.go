package domain

import "time"

// SyncAction is the reconciliation decision for one repository.
type SyncAction string

// Sync actions.
const (
	ActionCreate SyncAction = "create"
	ActionUpdate SyncAction = "update"
	ActionSkip   SyncAction = "skip"
)

// SyncDecision pairs an action with the index entry it was decided against.
type SyncDecision struct {
	Action SyncAction

	// Existing is the persisted entry; nil for ActionCreate.
	Existing *IndexEntry
}

// Decide compares a freshly discovered repository with the index.
//
//   - identity absent: create
//   - stored timestamp missing, or source strictly newer: update
//   - otherwise: skip
func Decide(index Index, repo Repository) SyncDecision {
	entry, ok := index[repo.FullName]
	if !ok {
		return SyncDecision{Action: ActionCreate}
	}
	if IsNewer(repo.UpdatedAt, entry.UpdatedAt) {
		return SyncDecision{Action: ActionUpdate, Existing: &entry}
	}
	return SyncDecision{Action: ActionSkip, Existing: &entry}
}

// SyncStats counts the outcomes of a sync run.
type SyncStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Total returns the number of repositories processed.
func (s SyncStats) Total() int {
	return s.Created + s.Updated + s.Skipped + s.Failed
}

// Record increments the counter for an applied action.
func (s *SyncStats) Record(action SyncAction) {
	switch action {
	case ActionCreate:
		s.Created++
	case ActionUpdate:
		s.Updated++
	case ActionSkip:
		s.Skipped++
	}
}

// RunReport summarises one end-to-end tracker run.
type RunReport struct {
	Ecosystems int
	Topics     int
	Quota      *Quota
	Fetched    int
	Top        []Repository
	Sync       SyncStats
	Failures   []TopicFailure
	DryRun     bool
	Elapsed    time.Duration
}
