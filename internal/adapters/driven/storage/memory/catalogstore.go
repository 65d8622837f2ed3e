package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
)

// DefaultPageSize is the number of records returned per List call.
const DefaultPageSize = 100

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
// Records are listed in insertion order; the cursor is an offset.
type CatalogStore struct {
	mu       sync.RWMutex
	ids      []string
	records  map[string]domain.Properties
	pageSize int
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		records:  make(map[string]domain.Properties),
		pageSize: DefaultPageSize,
	}
}

// SetPageSize changes the listing page size.
func (s *CatalogStore) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.pageSize = n
	}
}

// List returns one page of records starting at the cursor offset.
func (s *CatalogStore) List(_ context.Context, cursor string) (domain.CatalogPage, error) {
	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return domain.CatalogPage{}, fmt.Errorf("%w: cursor %q", domain.ErrInvalidInput, cursor)
		}
		offset = n
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if offset > len(s.ids) {
		offset = len(s.ids)
	}
	end := min(offset+s.pageSize, len(s.ids))

	page := domain.CatalogPage{Records: make([]domain.CatalogRecord, 0, end-offset)}
	for _, id := range s.ids[offset:end] {
		page.Records = append(page.Records, domain.CatalogRecord{
			ID:         id,
			Properties: s.records[id].Clone(),
		})
	}
	if end < len(s.ids) {
		page.HasMore = true
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

// Create stores a new record under a generated ID.
func (s *CatalogStore) Create(_ context.Context, props domain.Properties) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	s.records[id] = props.Clone()
	return id, nil
}

// Update overwrites the given properties of an existing record.
func (s *CatalogStore) Update(_ context.Context, id string, props domain.Properties) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.records[id]
	if !ok {
		return domain.ErrNotFound
	}
	for k, v := range props.Clone() {
		existing[k] = v
	}
	return nil
}

// Get returns a copy of one record's properties.
func (s *CatalogStore) Get(id string) (domain.Properties, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	props, ok := s.records[id]
	if !ok {
		return nil, false
	}
	return props.Clone(), true
}

// Len returns the number of stored records.
func (s *CatalogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
