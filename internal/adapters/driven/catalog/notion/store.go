package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
)

// MaxPageSize is the largest page the Notion query API returns.
const MaxPageSize = 100

// DefaultTimeout bounds each Notion API request.
const DefaultTimeout = 30 * time.Second

// Config configures the Notion catalog store.
type Config struct {
	Token      string
	DatabaseID string
	Timeout    time.Duration
}

// databaseQuerier is the subset of notionapi.DatabaseService used for listing.
type databaseQuerier interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// pageWriter is the subset of notionapi.PageService used for writes.
type pageWriter interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

// Store is a catalog store backed by a Notion database.
type Store struct {
	databases  databaseQuerier
	pages      pageWriter
	databaseID notionapi.DatabaseID
}

var _ driven.CatalogStore = (*Store)(nil)

// NewStore creates a store for the configured database.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: notion token is required", domain.ErrInvalidConfig)
	}
	if cfg.DatabaseID == "" {
		return nil, fmt.Errorf("%w: notion database id is required", domain.ErrInvalidConfig)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := notionapi.NewClient(
		notionapi.Token(cfg.Token),
		notionapi.WithHTTPClient(&http.Client{Timeout: timeout}),
		// One attempt per request: a 429 is returned, never slept on.
		notionapi.WithRetry(1),
	)
	return newStore(client.Database, client.Page, cfg.DatabaseID), nil
}

func newStore(databases databaseQuerier, pages pageWriter, databaseID string) *Store {
	return &Store{
		databases:  databases,
		pages:      pages,
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// List returns one page of database pages. The cursor is Notion's own.
func (s *Store) List(ctx context.Context, cursor string) (domain.CatalogPage, error) {
	resp, err := s.databases.Query(ctx, s.databaseID, &notionapi.DatabaseQueryRequest{
		StartCursor: notionapi.Cursor(cursor),
		PageSize:    MaxPageSize,
	})
	if err != nil {
		return domain.CatalogPage{}, wrapError("querying database", err)
	}

	page := domain.CatalogPage{
		Records:    make([]domain.CatalogRecord, 0, len(resp.Results)),
		HasMore:    resp.HasMore,
		NextCursor: string(resp.NextCursor),
	}
	for _, p := range resp.Results {
		page.Records = append(page.Records, domain.CatalogRecord{
			ID:         p.ID.String(),
			Properties: fromNotion(p.Properties),
		})
	}
	return page, nil
}

// Create adds a page to the database and returns its ID.
func (s *Store) Create(ctx context.Context, props domain.Properties) (string, error) {
	created, err := s.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.databaseID,
		},
		Properties: toNotion(props),
	})
	if err != nil {
		return "", wrapError("creating page", err)
	}
	return created.ID.String(), nil
}

// Update overwrites the given properties of an existing page.
func (s *Store) Update(ctx context.Context, id string, props domain.Properties) error {
	_, err := s.pages.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: toNotion(props),
	})
	if err != nil {
		return wrapError("updating page "+id, err)
	}
	return nil
}

// wrapError maps Notion API errors onto domain errors.
func wrapError(op string, err error) error {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, apiErr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w: %s", op, domain.ErrRateLimited, apiErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
