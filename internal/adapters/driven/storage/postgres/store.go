package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
)

// DefaultPageSize is the number of records returned per List call.
const DefaultPageSize = 100

const table = "catalog_records"

const schema = `
CREATE TABLE IF NOT EXISTS catalog_records (
    seq         BIGSERIAL PRIMARY KEY,
    id          TEXT NOT NULL UNIQUE,
    full_name   TEXT NOT NULL DEFAULT '',
    properties  JSONB NOT NULL,
    updated_at  TIMESTAMPTZ,
    forks       INTEGER NOT NULL DEFAULT 0,
    stars       INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    modified_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_catalog_records_full_name ON catalog_records (full_name);
`

// Querier is the subset of pgx used by the store.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Store is a catalog store backed by PostgreSQL.
type Store struct {
	q        Querier
	pool     *pgxpool.Pool
	builder  squirrel.StatementBuilderType
	pageSize int
}

var _ driven.CatalogStore = (*Store)(nil)

// NewStore connects to dsn and ensures the schema exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: postgres dsn is required", domain.ErrInvalidConfig)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	s := NewStoreWithQuerier(pool)
	s.pool = pool

	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewStoreWithQuerier creates a store on an existing connection.
// The caller owns the querier's lifecycle.
func NewStoreWithQuerier(q Querier) *Store {
	return &Store{
		q:        q,
		builder:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		pageSize: DefaultPageSize,
	}
}

// SetPageSize changes the listing page size.
func (s *Store) SetPageSize(n int) {
	if n > 0 {
		s.pageSize = n
	}
}

// Close releases the connection pool opened by NewStore.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the catalog table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// List returns one page of records ordered by insertion.
// The cursor is the sequence number of the last record of the previous page.
func (s *Store) List(ctx context.Context, cursor string) (domain.CatalogPage, error) {
	var after int64
	if cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return domain.CatalogPage{}, fmt.Errorf("%w: cursor %q", domain.ErrInvalidInput, cursor)
		}
		after = n
	}

	query, args, err := s.builder.
		Select("seq", "id", "properties").
		From(table).
		Where(squirrel.Gt{"seq": after}).
		OrderBy("seq").
		Limit(uint64(s.pageSize) + 1).
		ToSql()
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var page domain.CatalogPage
	var lastSeq int64
	for rows.Next() {
		if len(page.Records) == s.pageSize {
			page.HasMore = true
			break
		}

		var seq int64
		var id string
		var data []byte
		if err := rows.Scan(&seq, &id, &data); err != nil {
			return domain.CatalogPage{}, fmt.Errorf("scanning record: %w", err)
		}

		props := make(domain.Properties)
		if err := json.Unmarshal(data, &props); err != nil {
			return domain.CatalogPage{}, fmt.Errorf("record %s: unmarshalling properties: %w", id, err)
		}

		page.Records = append(page.Records, domain.CatalogRecord{ID: id, Properties: props})
		lastSeq = seq
	}
	if err := rows.Err(); err != nil {
		return domain.CatalogPage{}, fmt.Errorf("listing records: %w", err)
	}

	if page.HasMore {
		page.NextCursor = strconv.FormatInt(lastSeq, 10)
	}
	return page, nil
}

// Create inserts a record under a generated ID.
func (s *Store) Create(ctx context.Context, props domain.Properties) (string, error) {
	data, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("marshalling properties: %w", err)
	}

	id := uuid.NewString()
	query, args, err := s.builder.
		Insert(table).
		Columns("id", "full_name", "properties", "updated_at", "forks", "stars").
		Values(
			id,
			props.Text(domain.PropFullName),
			string(data),
			props.Date(domain.PropUpdatedAt),
			props.Number(domain.PropForks),
			props.Number(domain.PropStars),
		).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building insert: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return "", fmt.Errorf("inserting record: %w", err)
	}
	return id, nil
}

// Update merges props into an existing record. The JSONB merge is shallow,
// so each given property replaces the stored one.
func (s *Store) Update(ctx context.Context, id string, props domain.Properties) error {
	data, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshalling properties: %w", err)
	}

	update := s.builder.
		Update(table).
		Set("properties", squirrel.Expr("properties || ?::jsonb", string(data))).
		Set("modified_at", squirrel.Expr("now()"))

	if _, ok := props[domain.PropFullName]; ok {
		update = update.Set("full_name", props.Text(domain.PropFullName))
	}
	if _, ok := props[domain.PropUpdatedAt]; ok {
		update = update.Set("updated_at", props.Date(domain.PropUpdatedAt))
	}
	if _, ok := props[domain.PropForks]; ok {
		update = update.Set("forks", props.Number(domain.PropForks))
	}
	if _, ok := props[domain.PropStars]; ok {
		update = update.Set("stars", props.Number(domain.PropStars))
	}

	query, args, err := update.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}

	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
