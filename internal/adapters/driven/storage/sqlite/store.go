package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ecotrack/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ecotrack/internal/core/domain"
	"github.com/custodia-labs/ecotrack/internal/core/ports/driven"
)

// DefaultPageSize is the number of records returned per List call.
const DefaultPageSize = 100

// Store is a SQLite database holding the repository catalog.
type Store struct {
	db       *sql.DB
	path     string
	pageSize int
}

// NewStore opens (creating if needed) the catalog database at path.
// If path is empty, defaults to ~/.ecotrack/catalog.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".ecotrack", "catalog.db")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:       db,
		path:     path,
		pageSize: DefaultPageSize,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SetPageSize changes the listing page size.
func (s *Store) SetPageSize(n int) {
	if n > 0 {
		s.pageSize = n
	}
}

// CatalogStore returns a CatalogStore interface backed by this store.
func (s *Store) CatalogStore() driven.CatalogStore {
	return &catalogStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_catalog.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Catalog Store ====================

// catalogStore implements driven.CatalogStore.
// Properties are stored as JSON; identity, update time and metrics are
// copied into indexed columns for ad-hoc queries.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// List returns one page of records ordered by insertion.
// The cursor is the sequence number of the last record of the previous page.
func (c *catalogStore) List(ctx context.Context, cursor string) (domain.CatalogPage, error) {
	var after int64
	if cursor != "" {
		n, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return domain.CatalogPage{}, fmt.Errorf("%w: cursor %q", domain.ErrInvalidInput, cursor)
		}
		after = n
	}

	pageSize := c.store.pageSize
	rows, err := c.store.db.QueryContext(ctx, `
		SELECT seq, id, properties FROM catalog_records
		WHERE seq > ?
		ORDER BY seq
		LIMIT ?
	`, after, pageSize+1)
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var page domain.CatalogPage
	var lastSeq int64
	for rows.Next() {
		if len(page.Records) == pageSize {
			page.HasMore = true
			break
		}

		var seq int64
		var id, propsJSON string
		if err := rows.Scan(&seq, &id, &propsJSON); err != nil {
			return domain.CatalogPage{}, fmt.Errorf("scanning record: %w", err)
		}

		props, err := decodeProperties(propsJSON)
		if err != nil {
			return domain.CatalogPage{}, fmt.Errorf("record %s: %w", id, err)
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
func (c *catalogStore) Create(ctx context.Context, props domain.Properties) (string, error) {
	propsJSON, err := json.Marshal(props)
	if err != nil {
		return "", fmt.Errorf("marshalling properties: %w", err)
	}

	id := uuid.NewString()
	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO catalog_records (id, full_name, properties, updated_at, forks, stars)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		id,
		props.Text(domain.PropFullName),
		string(propsJSON),
		nullTime(props.Date(domain.PropUpdatedAt)),
		props.Number(domain.PropForks),
		props.Number(domain.PropStars),
	)
	if err != nil {
		return "", fmt.Errorf("inserting record: %w", err)
	}
	return id, nil
}

// Update merges props into an existing record.
func (c *catalogStore) Update(ctx context.Context, id string, props domain.Properties) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var propsJSON string
	err = tx.QueryRowContext(ctx, "SELECT properties FROM catalog_records WHERE id = ?", id).Scan(&propsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading record: %w", err)
	}

	merged, err := decodeProperties(propsJSON)
	if err != nil {
		return fmt.Errorf("record %s: %w", id, err)
	}
	for k, v := range props {
		merged[k] = v
	}

	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("marshalling properties: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE catalog_records
		SET full_name = ?, properties = ?, updated_at = ?, forks = ?, stars = ?, modified_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		merged.Text(domain.PropFullName),
		string(mergedJSON),
		nullTime(merged.Date(domain.PropUpdatedAt)),
		merged.Number(domain.PropForks),
		merged.Number(domain.PropStars),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}

	return tx.Commit()
}

func decodeProperties(data string) (domain.Properties, error) {
	props := make(domain.Properties)
	if err := json.Unmarshal([]byte(data), &props); err != nil {
		return nil, fmt.Errorf("unmarshalling properties: %w", err)
	}
	return props, nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}
