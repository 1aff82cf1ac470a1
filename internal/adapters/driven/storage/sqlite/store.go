package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/splgraph-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/splgraph-cli/internal/core/domain"
	"github.com/custodia-labs/splgraph-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.LabelStore = (*Store)(nil)

// Store is the SQLite-backed label catalog.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.splgraph/data/catalog.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".splgraph", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// labelKey is the catalog key for one document: the set id, falling back
// to the document id for labels without one.
func labelKey(doc *domain.SPLDocument) (string, error) {
	if doc.SPL.SetID.Root != nil && *doc.SPL.SetID.Root != "" {
		return *doc.SPL.SetID.Root, nil
	}
	if doc.SPL.DocumentID.Root != nil && *doc.SPL.DocumentID.Root != "" {
		return *doc.SPL.DocumentID.Root, nil
	}
	return "", fmt.Errorf("%w: label has neither set id nor document id", domain.ErrInvalidInput)
}

// SaveLabel stores or replaces a label and its graph.
func (s *Store) SaveLabel(ctx context.Context, doc *domain.SPLDocument, graph *domain.KnowledgeGraph) error {
	key, err := labelKey(doc)
	if err != nil {
		return err
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling document: %w", err)
	}
	graphJSON, err := json.Marshal(graph)
	if err != nil {
		return fmt.Errorf("marshalling graph: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx, `
		INSERT INTO labels (set_id, document_id, version, title, document_type,
			input_filename, parsed_at, product_count, section_count, document, graph, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(set_id) DO UPDATE SET
			document_id = excluded.document_id,
			version = excluded.version,
			title = excluded.title,
			document_type = excluded.document_type,
			input_filename = excluded.input_filename,
			parsed_at = excluded.parsed_at,
			product_count = excluded.product_count,
			section_count = excluded.section_count,
			document = excluded.document,
			graph = excluded.graph,
			updated_at = excluded.updated_at
	`, key, nullStrPtr(doc.SPL.DocumentID.Root), nullIntPtr(doc.SPL.VersionNumber),
		nullStrPtr(doc.SPL.Title), doc.SPL.DocumentType,
		doc.Source.InputFilename, doc.Source.ParsedAt,
		len(doc.Products), len(doc.Sections),
		string(docJSON), string(graphJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving label: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM merge_keys WHERE set_id = ?", key); err != nil {
		return fmt.Errorf("clearing merge keys: %w", err)
	}
	if err := insertMergeKeys(ctx, tx, key, "primary", doc.Derived.MergeKeys.Primary); err != nil {
		return err
	}
	if err := insertMergeKeys(ctx, tx, key, "secondary", doc.Derived.MergeKeys.Secondary); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertMergeKeys(ctx context.Context, tx *sql.Tx, setID, tier string, keys []string) error {
	for i, k := range keys {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO merge_keys (set_id, tier, position, key) VALUES (?, ?, ?, ?)
		`, setID, tier, i, k); err != nil {
			return fmt.Errorf("saving merge key: %w", err)
		}
	}
	return nil
}

// GetLabel retrieves a cataloged label by set id.
func (s *Store) GetLabel(ctx context.Context, setID string) (*domain.SPLDocument, error) {
	var docJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT document FROM labels WHERE set_id = ?", setID).Scan(&docJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying label: %w", err)
	}

	var doc domain.SPLDocument
	if err := json.Unmarshal([]byte(docJSON), &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling document: %w", err)
	}
	return &doc, nil
}

// GetGraph retrieves the graph fragment for a cataloged label.
func (s *Store) GetGraph(ctx context.Context, setID string) (*domain.KnowledgeGraph, error) {
	var graphJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT graph FROM labels WHERE set_id = ?", setID).Scan(&graphJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying graph: %w", err)
	}

	var graph domain.KnowledgeGraph
	if err := json.Unmarshal([]byte(graphJSON), &graph); err != nil {
		return nil, fmt.Errorf("unmarshaling graph: %w", err)
	}
	return &graph, nil
}

// ListLabels returns summary entries for every cataloged label.
func (s *Store) ListLabels(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT set_id, document_id, version, title, document_type,
			input_filename, parsed_at, product_count, section_count
		FROM labels ORDER BY set_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying labels: %w", err)
	}
	defer rows.Close()

	entries := []domain.CatalogEntry{}
	for rows.Next() {
		var entry domain.CatalogEntry
		var documentID, title sql.NullString
		var version sql.NullInt64
		if err := rows.Scan(&entry.SetID, &documentID, &version, &title,
			&entry.DocumentType, &entry.InputFilename, &entry.ParsedAt,
			&entry.ProductCount, &entry.SectionCount); err != nil {
			return nil, fmt.Errorf("scanning label: %w", err)
		}
		if documentID.Valid {
			entry.DocumentID = documentID.String
		}
		if version.Valid {
			v := int(version.Int64)
			entry.Version = &v
		}
		if title.Valid {
			entry.Title = &title.String
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labels: %w", err)
	}
	return entries, nil
}

// SaveRun records a completed batch run.
func (s *Store) SaveRun(ctx context.Context, run *domain.BatchRun) error {
	if run == nil {
		return domain.ErrInvalidInput
	}

	failuresJSON, err := json.Marshal(run.Failures)
	if err != nil {
		return fmt.Errorf("marshalling failures: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO batch_runs (run_id, input_dir, started_at, ended_at, total, processed, failed, failures)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.RunID, run.InputDir,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.EndedAt.UTC().Format(time.RFC3339),
		run.Total, run.Processed, run.Failed, string(failuresJSON))
	if err != nil {
		return fmt.Errorf("saving batch run: %w", err)
	}
	return nil
}

func nullStrPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullIntPtr(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
