package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Saechaoc/docgen/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Saechaoc/docgen/internal/core/domain"
	"github.com/Saechaoc/docgen/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.SignalCache = (*Cache)(nil)

// Cache is a SQLite-backed implementation of driven.SignalCache. One row
// per analyzer key; signals are stored as a JSON payload next to the
// signature and fingerprint digests that scope their validity.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens the signal cache at the given database file path,
// creating parent directories and running migrations as needed.
func NewCache(path string) (*Cache, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: cache path is empty", domain.ErrInvalidInput)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	c := &Cache{
		db:   db,
		path: path,
	}

	// Run migrations
	if err := c.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// storedSignal is the JSON layout of one cached signal.
type storedSignal struct {
	Name     string         `json:"name"`
	Value    string         `json:"value"`
	Source   string         `json:"source"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Get returns the cached signals for key when both signature and
// fingerprint match the stored entry. A malformed payload is treated as a
// miss rather than an error.
func (c *Cache) Get(ctx context.Context, key, signature, fingerprint string) ([]domain.Signal, bool, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT signature, fingerprint, signals FROM signal_cache WHERE key = ?
	`, key)

	var storedSig, storedFp, payload string
	if err := row.Scan(&storedSig, &storedFp, &payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	if storedSig != signature || storedFp != fingerprint {
		return nil, false, nil
	}

	var stored []storedSignal
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return nil, false, nil
	}

	signals := make([]domain.Signal, 0, len(stored))
	for _, s := range stored {
		if s.Name == "" || s.Source == "" {
			continue
		}
		signals = append(signals, domain.Signal{
			Name:     s.Name,
			Value:    s.Value,
			Source:   s.Source,
			Metadata: domain.MetaMapFromAny(s.Metadata),
		})
	}
	return signals, true, nil
}

// Put stores the signals for key, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, key, signature, fingerprint string, signals []domain.Signal) error {
	stored := make([]storedSignal, 0, len(signals))
	for _, s := range signals {
		stored = append(stored, storedSignal{
			Name:     s.Name,
			Value:    s.Value,
			Source:   s.Source,
			Metadata: s.Metadata.ToAny(),
		})
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshalling signals: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO signal_cache (key, signature, fingerprint, signals, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			signature = excluded.signature,
			fingerprint = excluded.fingerprint,
			signals = excluded.signals,
			updated_at = excluded.updated_at
	`, key, signature, fingerprint, string(payload), time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving cache entry: %w", err)
	}
	return nil
}

// Prune removes entries whose key is not in keep. An empty keep list
// clears the cache.
func (c *Cache) Prune(ctx context.Context, keep []string) error {
	if len(keep) == 0 {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM signal_cache`); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		return nil
	}

	placeholders := strings.Repeat("?,", len(keep))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(keep))
	for i, key := range keep {
		args[i] = key
	}

	query := fmt.Sprintf(`DELETE FROM signal_cache WHERE key NOT IN (%s)`, placeholders)
	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("pruning cache: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (c *Cache) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := c.db.Exec(`
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
	row := c.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_signal_cache.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := c.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := c.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
