package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"bigo/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_records (
	doc TEXT NOT NULL,
	name TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	time_complexity TEXT NOT NULL,
	space_complexity TEXT NOT NULL,
	captured_at TEXT NOT NULL,
	PRIMARY KEY (doc, name, start_line)
);

CREATE INDEX IF NOT EXISTS idx_analysis_records_doc ON analysis_records(doc);
`

// SQLiteStore persists records at .bigo/bigo.db.
type SQLiteStore struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Stats summarizes store contents.
type Stats struct {
	Records   int    `json:"records"`
	Documents int    `json:"documents"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"sizeBytes"`
}

// Open opens or creates the SQLite store under repoRoot/.bigo.
func Open(repoRoot string, logger *logging.Logger) (*SQLiteStore, error) {
	bigoDir := filepath.Join(repoRoot, ".bigo")
	if err := os.MkdirAll(bigoDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .bigo directory: %w", err)
	}

	dbPath := filepath.Join(bigoDir, "bigo.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",    // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous=NORMAL",  // Balance between safety and performance
		"PRAGMA foreign_keys=ON",     // Enable foreign key constraints
		"PRAGMA busy_timeout=5000",   // Wait up to 5 seconds on lock
		"PRAGMA cache_size=-64000",   // 64MB cache
		"PRAGMA temp_store=MEMORY",   // Use memory for temp tables
		"PRAGMA mmap_size=268435456", // 256MB mmap
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if !dbExists {
		logger.Info("Creating new database", map[string]interface{}{
			"path": dbPath,
		})
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// WithTx executes a function within a transaction. The transaction is
// rolled back when fn returns an error and committed otherwise.
func (s *SQLiteStore) WithTx(fn func(*sql.Tx) error) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("failed to rollback transaction", map[string]interface{}{
				"error":          err.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Put stores a record, replacing any record with the same key.
func (s *SQLiteStore) Put(rec Record) error {
	_, err := s.conn.Exec(`
		INSERT OR REPLACE INTO analysis_records (doc, name, start_line, time_complexity, space_complexity, captured_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.Doc, rec.Name, rec.StartLine, string(rec.Time), string(rec.Space), rec.CapturedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store record: %w", err)
	}
	return nil
}

// PutBatch stores records atomically. Used by directory scans, where a
// partial write would leave the store misleading.
func (s *SQLiteStore) PutBatch(recs []Record) error {
	return s.WithTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO analysis_records (doc, name, start_line, time_complexity, space_complexity, captured_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range recs {
			_, err := stmt.Exec(rec.Doc, rec.Name, rec.StartLine, string(rec.Time), string(rec.Space), rec.CapturedAt.UTC().Format(time.RFC3339))
			if err != nil {
				return fmt.Errorf("failed to store record for %s:%s: %w", rec.Doc, rec.Name, err)
			}
		}
		return nil
	})
}

// Get returns the record for a key.
func (s *SQLiteStore) Get(key Key) (Record, bool, error) {
	var rec Record
	var capturedAt string

	err := s.conn.QueryRow(`
		SELECT doc, name, start_line, time_complexity, space_complexity, captured_at
		FROM analysis_records
		WHERE doc = ? AND name = ? AND start_line = ?
	`, key.Doc, key.Name, key.StartLine).Scan(&rec.Doc, &rec.Name, &rec.StartLine, &rec.Time, &rec.Space, &capturedAt)

	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("record lookup failed: %w", err)
	}

	rec.CapturedAt, err = time.Parse(time.RFC3339, capturedAt)
	if err != nil {
		return Record{}, false, fmt.Errorf("invalid captured_at format: %w", err)
	}
	return rec, true, nil
}

// List returns all records ordered by document, start line, then name.
func (s *SQLiteStore) List() ([]Record, error) {
	rows, err := s.conn.Query(`
		SELECT doc, name, start_line, time_complexity, space_complexity, captured_at
		FROM analysis_records
		ORDER BY doc, start_line, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var capturedAt string
		if err := rows.Scan(&rec.Doc, &rec.Name, &rec.StartLine, &rec.Time, &rec.Space, &capturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.CapturedAt, err = time.Parse(time.RFC3339, capturedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid captured_at format: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Len returns the number of stored records.
func (s *SQLiteStore) Len() (int, error) {
	var n int
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM analysis_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

// Stats reports record and document counts plus the database size.
func (s *SQLiteStore) Stats() (Stats, error) {
	stats := Stats{Path: s.dbPath}

	err := s.conn.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT doc) FROM analysis_records
	`).Scan(&stats.Records, &stats.Documents)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read stats: %w", err)
	}

	if info, err := os.Stat(s.dbPath); err == nil {
		stats.SizeBytes = info.Size()
	}
	return stats, nil
}

// Purge deletes all records. CLI maintenance only.
func (s *SQLiteStore) Purge() error {
	if _, err := s.conn.Exec(`DELETE FROM analysis_records`); err != nil {
		return fmt.Errorf("failed to purge records: %w", err)
	}
	s.logger.Info("Purged analysis records", map[string]interface{}{
		"path": s.dbPath,
	})
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
