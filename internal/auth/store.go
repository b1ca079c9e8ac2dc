package auth

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// KeyStore persists API keys in their own SQLite database, separate
// from the analysis record store so revoking access never touches
// analysis data.
type KeyStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenKeyStore opens or creates the token database at dbPath.
func OpenKeyStore(dbPath string, logger *slog.Logger) (*KeyStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create token store directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &KeyStore{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewKeyStore wraps an existing database handle. The caller keeps
// ownership of the handle.
func NewKeyStore(db *sql.DB, logger *slog.Logger) (*KeyStore, error) {
	s := &KeyStore{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *KeyStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS api_keys (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			token_hash TEXT NOT NULL,
			token_prefix TEXT NOT NULL,
			scopes TEXT NOT NULL,
			expires_at TEXT,
			created_at TEXT NOT NULL,
			last_used_at TEXT,
			revoked INTEGER NOT NULL DEFAULT 0,
			revoked_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_api_keys_prefix ON api_keys(token_prefix);
		CREATE INDEX IF NOT EXISTS idx_api_keys_revoked ON api_keys(revoked);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("init token schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *KeyStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists a new API key.
func (s *KeyStore) Save(key *APIKey) error {
	scopesJSON, err := json.Marshal(key.Scopes)
	if err != nil {
		return fmt.Errorf("marshal scopes: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO api_keys (
			id, name, token_hash, token_prefix, scopes,
			expires_at, created_at, last_used_at, revoked, revoked_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		key.ID,
		key.Name,
		key.TokenHash,
		key.TokenPrefix,
		string(scopesJSON),
		timePtrString(key.ExpiresAt),
		key.CreatedAt.UTC().Format(time.RFC3339),
		timePtrString(key.LastUsedAt),
		boolToInt(key.Revoked),
		timePtrString(key.RevokedAt),
	)
	if err != nil {
		return fmt.Errorf("save key: %w", err)
	}
	return nil
}

// Get returns a key by ID.
func (s *KeyStore) Get(keyID string) (*APIKey, error) {
	row := s.db.QueryRow(selectColumns+` FROM api_keys WHERE id = ?`, keyID)
	key, err := scanKey(row)
	if err == sql.ErrNoRows {
		return nil, ErrKeyNotFound
	}
	return key, err
}

// FindByPrefix returns all keys sharing a token prefix. Prefixes are
// 8 hex chars, so collisions are possible and the caller must verify
// the hash against each hit.
func (s *KeyStore) FindByPrefix(prefix string) ([]*APIKey, error) {
	rows, err := s.db.Query(selectColumns+` FROM api_keys WHERE token_prefix = ?`, prefix)
	if err != nil {
		return nil, fmt.Errorf("lookup by prefix: %w", err)
	}
	defer rows.Close()
	return scanKeys(rows)
}

// List returns all keys, optionally including revoked ones, newest
// first.
func (s *KeyStore) List(includeRevoked bool) ([]*APIKey, error) {
	query := selectColumns + ` FROM api_keys`
	if !includeRevoked {
		query += ` WHERE revoked = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()
	return scanKeys(rows)
}

// Revoke marks a key revoked. Revoking an already-revoked key is a
// no-op success.
func (s *KeyStore) Revoke(keyID string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`
		UPDATE api_keys SET revoked = 1, revoked_at = ? WHERE id = ?
	`, now, keyID)
	if err != nil {
		return fmt.Errorf("revoke key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke key: %w", err)
	}
	if affected == 0 {
		return ErrKeyNotFound
	}

	s.logger.Info("API key revoked", "keyId", keyID)
	return nil
}

// TouchLastUsed records a successful authentication. Failures are
// logged and swallowed: usage tracking must not block requests.
func (s *KeyStore) TouchLastUsed(keyID string) {
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := s.db.Exec(`UPDATE api_keys SET last_used_at = ? WHERE id = ?`, now, keyID); err != nil {
		s.logger.Warn("failed to update last_used_at", "keyId", keyID, "error", err.Error())
	}
}

const selectColumns = `
	SELECT id, name, token_hash, token_prefix, scopes,
	       expires_at, created_at, last_used_at, revoked, revoked_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanKey(row rowScanner) (*APIKey, error) {
	var key APIKey
	var scopesJSON string
	var expiresAt, lastUsedAt, revokedAt sql.NullString
	var createdAt string
	var revoked int

	err := row.Scan(
		&key.ID, &key.Name, &key.TokenHash, &key.TokenPrefix, &scopesJSON,
		&expiresAt, &createdAt, &lastUsedAt, &revoked, &revokedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(scopesJSON), &key.Scopes); err != nil {
		return nil, fmt.Errorf("unmarshal scopes for %s: %w", key.ID, err)
	}
	key.Revoked = revoked != 0

	if key.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for %s: %w", key.ID, err)
	}
	if key.ExpiresAt, err = parseNullTime(expiresAt); err != nil {
		return nil, fmt.Errorf("invalid expires_at for %s: %w", key.ID, err)
	}
	if key.LastUsedAt, err = parseNullTime(lastUsedAt); err != nil {
		return nil, fmt.Errorf("invalid last_used_at for %s: %w", key.ID, err)
	}
	if key.RevokedAt, err = parseNullTime(revokedAt); err != nil {
		return nil, fmt.Errorf("invalid revoked_at for %s: %w", key.ID, err)
	}
	return &key, nil
}

func scanKeys(rows *sql.Rows) ([]*APIKey, error) {
	var keys []*APIKey
	for rows.Next() {
		key, err := scanKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func timePtrString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
