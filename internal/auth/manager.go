package auth

import (
	"log/slog"
	"strings"
	"time"
)

// Manager handles API key authentication against a KeyStore. When
// auth is disabled every request passes with full access, which is the
// default for a local single-user server.
type Manager struct {
	enabled bool
	store   *KeyStore
	logger  *slog.Logger
}

// NewManager creates a new auth manager. store may be nil only when
// enabled is false.
func NewManager(enabled bool, store *KeyStore, logger *slog.Logger) (*Manager, error) {
	if enabled && store == nil {
		return nil, ErrStoreNotInitialized
	}
	return &Manager{
		enabled: enabled,
		store:   store,
		logger:  logger,
	}, nil
}

// Enabled reports whether token checks are active.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// CreateKey mints a new API key and returns it with the raw token.
// The raw token is not recoverable afterwards.
func (m *Manager) CreateKey(opts CreateKeyOptions) (*APIKey, string, error) {
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}
	if m.store == nil {
		return nil, "", ErrStoreNotInitialized
	}

	id, err := GenerateKeyID()
	if err != nil {
		return nil, "", err
	}
	token, prefix, err := GenerateToken()
	if err != nil {
		return nil, "", err
	}
	hash, err := HashToken(token)
	if err != nil {
		return nil, "", err
	}

	key := &APIKey{
		ID:          id,
		Name:        opts.Name,
		TokenHash:   hash,
		TokenPrefix: prefix,
		Scopes:      opts.Scopes,
		ExpiresAt:   opts.ExpiresAt,
		CreatedAt:   time.Now().UTC(),
	}
	if err := m.store.Save(key); err != nil {
		return nil, "", err
	}

	m.logger.Info("API key created", "keyId", key.ID, "name", key.Name)
	return key, token, nil
}

// ListKeys returns stored keys.
func (m *Manager) ListKeys(includeRevoked bool) ([]*APIKey, error) {
	if m.store == nil {
		return nil, ErrStoreNotInitialized
	}
	return m.store.List(includeRevoked)
}

// RevokeKey invalidates a key immediately.
func (m *Manager) RevokeKey(keyID string) error {
	if m.store == nil {
		return ErrStoreNotInitialized
	}
	return m.store.Revoke(keyID)
}

// Authenticate validates a bearer token against the required scope.
func (m *Manager) Authenticate(token string, requiredScope Scope) *AuthResult {
	result := &AuthResult{}

	if !m.enabled {
		result.Authenticated = true
		result.Scopes = []Scope{ScopeAdmin}
		return result
	}

	if token == "" {
		result.ErrorCode = ErrCodeMissingToken
		result.ErrorMessage = "Authorization header required"
		return result
	}
	if !IsValidTokenFormat(token) {
		result.ErrorCode = ErrCodeInvalidToken
		result.ErrorMessage = "Invalid API key"
		return result
	}

	key := m.findKey(token)
	if key == nil {
		result.ErrorCode = ErrCodeInvalidToken
		result.ErrorMessage = "Invalid API key"
		return result
	}
	if key.Revoked {
		result.ErrorCode = ErrCodeRevokedToken
		result.ErrorMessage = "API key has been revoked"
		return result
	}
	if key.IsExpired() {
		result.ErrorCode = ErrCodeExpiredToken
		result.ErrorMessage = "API key has expired"
		return result
	}
	if !key.HasScope(requiredScope) {
		result.ErrorCode = ErrCodeInsufficientScope
		result.ErrorMessage = "API key lacks required scope: " + string(requiredScope)
		result.KeyID = key.ID
		return result
	}

	m.store.TouchLastUsed(key.ID)

	result.Authenticated = true
	result.KeyID = key.ID
	result.KeyName = key.Name
	result.Scopes = key.Scopes
	return result
}

// findKey looks up candidates by prefix and verifies the bcrypt hash
// against each. Revoked and expired keys are still returned so the
// caller can report the precise failure.
func (m *Manager) findKey(token string) *APIKey {
	prefix := ExtractTokenPrefix(token)
	candidates, err := m.store.FindByPrefix(prefix)
	if err != nil {
		m.logger.Error("key lookup failed", "error", err.Error())
		return nil
	}
	for _, key := range candidates {
		if VerifyToken(token, key.TokenHash) {
			return key
		}
	}
	return nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const scheme = "Bearer "
	if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
		return header[len(scheme):]
	}
	return ""
}
