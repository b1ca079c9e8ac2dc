// Package auth issues and verifies bearer tokens for the HTTP API.
// Raw tokens are shown once at creation; the store keeps only a bcrypt
// hash plus a short prefix for lookup.
package auth

import (
	"time"
)

// Scope represents an API key permission scope
type Scope string

const (
	// ScopeRead allows analysis queries and stored-record reads
	ScopeRead Scope = "read"
	// ScopeWrite additionally allows persisting verdicts and purging the store
	ScopeWrite Scope = "write"
	// ScopeAdmin allows everything including token management
	ScopeAdmin Scope = "admin"
)

// ValidScopes returns all valid scope values
func ValidScopes() []Scope {
	return []Scope{ScopeRead, ScopeWrite, ScopeAdmin}
}

// IsValid checks if a scope is valid
func (s Scope) IsValid() bool {
	switch s {
	case ScopeRead, ScopeWrite, ScopeAdmin:
		return true
	default:
		return false
	}
}

// Includes checks if this scope includes the required scope.
// admin includes write includes read.
func (s Scope) Includes(required Scope) bool {
	switch s {
	case ScopeAdmin:
		return true
	case ScopeWrite:
		return required == ScopeWrite || required == ScopeRead
	case ScopeRead:
		return required == ScopeRead
	default:
		return false
	}
}

// APIKey represents an API key for authentication
type APIKey struct {
	ID          string     `json:"id"`                     // "bigo_key_" + 16 hex chars
	Name        string     `json:"name"`                   // Human-readable name
	TokenHash   string     `json:"-"`                      // bcrypt hash, never exposed
	TokenPrefix string     `json:"tokenPrefix"`            // First 8 chars for identification
	Scopes      []Scope    `json:"scopes"`                 // Allowed scopes
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`    // Expiration time (nil = never)
	CreatedAt   time.Time  `json:"createdAt"`              // Creation timestamp
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`   // Last use timestamp
	Revoked     bool       `json:"revoked"`                // Whether key is revoked
	RevokedAt   *time.Time `json:"revokedAt,omitempty"`    // Revocation timestamp
}

// IsExpired checks if the key has expired
func (k *APIKey) IsExpired() bool {
	if k.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*k.ExpiresAt)
}

// IsActive checks if the key is usable (not revoked, not expired)
func (k *APIKey) IsActive() bool {
	return !k.Revoked && !k.IsExpired()
}

// HasScope checks if the key has the required scope
func (k *APIKey) HasScope(required Scope) bool {
	for _, s := range k.Scopes {
		if s.Includes(required) {
			return true
		}
	}
	return false
}

// AuthResult represents the result of an authentication attempt
type AuthResult struct {
	Authenticated bool    `json:"authenticated"`
	KeyID         string  `json:"keyId,omitempty"`
	KeyName       string  `json:"keyName,omitempty"`
	Scopes        []Scope `json:"scopes,omitempty"`
	ErrorCode     string  `json:"errorCode,omitempty"`
	ErrorMessage  string  `json:"errorMessage,omitempty"`
}

// Error codes for authentication failures
const (
	ErrCodeMissingToken      = "missing_token"
	ErrCodeInvalidToken      = "invalid_token"
	ErrCodeExpiredToken      = "expired_token"
	ErrCodeRevokedToken      = "revoked_token"
	ErrCodeInsufficientScope = "insufficient_scope"
)

// CreateKeyOptions contains options for creating a new API key
type CreateKeyOptions struct {
	Name      string     `json:"name"`
	Scopes    []Scope    `json:"scopes"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Validate checks if the options are valid
func (o *CreateKeyOptions) Validate() error {
	if o.Name == "" {
		return ErrNameRequired
	}
	if len(o.Scopes) == 0 {
		return ErrScopesRequired
	}
	for _, s := range o.Scopes {
		if !s.IsValid() {
			return ErrInvalidScope
		}
	}
	return nil
}
