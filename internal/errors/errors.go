package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// FileUnreadable indicates a source file could not be opened or read
	FileUnreadable ErrorCode = "FILE_UNREADABLE"
	// PathOutsideRepo indicates a path escapes the repository root
	PathOutsideRepo ErrorCode = "PATH_OUTSIDE_REPO"
	// SpanInvalid indicates a requested line range is malformed
	SpanInvalid ErrorCode = "SPAN_INVALID"
	// ConfigInvalid indicates the .bigo/config.json file is malformed
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// LanguagesInvalid indicates the LANGUAGES.toml declarations are malformed
	LanguagesInvalid ErrorCode = "LANGUAGES_INVALID"
	// PolicyInvalid indicates the policy.toml budget file is malformed
	PolicyInvalid ErrorCode = "POLICY_INVALID"
	// PolicyViolation indicates functions exceeded their complexity budget
	PolicyViolation ErrorCode = "POLICY_VIOLATION"
	// StoreUnavailable indicates the result store cannot be opened
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// RecordNotFound indicates no stored verdict matches the query
	RecordNotFound ErrorCode = "RECORD_NOT_FOUND"
	// Unauthorized indicates a missing or invalid API token
	Unauthorized ErrorCode = "UNAUTHORIZED"
	// Timeout indicates an operation timed out
	Timeout ErrorCode = "TIMEOUT"
	// ExportFailed indicates a report could not be written
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// EditFile suggests editing a config or policy file
	EditFile FixActionType = "edit-file"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	File        string        `json:"file,omitempty"`
}

// Drilldown represents a suggested follow-up query
type Drilldown struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// BigoError represents a bigo error with code, message, and suggestions
type BigoError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	Drilldowns     []Drilldown `json:"drilldowns,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewBigoError creates a new BigoError
func NewBigoError(code ErrorCode, message string, cause error, suggestedFixes []FixAction, drilldowns []Drilldown) *BigoError {
	return &BigoError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes,
		Drilldowns:     drilldowns,
	}
}

// Error implements the error interface
func (e *BigoError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *BigoError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *BigoError) WithDetails(details interface{}) *BigoError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "bigo init --force",
			Safe:        false,
			Description: "Regenerate .bigo/config.json with defaults",
		},
	},
	LanguagesInvalid: {
		{
			Type:        EditFile,
			File:        "LANGUAGES.toml",
			Description: "Fix the malformed language declaration",
		},
	},
	PolicyInvalid: {
		{
			Type:        EditFile,
			File:        ".bigo/policy.toml",
			Description: "Fix the malformed complexity budget",
		},
	},
	StoreUnavailable: {
		{
			Type:        RunCommand,
			Command:     "bigo cache clear",
			Safe:        false,
			Description: "Drop the result store so it can be rebuilt",
		},
	},
	Unauthorized: {
		{
			Type:        RunCommand,
			Command:     "bigo token create --name default",
			Safe:        true,
			Description: "Create an API token for this repository",
		},
	},
	PolicyViolation: {
		{
			Type:        RunCommand,
			Command:     "bigo analyze --sort time --limit 10",
			Safe:        true,
			Description: "List the most expensive functions first",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
