package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"bigo/internal/analysis"
	"bigo/internal/errors"
	"bigo/internal/paths"
	"bigo/internal/version"
)

// AnalyzeRequest is the body of POST /v1/analyze. Either Path (repo
// relative) or Content must be set; Content wins when both are given.
type AnalyzeRequest struct {
	Path     string `json:"path,omitempty"`
	Content  string `json:"content,omitempty"`
	Language string `json:"language,omitempty"`
}

// FunctionsResponse is the body of GET /v1/functions.
type FunctionsResponse struct {
	Path      string                       `json:"path"`
	Family    analysis.Family              `json:"family"`
	Functions []analysis.FunctionCandidate `json:"functions"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Records int    `json:"records,omitempty"`
}

// handleHealth reports liveness plus basic store stats.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := HealthResponse{
		Status:  "ok",
		Version: version.Version,
	}
	if s.store != nil {
		if n, err := s.store.Len(); err == nil {
			resp.Records = n
		}
	}

	WriteJSON(w, resp, http.StatusOK)
}

// handleAnalyze analyzes a repo file or inline source and returns the
// full document report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body: "+err.Error())
		return
	}
	if req.Path == "" && req.Content == "" {
		BadRequest(w, "either path or content is required")
		return
	}

	if req.Content != "" {
		report := s.analyzer.AnalyzeSource(req.Path, []byte(req.Content), req.Language)
		WriteJSON(w, report, http.StatusOK)
		return
	}

	abs, bigoErr := s.resolveRepoPath(req.Path)
	if bigoErr != nil {
		WriteBigoError(w, bigoErr)
		return
	}

	source, err := os.ReadFile(abs)
	if err != nil {
		WriteBigoError(w, errors.NewBigoError(errors.FileUnreadable,
			"failed to read "+req.Path, err,
			errors.GetSuggestedFixes(errors.FileUnreadable), nil))
		return
	}

	report := s.analyzer.AnalyzeSource(req.Path, source, req.Language)
	WriteJSON(w, report, http.StatusOK)
}

// handleFunctions lists detected function boundaries without verdicts.
func (s *Server) handleFunctions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	relPath := r.URL.Query().Get("path")
	if relPath == "" {
		BadRequest(w, "path query parameter is required")
		return
	}

	abs, bigoErr := s.resolveRepoPath(relPath)
	if bigoErr != nil {
		WriteBigoError(w, bigoErr)
		return
	}

	source, err := os.ReadFile(abs)
	if err != nil {
		WriteBigoError(w, errors.NewBigoError(errors.FileUnreadable,
			"failed to read "+relPath, err,
			errors.GetSuggestedFixes(errors.FileUnreadable), nil))
		return
	}

	family := analysis.DetectFamily(r.URL.Query().Get("language"), relPath)
	candidates := analysis.ScanDocument(analysis.SplitLines(string(source)), family)

	WriteJSON(w, FunctionsResponse{
		Path:      relPath,
		Family:    family,
		Functions: candidates,
	}, http.StatusOK)
}

// resolveRepoPath joins a client-supplied relative path against the
// repo root and rejects anything that escapes it.
func (s *Server) resolveRepoPath(relPath string) (string, *errors.BigoError) {
	abs := filepath.Join(s.repoRoot, filepath.FromSlash(relPath))
	if !paths.IsWithinRepo(abs, s.repoRoot) {
		return "", errors.NewBigoError(errors.PathOutsideRepo,
			"path escapes repository root: "+relPath, nil, nil, nil)
	}
	return abs, nil
}
