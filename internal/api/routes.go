package api

import (
	"net/http"

	"bigo/internal/version"
)

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Health check
	s.router.HandleFunc("/healthz", s.handleHealth)

	// Analysis operations
	s.router.HandleFunc("/v1/analyze", s.handleAnalyze)     // POST {path|content, language}
	s.router.HandleFunc("/v1/functions", s.handleFunctions) // GET ?path=...

	// Root endpoint
	s.router.HandleFunc("/", s.handleRoot)
}

// handleRoot handles requests to the root path
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"name":    "bigo HTTP API",
		"version": version.Version,
		"endpoints": []string{
			"GET /healthz - Health check",
			"POST /v1/analyze - Analyze a file or inline source",
			"GET /v1/functions?path=... - List function boundaries in a file",
		},
	}

	WriteJSON(w, response, http.StatusOK)
}
