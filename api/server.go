// Package api is the thin HTTP layer. Handlers only ingest input,
// orchestrate the core packages, and serialize output; template and
// pricing logic never lives here.
package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sheetforge/core/ai"
	"sheetforge/core/preview"
	"sheetforge/core/resolve"
	"sheetforge/core/templates"
	"sheetforge/core/types"
	"sheetforge/internal/errors"
	"sheetforge/internal/logging"
)

// Server is the API server.
type Server struct {
	mux      *http.ServeMux
	version  string
	resolver *resolve.Resolver
}

// NewServer creates an API server without an AI backend; chat requests
// are rejected until one is attached.
func NewServer(version string) *Server {
	return NewServerWithProvider(version, nil)
}

// NewServerWithProvider creates an API server bound to an AI provider.
func NewServerWithProvider(version string, provider ai.Provider) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		version: version,
	}
	if provider != nil {
		s.resolver = resolve.NewResolver(provider)
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /generate", s.handleGenerate)
	s.mux.HandleFunc("POST /chat/{templateId}", s.handleChat)

	// Supporting endpoints
	s.mux.HandleFunc("GET /templates", s.handleTemplates)
	s.mux.HandleFunc("GET /preview/{templateId}", s.handlePreview)
	s.mux.HandleFunc("POST /preview/{templateId}", s.handlePreview)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleGenerate handles POST /generate
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.TypeInput, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if req.TemplateID == "" {
		s.writeError(w, errors.TypeInput, "Missing or invalid templateId", http.StatusBadRequest)
		return
	}
	def, ok := templates.Lookup(req.TemplateID)
	if !ok {
		s.writeError(w, errors.TypeNotFound, "Unknown template: "+req.TemplateID, http.StatusNotFound)
		return
	}
	if req.Config == nil {
		s.writeError(w, errors.TypeInput, "Missing or invalid config", http.StatusBadRequest)
		return
	}

	f, err := templates.GenerateWithResources(req.TemplateID, req.Config, req.Resources)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.writeError(w, errors.TypeSerialization, "Failed to generate workbook: "+err.Error(), http.StatusInternalServerError)
		return
	}

	logging.Info("workbook generated",
		zap.String("request_id", requestID),
		zap.String("template", req.TemplateID),
		zap.Int("bytes", buf.Len()),
		zap.Duration("duration", time.Since(start)))

	w.Header().Set("Content-Type", spreadsheetMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", workbookFilename(def.Name)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleChat handles POST /chat/{templateId}
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	templateID := r.PathValue("templateId")

	// Only the Azure calculator has AI support; other templates add
	// their own resolvers later.
	if templateID != "azure-calculator" {
		s.writeError(w, errors.TypeInput, "AI chat is not yet supported for template: "+templateID, http.StatusBadRequest)
		return
	}
	if s.resolver == nil {
		s.writeError(w, errors.TypeConfig, "AI provider is not configured", http.StatusServiceUnavailable)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.TypeInput, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, errors.TypeInput, "message is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := s.resolver.Resolve(r.Context(), req.Message)
	if err != nil {
		logging.Warn("resolution failed",
			zap.String("request_id", requestID), zap.Error(err))
		s.writeChatError(w, err)
		return
	}

	logging.Info("chat resolved",
		zap.String("request_id", requestID),
		zap.Int("resources", len(result.Resources)),
		zap.Duration("duration", time.Since(start)))

	s.writeJSON(w, ChatResponse{
		Resources:    result.Resources,
		Summary:      result.Summary,
		TotalMonthly: result.TotalMonthly,
	}, http.StatusOK)
}

// handleTemplates handles GET /templates
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"templates": templates.Definitions(),
	}, http.StatusOK)
}

// handlePreview handles GET and POST /preview/{templateId}. GET renders
// with schema defaults; POST accepts a config body.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	templateID := r.PathValue("templateId")

	var req struct {
		Config types.TemplateConfig `json:"config"`
	}
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, errors.TypeInput, "Invalid JSON body", http.StatusBadRequest)
			return
		}
	}
	if req.Config == nil {
		req.Config = types.TemplateConfig{}
	}

	validated, err := templates.Validate(templateID, req.Config)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	rows, err := preview.Rows(templateID, validated)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, PreviewResponse{TemplateID: templateID, Rows: rows}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "sheetforge",
		"api_version": "v1",
	}, http.StatusOK)
}

// writeDomainError maps a typed error onto an HTTP status.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	t := errors.TypeOf(err)
	status := http.StatusInternalServerError
	switch t {
	case errors.TypeInput, errors.TypeTemplate:
		status = http.StatusBadRequest
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeConfig:
		status = http.StatusServiceUnavailable
	}
	s.writeError(w, t, errorMessage(err), status)
}

// writeChatError maps resolution failures onto the chat contract: parse
// failures surface as actionable messages, provider failures as 502.
func (s *Server) writeChatError(w http.ResponseWriter, err error) {
	switch errors.TypeOf(err) {
	case errors.TypeInput:
		s.writeError(w, errors.TypeInput, errorMessage(err), http.StatusBadRequest)
	case errors.TypeParsing:
		msg := "AI returned an unexpected format. Please try rephrasing your request."
		if strings.Contains(errorMessage(err), "resources array") {
			msg = "AI response missing resources array."
		}
		s.writeError(w, errors.TypeParsing, msg, http.StatusInternalServerError)
	case errors.TypeProvider:
		s.writeError(w, errors.TypeProvider, "Failed to process request: "+errorMessage(err), http.StatusBadGateway)
	default:
		s.writeError(w, errors.TypeInternal, "Failed to process request: "+errorMessage(err), http.StatusInternalServerError)
	}
}

// errorMessage extracts the human message without the type prefix.
func errorMessage(err error) string {
	var domainErr *errors.Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code errors.Type, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{Code: string(code), Message: message}}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
