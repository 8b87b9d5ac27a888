// Package chi exposes the HTTP API.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/capacita-cloud/capacita/internal/domain"
	analyticsuc "github.com/capacita-cloud/capacita/internal/usecase/analytics"
	courseuc "github.com/capacita-cloud/capacita/internal/usecase/course"
	healthuc "github.com/capacita-cloud/capacita/internal/usecase/health"
	ingestuc "github.com/capacita-cloud/capacita/internal/usecase/ingest"
	searchuc "github.com/capacita-cloud/capacita/internal/usecase/search"
	taxonomyuc "github.com/capacita-cloud/capacita/internal/usecase/taxonomy"
)

// maxUploadBytes bounds multipart course-document uploads.
const maxUploadBytes = 20 << 20

// Error codes returned in JSON error responses.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeCourseNotFound   = "course_not_found"
	codeUploadNotFound   = "upload_not_found"
	codeUnsupportedFile  = "unsupported_file"
	codeAIProviderError  = "ai_provider_error"
	codeInternalError    = "internal_error"
)

// errorResponse is the JSON body of every non-2xx reply.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers and their usecase dependencies.
type Server struct {
	search        *searchuc.Service
	courses       *courseuc.Service
	ingest        *ingestuc.Service
	taxonomy      *taxonomyuc.Service
	analytics     *analyticsuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	courses *courseuc.Service,
	ingest *ingestuc.Service,
	taxonomy *taxonomyuc.Service,
	analytics *analyticsuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		courses:   courses,
		ingest:    ingest,
		taxonomy:  taxonomy,
		analytics: analytics,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrCourseNotFound, http.StatusNotFound, codeCourseNotFound),
		sentinelHandler(domain.ErrUploadNotFound, http.StatusNotFound, codeUploadNotFound),
		sentinelHandler(domain.ErrInvalidCourse, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidTaxonomy, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmptyQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrUnsupportedFile, http.StatusBadRequest, codeUnsupportedFile),
		sentinelHandler(domain.ErrAIProviderError, http.StatusBadGateway, codeAIProviderError),
	}
	return s
}

// Mount attaches all API routes to the router.
func (s *Server) Mount(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.Search)

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", s.ListCourses)
			r.Post("/", s.CreateCourse)
			r.Get("/{id}", s.GetCourse)
			r.Put("/{id}", s.UpdateCourse)
			r.Delete("/{id}", s.DeleteCourse)
			r.Post("/{id}/publish", s.PublishCourse)
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Post("/", s.CreateUpload)
			r.Get("/{id}", s.GetUpload)
		})

		r.Get("/taxonomy", s.GetTaxonomy)
		r.Put("/taxonomy", s.PutTaxonomy)

		r.Get("/analytics/dashboard", s.Dashboard)
	})
}

// searchRequest is the POST /v1/search body.
type searchRequest struct {
	Query   string               `json:"query"`
	Filters domain.SearchFilters `json:"filters"`
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), req.Query, req.Filters)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// CreateCourse handles POST /v1/courses.
func (s *Server) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req domain.Course
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	course, err := s.courses.Create(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, course)
}

// ListCourses handles GET /v1/courses.
func (s *Server) ListCourses(w http.ResponseWriter, r *http.Request) {
	opts := courseuc.ListOptions{
		PublishedOnly: r.URL.Query().Get("published") == "true",
		Company:       r.URL.Query().Get("company"),
		Category:      r.URL.Query().Get("category"),
	}

	courses, err := s.courses.List(r.Context(), opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": courses})
}

// GetCourse handles GET /v1/courses/{id}. Each hit bumps the course's
// view counter without blocking the response.
func (s *Server) GetCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	course, err := s.courses.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	go func(ctx context.Context) {
		if err := s.analytics.RecordCourseView(ctx, id); err != nil {
			s.logger.Warn("course view not recorded", zap.String("course_id", id), zap.Error(err))
		}
	}(context.WithoutCancel(r.Context()))

	writeJSON(w, http.StatusOK, course)
}

// UpdateCourse handles PUT /v1/courses/{id}.
func (s *Server) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req domain.Course
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	course, err := s.courses.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

// DeleteCourse handles DELETE /v1/courses/{id}.
func (s *Server) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.courses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// publishRequest is the POST /v1/courses/{id}/publish body.
type publishRequest struct {
	Published bool `json:"published"`
}

// PublishCourse handles POST /v1/courses/{id}/publish.
func (s *Server) PublishCourse(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	course, err := s.courses.SetPublished(r.Context(), chi.URLParam(r, "id"), req.Published)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

// CreateUpload handles POST /v1/uploads (multipart, field "file").
func (s *Server) CreateUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid multipart body: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, `Missing multipart field "file"`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Read upload: "+err.Error())
		return
	}

	upload, err := s.ingest.Ingest(r.Context(), header.Filename, data)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, upload)
}

// GetUpload handles GET /v1/uploads/{id}.
func (s *Server) GetUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := s.ingest.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

// GetTaxonomy handles GET /v1/taxonomy.
func (s *Server) GetTaxonomy(w http.ResponseWriter, r *http.Request) {
	tax, err := s.taxonomy.Get(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tax)
}

// PutTaxonomy handles PUT /v1/taxonomy.
func (s *Server) PutTaxonomy(w http.ResponseWriter, r *http.Request) {
	var req domain.Taxonomy
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.taxonomy.Put(r.Context(), req); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// Dashboard handles GET /v1/analytics/dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.analytics.Dashboard(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrCourseNotFound,
		domain.ErrUploadNotFound,
		domain.ErrInvalidCourse,
		domain.ErrInvalidTaxonomy,
		domain.ErrEmptyQuery,
		domain.ErrUnsupportedFile,
		domain.ErrAIProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
