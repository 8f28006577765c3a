package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apperrors "pricescan/internal/errors"
	"pricescan/pkg/contracts/domain"
)

// ScanService abstracts the scanner for the HTTP layer.
type ScanService interface {
	ScanDirectory(ctx context.Context, dir string) (*domain.ScanSummary, error)
}

// ScanHandler handles scan trigger requests
type ScanHandler struct {
	service  ScanService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewScanHandler creates a new scan handler
func NewScanHandler(service ScanService, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "scan_handler")),
		validate: validator.New(),
	}
}

// Routes returns the scan routes
func (h *ScanHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Post("/scan", h.TriggerScan)
	return r
}

// ScanRequest is the body of POST /api/v1/scan. DirectoryPath is
// optional; the configured data directory is scanned when it is empty.
type ScanRequest struct {
	DirectoryPath string `json:"directory_path" validate:"omitempty,min=1"`
}

// ScanResponse wraps a completed scan summary.
type ScanResponse struct {
	Success  bool                `json:"success"`
	Summary  *domain.ScanSummary `json:"summary"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Render implements render.Renderer
func (s *ScanResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// TriggerScan handles POST /api/v1/scan: runs a directory scan and
// returns the summary, including every file and row warning.
func (h *ScanHandler) TriggerScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if r.ContentLength > 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Render(w, r, apperrors.NewErrorResponse(apperrors.InvalidRequestWithError(err)))
			return
		}
	}
	if err := h.validate.Struct(&req); err != nil {
		render.Render(w, r, apperrors.NewErrorResponse(apperrors.ErrValidation("directory_path", err.Error())))
		return
	}

	h.logger.InfoContext(ctx, "scan requested",
		slog.String("directory", req.DirectoryPath))

	summary, err := h.service.ScanDirectory(ctx, req.DirectoryPath)
	if err != nil {
		if apperrors.IsPathError(err) {
			render.Render(w, r, apperrors.NewErrorResponse(apperrors.DirectoryNotFoundError(err)))
			return
		}
		h.logger.ErrorContext(ctx, "scan failed", slog.String("error", err.Error()))
		render.Render(w, r, apperrors.NewErrorResponse(apperrors.ErrScanExecution(err)))
		return
	}

	render.Render(w, r, &ScanResponse{
		Success:  true,
		Summary:  summary,
		Warnings: summary.AllWarnings(),
	})
}
