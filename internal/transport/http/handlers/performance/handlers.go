package performancehandler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"perfai/internal/domain/analytics"
	"perfai/internal/domain/audit"
	"perfai/internal/domain/performance"
	"perfai/internal/requestctx"
	"perfai/internal/transport/http/api"
	"perfai/internal/transport/http/middleware"
)

type Handler struct {
	Service   *performance.Service
	Analytics *analytics.Service
	Audit     *audit.Recorder
}

func NewHandler(service *performance.Service, analyticsService *analytics.Service, recorder *audit.Recorder) *Handler {
	return &Handler{Service: service, Analytics: analyticsService, Audit: recorder}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance", func(r chi.Router) {
		r.With(middleware.RequireEmployee).Post("/generate/{employeeID}/{period}", h.handleGenerate)
		r.With(middleware.RequireEmployee).Get("/summary/{employeeID}/{period}", h.handleGetSummary)
		r.With(middleware.RequireEmployee).Get("/report/{employeeID}/{period}", h.handleReportPDF)
		r.With(middleware.RequireAuth).Get("/analytics/{period}", h.handleAnalytics)
	})
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	employeeID, period, ok := pathParams(w, r)
	if !ok {
		return
	}

	rawText, err := h.Service.Generate(r.Context(), employeeID, period)
	if errors.Is(err, performance.ErrKPIDataNotFound) {
		api.Fail(w, http.StatusNotFound, "KPI data not found")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Failed to generate performance summary")
		return
	}

	if h.Audit != nil {
		user, _ := middleware.GetUser(r.Context())
		if auditErr := h.Audit.Record(r.Context(), user.UserID, audit.ActionGeneratePerformance, "performance_summary", fmt.Sprintf("%d/%s", employeeID, period), requestctx.GetRequestID(r.Context()), nil); auditErr != nil {
			slog.Warn("audit record failed", "action", audit.ActionGeneratePerformance, "err", auditErr)
		}
	}

	api.Success(w, map[string]any{
		"employee_id": employeeID,
		"period":      period,
		"ai_summary":  performance.RepairForDisplay(rawText),
	}, "Performance summary generated successfully")
}

func (h *Handler) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, period, ok := pathParams(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.GetSummary(r.Context(), employeeID, period)
	if errors.Is(err, performance.ErrSummaryNotFound) {
		api.Fail(w, http.StatusNotFound, "Summary not found")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Failed to load summary")
		return
	}

	api.Success(w, map[string]any{
		"employee_id":          employeeID,
		"period":               period,
		"ai_summary":           performance.RepairForDisplay(summary.AISummary),
		"total_score":          summary.TotalScore,
		"performance_category": summary.Category,
		"ai_recommendation":    summary.Recommendation,
		"ai_motivation":        summary.Motivation,
		"generated_at":         summary.GeneratedAt,
	}, "Summary retrieved successfully")
}

func (h *Handler) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	employeeID, period, ok := pathParams(w, r)
	if !ok {
		return
	}

	pdfBytes, err := h.Service.ReportPDF(r.Context(), employeeID, period)
	if errors.Is(err, performance.ErrSummaryNotFound) {
		api.Fail(w, http.StatusNotFound, "Summary not found")
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=performance-%d-%s.pdf", employeeID, period))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

func (h *Handler) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")
	report, err := h.Analytics.Report(r.Context(), period)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	api.Success(w, report, "Analytics retrieved successfully")
}

func pathParams(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid employee id")
		return 0, "", false
	}
	period := chi.URLParam(r, "period")
	if period == "" {
		api.Fail(w, http.StatusBadRequest, "Invalid period")
		return 0, "", false
	}
	return employeeID, period, true
}
