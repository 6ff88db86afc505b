package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
	"github.com/Equity1137/deep-x-check/internal/application/usecase"
	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
	"github.com/Equity1137/deep-x-check/pkg/auth"
)

// rolesForMode maps an analysis mode to the roles allowed to request it.
func rolesForMode(mode valueobject.Mode) []string {
	switch {
	case mode.Equal(valueobject.ModeExpert):
		return []string{auth.RoleAdmin}
	case mode.Equal(valueobject.ModeInvestigation):
		return []string{auth.RoleAdmin, auth.RoleAnalyst}
	default:
		return []string{auth.RoleAdmin, auth.RoleAnalyst, auth.RoleViewer}
	}
}

// AnalysisHandler serves the REST analysis API.
type AnalysisHandler struct {
	analyze *usecase.AnalyzeProfile
	get     *usecase.GetAnalysis
	list    *usecase.ListAnalyses
	logger  *slog.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	analyze *usecase.AnalyzeProfile,
	get *usecase.GetAnalysis,
	list *usecase.ListAnalyses,
	logger *slog.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyze: analyze,
		get:     get,
		list:    list,
		logger:  logger,
	}
}

// RegisterRoutes registers the analysis API routes on the provided mux. The
// mux is expected to sit behind AuthMiddleware.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analyses", h.AnalyzeProfile)
	mux.HandleFunc("GET /api/v1/analyses/{id}", h.GetAnalysis)
	mux.HandleFunc("GET /api/v1/analyses", h.ListAnalyses)
}

// requireModeAccess writes an error response and returns false when the
// caller's roles do not permit the given mode.
func (h *AnalysisHandler) requireModeAccess(w http.ResponseWriter, r *http.Request, mode valueobject.Mode) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return false
	}
	for _, role := range rolesForMode(mode) {
		if claims.HasRole(role) {
			return true
		}
	}
	writeError(w, http.StatusForbidden, "insufficient permissions for mode "+mode.String())
	return false
}

// AnalyzeProfile handles POST /api/v1/analyses.
func (h *AnalysisHandler) AnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	mode, err := valueobject.ModeFromString(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !h.requireModeAccess(w, r, mode) {
		return
	}

	report, err := h.analyze.Execute(r.Context(), req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	h.logger.Info("profile analyzed",
		"analysis_id", report.ID,
		"mode", report.Meta.Mode,
		"risk_score", report.RiskAssessment.Score,
		"risk_level", report.RiskAssessment.Level,
	)

	writeJSON(w, http.StatusCreated, report)
}

// GetAnalysis handles GET /api/v1/analyses/{id}. With ?format=text the
// report is rendered as the plain-text console layout.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid analysis id")
		return
	}

	report, err := h.get.Execute(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	mode, err := valueobject.ModeFromString(report.Meta.Mode)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	if !h.requireModeAccess(w, r, mode) {
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(RenderText(report)))
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ListAnalyses handles GET /api/v1/analyses?username=...
func (h *AnalysisHandler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if !claims.HasRole(auth.RoleAdmin) && !claims.HasRole(auth.RoleAnalyst) {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	summaries, err := h.list.Execute(r.Context(), r.URL.Query().Get("username"), limit, offset)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"analyses": summaries})
}

// writeUsecaseError maps application errors to HTTP status codes.
func (h *AnalysisHandler) writeUsecaseError(w http.ResponseWriter, err error) {
	var inputErr *model.InvalidInputError
	var modeErr *valueobject.UnknownModeError
	switch {
	case errors.As(err, &inputErr), errors.As(err, &modeErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, "analysis not found")
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
