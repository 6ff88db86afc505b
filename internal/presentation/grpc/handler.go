package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
	"github.com/Equity1137/deep-x-check/internal/application/usecase"
	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
	"github.com/Equity1137/deep-x-check/pkg/auth"
)

// rolesForMode maps an analysis mode to the roles allowed to request it.
// Viewers get anonymized discovery reports only; expert disclosure is
// restricted to admins because it carries identifying data.
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

// requireModeAccess checks that the caller's roles permit the given mode.
func requireModeAccess(ctx context.Context, mode valueobject.Mode) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range rolesForMode(mode) {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Errorf(codes.PermissionDenied, "mode %s requires role(s): %v", mode, rolesForMode(mode))
}

// statusFromError maps application errors to gRPC status codes.
func statusFromError(err error) error {
	var inputErr *model.InvalidInputError
	var modeErr *valueobject.UnknownModeError
	switch {
	case errors.As(err, &inputErr), errors.As(err, &modeErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, usecase.ErrAnalysisNotFound):
		return status.Error(codes.NotFound, "analysis not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// Compile-time assertion that Handler implements ProfileAnalysisServiceServer.
var _ ProfileAnalysisServiceServer = (*Handler)(nil)

// Handler implements the ProfileAnalysisServiceServer gRPC interface.
type Handler struct {
	UnimplementedProfileAnalysisServiceServer
	analyze *usecase.AnalyzeProfile
	get     *usecase.GetAnalysis
	list    *usecase.ListAnalyses
	logger  *slog.Logger
}

// NewHandler creates a new gRPC Handler.
func NewHandler(
	analyze *usecase.AnalyzeProfile,
	get *usecase.GetAnalysis,
	list *usecase.ListAnalyses,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		analyze: analyze,
		get:     get,
		list:    list,
		logger:  logger,
	}
}

// Proto-aligned request/response message types.

// ProfileMsg represents the proto Profile message.
type ProfileMsg struct {
	Username          string   `json:"username"`
	DisplayName       string   `json:"display_name,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	DeclaredLocation  string   `json:"declared_location,omitempty"`
	TechnicalLocation string   `json:"technical_location,omitempty"`
	JoinDate          string   `json:"join_date,omitempty"`
	LastNameChange    string   `json:"last_name_change,omitempty"`
	SharedChannels    []string `json:"shared_channels,omitempty"`
	Followers         int32    `json:"followers"`
	Following         int32    `json:"following"`
	NameChanges       int32    `json:"name_changes"`
	LikeFishing       bool     `json:"like_fishing"`
}

// FindingMsg represents the proto Finding message.
type FindingMsg struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	ScoreImpact int32  `json:"score_impact"`
}

// ReportMsg represents the proto AnalysisReport message.
type ReportMsg struct {
	ID             string        `json:"id"`
	Tool           string        `json:"tool"`
	ToolVersion    string        `json:"tool_version"`
	Mode           string        `json:"mode"`
	AnalysisDate   string        `json:"analysis_date"`
	Disclaimer     string        `json:"disclaimer"`
	RiskScore      int32         `json:"risk_score"`
	RiskLevel      string        `json:"risk_level"`
	RedFlagsCount  int32         `json:"red_flags_count"`
	Profile        *ProfileMsg   `json:"profile"`
	RedFlags       []*FindingMsg `json:"red_flags"`
	Recommendation string        `json:"recommendation"`
	Guidance       []string      `json:"guidance"`
}

// AnalysisSummaryMsg represents one row of the proto ListAnalysesResponse.
type AnalysisSummaryMsg struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Mode           string `json:"mode"`
	RiskScore      int32  `json:"risk_score"`
	RiskLevel      string `json:"risk_level"`
	Recommendation string `json:"recommendation"`
	RedFlagsCount  int32  `json:"red_flags_count"`
	AnalyzedAt     string `json:"analyzed_at"`
}

// AnalyzeProfileRequest represents the proto AnalyzeProfileRequest message.
type AnalyzeProfileRequest struct {
	Profile *ProfileMsg `json:"profile"`
	Mode    string      `json:"mode"`
}

// AnalyzeProfileResponse represents the proto AnalyzeProfileResponse message.
type AnalyzeProfileResponse struct {
	Report *ReportMsg `json:"report"`
}

// GetAnalysisRequest represents the proto GetAnalysisRequest message.
type GetAnalysisRequest struct {
	ID string `json:"id"`
}

// GetAnalysisResponse represents the proto GetAnalysisResponse message.
type GetAnalysisResponse struct {
	Report *ReportMsg `json:"report"`
}

// ListAnalysesRequest represents the proto ListAnalysesRequest message.
type ListAnalysesRequest struct {
	Username string `json:"username"`
	Limit    int32  `json:"limit"`
	Offset   int32  `json:"offset"`
}

// ListAnalysesResponse represents the proto ListAnalysesResponse message.
type ListAnalysesResponse struct {
	Analyses []*AnalysisSummaryMsg `json:"analyses"`
}

// AnalyzeProfile scores a profile record and returns the mode-filtered report.
func (h *Handler) AnalyzeProfile(ctx context.Context, req *AnalyzeProfileRequest) (*AnalyzeProfileResponse, error) {
	if req.Profile == nil {
		return nil, status.Error(codes.InvalidArgument, "profile is required")
	}

	mode, err := valueobject.ModeFromString(req.Mode)
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := requireModeAccess(ctx, mode); err != nil {
		return nil, err
	}

	report, err := h.analyze.Execute(ctx, dto.AnalyzeProfileRequest{
		Profile: profileDTOFromMsg(req.Profile),
		Mode:    req.Mode,
	})
	if err != nil {
		h.logger.Error("analyze profile failed", "error", err)
		return nil, statusFromError(err)
	}

	h.logger.Info("profile analyzed",
		"analysis_id", report.ID,
		"mode", report.Meta.Mode,
		"risk_score", report.RiskAssessment.Score,
		"risk_level", report.RiskAssessment.Level,
	)

	return &AnalyzeProfileResponse{Report: reportMsgFromDTO(report)}, nil
}

// GetAnalysis retrieves a stored analysis. Access is gated by the mode the
// analysis was stored under, so a viewer cannot pull an expert report by ID.
func (h *Handler) GetAnalysis(ctx context.Context, req *GetAnalysisRequest) (*GetAnalysisResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid analysis id: %v", err)
	}

	report, err := h.get.Execute(ctx, id)
	if err != nil {
		if !errors.Is(err, usecase.ErrAnalysisNotFound) {
			h.logger.Error("get analysis failed", "error", err, "analysis_id", id)
		}
		return nil, statusFromError(err)
	}

	mode, err := valueobject.ModeFromString(report.Meta.Mode)
	if err != nil {
		return nil, statusFromError(err)
	}
	if err := requireModeAccess(ctx, mode); err != nil {
		return nil, err
	}

	return &GetAnalysisResponse{Report: reportMsgFromDTO(report)}, nil
}

// ListAnalyses returns the analysis history for a username, newest first.
func (h *Handler) ListAnalyses(ctx context.Context, req *ListAnalysesRequest) (*ListAnalysesResponse, error) {
	// History rows can echo partially masked usernames, so listing is an
	// analyst surface.
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	if !claims.HasRole(auth.RoleAdmin) && !claims.HasRole(auth.RoleAnalyst) {
		return nil, status.Error(codes.PermissionDenied, "insufficient permissions")
	}

	summaries, err := h.list.Execute(ctx, req.Username, int(req.Limit), int(req.Offset))
	if err != nil {
		var inputErr *model.InvalidInputError
		if !errors.As(err, &inputErr) {
			h.logger.Error("list analyses failed", "error", err, "username", req.Username)
		}
		return nil, statusFromError(err)
	}

	msgs := make([]*AnalysisSummaryMsg, len(summaries))
	for i, s := range summaries {
		msgs[i] = &AnalysisSummaryMsg{
			ID:             s.ID.String(),
			Username:       s.Username,
			Mode:           s.Mode,
			RiskScore:      int32(s.RiskScore),
			RiskLevel:      s.RiskLevel,
			Recommendation: s.Recommendation,
			RedFlagsCount:  int32(s.RedFlagsCount),
			AnalyzedAt:     s.AnalyzedAt.UTC().Format(time.RFC3339),
		}
	}

	return &ListAnalysesResponse{Analyses: msgs}, nil
}

// --- Mapping helpers ---

func profileDTOFromMsg(p *ProfileMsg) dto.ProfileDTO {
	return dto.ProfileDTO{
		Username:          p.Username,
		DisplayName:       p.DisplayName,
		Bio:               p.Bio,
		DeclaredLocation:  p.DeclaredLocation,
		TechnicalLocation: p.TechnicalLocation,
		JoinDate:          p.JoinDate,
		LastNameChange:    p.LastNameChange,
		SharedChannels:    p.SharedChannels,
		Followers:         int(p.Followers),
		Following:         int(p.Following),
		NameChanges:       int(p.NameChanges),
		LikeFishing:       p.LikeFishing,
	}
}

func profileMsgFromDTO(p dto.ProfileDTO) *ProfileMsg {
	return &ProfileMsg{
		Username:          p.Username,
		DisplayName:       p.DisplayName,
		Bio:               p.Bio,
		DeclaredLocation:  p.DeclaredLocation,
		TechnicalLocation: p.TechnicalLocation,
		JoinDate:          p.JoinDate,
		LastNameChange:    p.LastNameChange,
		SharedChannels:    p.SharedChannels,
		Followers:         int32(p.Followers),
		Following:         int32(p.Following),
		NameChanges:       int32(p.NameChanges),
		LikeFishing:       p.LikeFishing,
	}
}

func reportMsgFromDTO(r dto.AnalysisReport) *ReportMsg {
	redFlags := make([]*FindingMsg, len(r.RedFlags))
	for i, f := range r.RedFlags {
		redFlags[i] = &FindingMsg{
			Category:    f.Category,
			Severity:    f.Severity,
			Message:     f.Message,
			ScoreImpact: int32(f.ScoreImpact),
		}
	}

	return &ReportMsg{
		ID:             r.ID.String(),
		Tool:           r.Meta.Tool,
		ToolVersion:    r.Meta.Version,
		Mode:           r.Meta.Mode,
		AnalysisDate:   r.Meta.AnalysisDate.UTC().Format(time.RFC3339),
		Disclaimer:     r.Meta.Disclaimer,
		RiskScore:      int32(r.RiskAssessment.Score),
		RiskLevel:      r.RiskAssessment.Level,
		RedFlagsCount:  int32(r.RiskAssessment.RedFlagsCount),
		Profile:        profileMsgFromDTO(r.Profile),
		RedFlags:       redFlags,
		Recommendation: r.Recommendation,
		Guidance:       r.Guidance,
	}
}
