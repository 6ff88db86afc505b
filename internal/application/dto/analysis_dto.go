package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/service"
)

// Tool identity stamped into every report's meta block.
const (
	ReportTool    = "DeepXCheck"
	ReportVersion = "1.0"
)

// ProfileDTO carries a profile record across the API boundary. The same shape
// is used for the analysis request and for the (redacted) echo in reports.
type ProfileDTO struct {
	Username          string   `json:"username"`
	DisplayName       string   `json:"display_name,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	DeclaredLocation  string   `json:"declared_location,omitempty"`
	TechnicalLocation string   `json:"technical_location,omitempty"`
	JoinDate          string   `json:"join_date,omitempty"`
	LastNameChange    string   `json:"last_name_change,omitempty"`
	SharedChannels    []string `json:"shared_channels,omitempty"`
	Followers         int      `json:"followers"`
	Following         int      `json:"following"`
	NameChanges       int      `json:"name_changes"`
	LikeFishing       bool     `json:"like_fishing"`
}

// ToModel converts the DTO to the domain profile record.
func (p ProfileDTO) ToModel() model.Profile {
	return model.Profile{
		Username:          p.Username,
		DisplayName:       p.DisplayName,
		Bio:               p.Bio,
		DeclaredLocation:  p.DeclaredLocation,
		TechnicalLocation: p.TechnicalLocation,
		JoinDate:          p.JoinDate,
		LastNameChange:    p.LastNameChange,
		SharedChannels:    p.SharedChannels,
		Followers:         p.Followers,
		Following:         p.Following,
		NameChanges:       p.NameChanges,
		LikeFishing:       p.LikeFishing,
	}
}

// ProfileFromModel maps a domain profile to its DTO.
func ProfileFromModel(p model.Profile) ProfileDTO {
	return ProfileDTO{
		Username:          p.Username,
		DisplayName:       p.DisplayName,
		Bio:               p.Bio,
		DeclaredLocation:  p.DeclaredLocation,
		TechnicalLocation: p.TechnicalLocation,
		JoinDate:          p.JoinDate,
		LastNameChange:    p.LastNameChange,
		SharedChannels:    p.SharedChannels,
		Followers:         p.Followers,
		Following:         p.Following,
		NameChanges:       p.NameChanges,
		LikeFishing:       p.LikeFishing,
	}
}

// AnalyzeProfileRequest is the input DTO for the AnalyzeProfile use case.
type AnalyzeProfileRequest struct {
	Profile ProfileDTO `json:"profile"`
	Mode    string     `json:"mode"`
}

// ReportMeta identifies the analyzer and the conditions of one report.
type ReportMeta struct {
	AnalysisDate time.Time `json:"analysis_date"`
	Tool         string    `json:"tool"`
	Version      string    `json:"version"`
	Mode         string    `json:"mode"`
	Disclaimer   string    `json:"disclaimer"`
}

// RiskAssessment summarizes the scoring outcome.
type RiskAssessment struct {
	Level         string `json:"level"`
	Score         int    `json:"score"`
	RedFlagsCount int    `json:"red_flags_count"`
}

// FindingDTO is one red flag in a report, already redacted for the mode.
type FindingDTO struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	ScoreImpact int    `json:"score_impact"`
}

// AnalysisReport is the mode-filtered view of one finished analysis.
type AnalysisReport struct {
	Meta           ReportMeta     `json:"meta"`
	Profile        ProfileDTO     `json:"profile"`
	RedFlags       []FindingDTO   `json:"red_flags"`
	Guidance       []string       `json:"guidance"`
	Recommendation string         `json:"recommendation"`
	RiskAssessment RiskAssessment `json:"risk_assessment"`
	ID             uuid.UUID      `json:"id"`
}

// AnalysisSummary is one row of an analysis history listing. The username is
// redacted with the mode the analysis was stored under.
type AnalysisSummary struct {
	AnalyzedAt     time.Time `json:"analyzed_at"`
	Username       string    `json:"username"`
	Mode           string    `json:"mode"`
	RiskLevel      string    `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
	RiskScore      int       `json:"risk_score"`
	RedFlagsCount  int       `json:"red_flags_count"`
	ID             uuid.UUID `json:"id"`
}

// NewAnalysisReport renders an analysis through the redactor, using the mode
// the analysis was requested with. Redaction never touches the stored
// aggregate, only this view.
func NewAnalysisReport(a *model.ProfileAnalysis, redactor *service.Redactor) AnalysisReport {
	mode := a.Mode()
	findings := redactor.Findings(a.Findings(), mode)

	redFlags := make([]FindingDTO, len(findings))
	for i, f := range findings {
		redFlags[i] = FindingDTO{
			Category:    f.Category.String(),
			Severity:    strings.ToLower(f.Severity.String()),
			Message:     f.Message,
			ScoreImpact: f.Weight,
		}
	}

	return AnalysisReport{
		ID: a.ID(),
		Meta: ReportMeta{
			Tool:         ReportTool,
			Version:      ReportVersion,
			Mode:         mode.String(),
			AnalysisDate: a.AnalyzedAt(),
			Disclaimer:   mode.Disclaimer(),
		},
		RiskAssessment: RiskAssessment{
			Score:         a.RiskScore(),
			Level:         a.RiskLevel().String(),
			RedFlagsCount: len(findings),
		},
		Profile:        ProfileFromModel(redactor.Profile(a.Profile(), mode)),
		RedFlags:       redFlags,
		Recommendation: a.Recommendation().String(),
		Guidance:       service.Guidance(a.RiskScore(), a.FindingCategories()),
	}
}

// NewAnalysisSummary maps an analysis to its history row.
func NewAnalysisSummary(a *model.ProfileAnalysis, redactor *service.Redactor) AnalysisSummary {
	return AnalysisSummary{
		ID:             a.ID(),
		Username:       redactor.Profile(a.Profile(), a.Mode()).Username,
		Mode:           a.Mode().String(),
		RiskScore:      a.RiskScore(),
		RiskLevel:      a.RiskLevel().String(),
		Recommendation: a.Recommendation().String(),
		RedFlagsCount:  len(a.Findings()),
		AnalyzedAt:     a.AnalyzedAt(),
	}
}
