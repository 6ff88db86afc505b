package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/port"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
	"github.com/Equity1137/deep-x-check/pkg/events"
	pgutil "github.com/Equity1137/deep-x-check/pkg/postgres"
)

// Compile-time interface check.
var _ port.AnalysisRepository = (*AnalysisRepository)(nil)

// AnalysisRepository implements port.AnalysisRepository using PostgreSQL.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new PostgreSQL-backed analysis repository.
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// profileRecord is the JSONB shape of the profile snapshot stored with each
// analysis. The snapshot keeps the raw input so EXPERT reports can be
// re-rendered later.
type profileRecord struct {
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

func profileRecordFromModel(p model.Profile) profileRecord {
	return profileRecord{
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

func (p profileRecord) toModel() model.Profile {
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

// Save persists an analysis with its findings and stages the pending domain
// events in the outbox, all in one transaction.
func (r *AnalysisRepository) Save(ctx context.Context, analysis *model.ProfileAnalysis) error {
	profileJSON, err := json.Marshal(profileRecordFromModel(analysis.Profile()))
	if err != nil {
		return fmt.Errorf("failed to marshal profile snapshot: %w", err)
	}

	var analyzedAt *time.Time
	if !analysis.AnalyzedAt().IsZero() {
		t := analysis.AnalyzedAt()
		analyzedAt = &t
	}

	return pgutil.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO profile_analyses (
				id, username, profile, mode,
				risk_score, risk_level, recommendation,
				analyzed_at, version, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (id) DO UPDATE SET
				profile = EXCLUDED.profile,
				risk_score = EXCLUDED.risk_score,
				risk_level = EXCLUDED.risk_level,
				recommendation = EXCLUDED.recommendation,
				analyzed_at = EXCLUDED.analyzed_at,
				version = EXCLUDED.version,
				updated_at = EXCLUDED.updated_at
		`

		_, err := tx.Exec(ctx, query,
			analysis.ID(),
			analysis.Profile().Username,
			profileJSON,
			analysis.Mode().String(),
			analysis.RiskScore(),
			analysis.RiskLevel().String(),
			analysis.Recommendation().String(),
			analyzedAt,
			analysis.Version(),
			analysis.CreatedAt(),
			analysis.UpdatedAt(),
		)
		if err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}

		// Delete existing findings and insert fresh ones, keeping check order.
		_, err = tx.Exec(ctx, `DELETE FROM analysis_findings WHERE analysis_id = $1`, analysis.ID())
		if err != nil {
			return fmt.Errorf("failed to delete old findings: %w", err)
		}

		for i, f := range analysis.Findings() {
			_, err = tx.Exec(ctx, `
				INSERT INTO analysis_findings (analysis_id, position, category, severity, message, weight)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, analysis.ID(), i, f.Category.String(), f.Severity.String(), f.Message, f.Weight)
			if err != nil {
				return fmt.Errorf("failed to save finding: %w", err)
			}
		}

		// Stage domain events for the relay.
		for _, evt := range analysis.DomainEvents() {
			entry := events.NewOutboxEntry(evt)
			_, err = tx.Exec(ctx, `
				INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, entry.ID, entry.AggregateID, entry.AggregateType, entry.EventType, entry.Payload, entry.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to stage outbox event: %w", err)
			}
		}

		return nil
	})
}

// FindByID retrieves an analysis by its unique identifier. Returns nil without
// error when no analysis matches.
func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ProfileAnalysis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile, mode, risk_score, risk_level, recommendation,
			analyzed_at, version, created_at, updated_at
		FROM profile_analyses
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read analysis: %w", err)
		}
		return nil, nil
	}

	return r.scanAnalysis(ctx, rows)
}

// FindByUsername retrieves analyses for a username, newest first.
func (r *AnalysisRepository) FindByUsername(ctx context.Context, username string, limit, offset int) ([]*model.ProfileAnalysis, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, profile, mode, risk_score, risk_level, recommendation,
			analyzed_at, version, created_at, updated_at
		FROM profile_analyses
		WHERE username = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, username, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*model.ProfileAnalysis
	for rows.Next() {
		analysis, err := r.scanAnalysis(ctx, rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return analyses, nil
}

// scanAnalysis reads one analysis from a pgx.Rows cursor and loads its findings.
func (r *AnalysisRepository) scanAnalysis(ctx context.Context, rows pgx.Rows) (*model.ProfileAnalysis, error) {
	var (
		id                uuid.UUID
		profileJSON       []byte
		modeStr           string
		riskScore         int
		riskLevelStr      string
		recommendationStr string
		analyzedAt        *time.Time
		version           int
		createdAt         time.Time
		updatedAt         time.Time
	)

	err := rows.Scan(
		&id, &profileJSON, &modeStr, &riskScore, &riskLevelStr, &recommendationStr,
		&analyzedAt, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	var record profileRecord
	if err := json.Unmarshal(profileJSON, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile snapshot: %w", err)
	}

	mode, err := valueobject.ModeFromString(modeStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mode: %w", err)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}

	recommendation, err := valueobject.RecommendationFromString(recommendationStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recommendation: %w", err)
	}

	findings, err := r.loadFindings(ctx, id)
	if err != nil {
		return nil, err
	}

	var analyzedAtVal time.Time
	if analyzedAt != nil {
		analyzedAtVal = *analyzedAt
	}

	return model.Reconstruct(
		id, record.toModel(), mode, findings,
		riskScore, riskLevel, recommendation,
		analyzedAtVal, version, createdAt, updatedAt,
	), nil
}

func (r *AnalysisRepository) loadFindings(ctx context.Context, analysisID uuid.UUID) ([]model.Finding, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT category, severity, message, weight
		FROM analysis_findings
		WHERE analysis_id = $1
		ORDER BY position
	`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var findings []model.Finding
	for rows.Next() {
		var (
			categoryStr string
			severityStr string
			message     string
			weight      int
		)
		if err := rows.Scan(&categoryStr, &severityStr, &message, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}

		category, err := valueobject.CategoryFromString(categoryStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}

		severity, err := valueobject.SeverityFromString(severityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse severity: %w", err)
		}

		findings = append(findings, model.Finding{
			Category: category,
			Severity: severity,
			Message:  message,
			Weight:   weight,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate findings: %w", err)
	}

	if findings == nil {
		findings = make([]model.Finding, 0)
	}

	return findings, nil
}
