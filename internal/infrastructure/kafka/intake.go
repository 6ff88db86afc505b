package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Equity1137/deep-x-check/internal/application/dto"
	"github.com/Equity1137/deep-x-check/internal/application/usecase"
	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
	pkgkafka "github.com/Equity1137/deep-x-check/pkg/kafka"
)

// IntakeWorker consumes profile records from the intake topic and runs them
// through the analysis pipeline. Records that cannot ever succeed (malformed
// JSON, invalid profiles, unknown modes) are logged and committed; transient
// failures leave the offset uncommitted so the group redelivers.
type IntakeWorker struct {
	analyze *usecase.AnalyzeProfile
	logger  *slog.Logger
}

// NewIntakeWorker creates an intake worker around the analyze use case.
func NewIntakeWorker(analyze *usecase.AnalyzeProfile, logger *slog.Logger) *IntakeWorker {
	return &IntakeWorker{
		analyze: analyze,
		logger:  logger,
	}
}

// Handle processes one intake message. It satisfies kafka.Handler.
func (w *IntakeWorker) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var req dto.AnalyzeProfileRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		w.logger.Error("dropping malformed intake record", "error", err)
		return nil
	}

	report, err := w.analyze.Execute(ctx, req)
	if err != nil {
		var inputErr *model.InvalidInputError
		var modeErr *valueobject.UnknownModeError
		if errors.As(err, &inputErr) || errors.As(err, &modeErr) {
			w.logger.Warn("dropping invalid intake record", "error", err)
			return nil
		}
		return err
	}

	w.logger.InfoContext(ctx, "analyzed intake profile",
		"analysis_id", report.ID,
		"mode", report.Meta.Mode,
		"risk_score", report.RiskAssessment.Score,
		"risk_level", report.RiskAssessment.Level,
	)
	return nil
}
