package service_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/service"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
)

type mockClassifier struct {
	err         error
	probability float64
}

func (m *mockClassifier) Classify(_ context.Context, _ string) (float64, error) {
	return m.probability, m.err
}

func newHybrid(classifier *mockClassifier) *service.HybridScorer {
	rules := service.NewRuleScorer(service.DefaultRuleConfig())
	return service.NewHybridScorer(rules, classifier, 0.75, slog.Default())
}

func TestHybridScorer_AddsBioLanguageFinding(t *testing.T) {
	scorer := newHybrid(&mockClassifier{probability: 0.8})

	// Bio trips no scam keyword, so only the classifier can flag it.
	output := scorer.Score(model.Profile{
		Username: "@user",
		Bio:      "Guaranteed returns, trust the process, message for details",
	})

	require.Len(t, output.Findings, 1)
	assert.True(t, valueobject.CategoryBioLanguage.Equal(output.Findings[0].Category))
	assert.True(t, valueobject.SeverityMedium.Equal(output.Findings[0].Severity))
	assert.Equal(t, 1, output.Findings[0].Weight)
	assert.Equal(t, 1, output.Score)
}

func TestHybridScorer_HighConfidenceEscalatesWeight(t *testing.T) {
	scorer := newHybrid(&mockClassifier{probability: 0.95})

	output := scorer.Score(model.Profile{
		Username: "@user",
		Bio:      "Guaranteed returns, trust the process",
	})

	require.Len(t, output.Findings, 1)
	assert.Equal(t, 2, output.Findings[0].Weight)
	assert.Equal(t, 2, output.Score)
}

func TestHybridScorer_BelowThresholdIsRulesOnly(t *testing.T) {
	scorer := newHybrid(&mockClassifier{probability: 0.5})

	output := scorer.Score(model.Profile{
		Username: "@user",
		Bio:      "Guaranteed returns, trust the process",
	})

	assert.Equal(t, 0, output.Score)
	assert.Empty(t, output.Findings)
}

func TestHybridScorer_SkipsWhenKeywordCheckAlreadyFlagged(t *testing.T) {
	scorer := newHybrid(&mockClassifier{probability: 0.99})

	output := scorer.Score(model.Profile{
		Username: "@user",
		Bio:      "Blessed! DM me on cashapp",
	})

	// scam_bio from the keyword check, no duplicate bio_language on top.
	require.Len(t, output.Findings, 1)
	assert.True(t, valueobject.CategoryScamBio.Equal(output.Findings[0].Category))
	for _, f := range output.Findings {
		assert.False(t, valueobject.CategoryBioLanguage.Equal(f.Category))
	}
}

func TestHybridScorer_FallbackOnClassifierError(t *testing.T) {
	scorer := newHybrid(&mockClassifier{err: fmt.Errorf("classifier unavailable")})

	output := scorer.Score(model.Profile{
		Username:    "@user",
		Bio:         "Guaranteed returns",
		LikeFishing: true,
	})

	// Rules-only: the like_fishing finding survives, nothing from the classifier.
	require.Len(t, output.Findings, 1)
	assert.True(t, valueobject.CategoryLikeFishing.Equal(output.Findings[0].Category))
	assert.Equal(t, 2, output.Score)
}

func TestHybridScorer_ScoreStaysCapped(t *testing.T) {
	scorer := newHybrid(&mockClassifier{probability: 0.95})

	// The bio trips the telegram check but no scam keyword, so bio_language
	// lands on top of an already-capped rule score.
	output := scorer.Score(model.Profile{
		Username:          "@user",
		DeclaredLocation:  "New York, USA",
		TechnicalLocation: "Lagos, Nigeria",
		Bio:               "Guaranteed returns on t.me/quickgains",
		Followers:         100,
		Following:         2000,
		NameChanges:       5,
		SharedChannels:    []string{"a", "b", "c"},
		LikeFishing:       true,
	})

	assert.Equal(t, 10, output.Score)

	last := output.Findings[len(output.Findings)-1]
	assert.True(t, valueobject.CategoryBioLanguage.Equal(last.Category))
}
