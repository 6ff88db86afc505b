package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
)

func TestRiskLevel_String(t *testing.T) {
	assert.Equal(t, "MINIMAL", valueobject.RiskLevelMinimal.String())
	assert.Equal(t, "LOW", valueobject.RiskLevelLow.String())
	assert.Equal(t, "MEDIUM", valueobject.RiskLevelMedium.String())
	assert.Equal(t, "HIGH", valueobject.RiskLevelHigh.String())
	assert.Equal(t, "CRITICAL", valueobject.RiskLevelCritical.String())
}

func TestRiskLevel_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.RiskLevel
		wantErr  bool
	}{
		{"MINIMAL", valueobject.RiskLevelMinimal, false},
		{"LOW", valueobject.RiskLevelLow, false},
		{"MEDIUM", valueobject.RiskLevelMedium, false},
		{"HIGH", valueobject.RiskLevelHigh, false},
		{"CRITICAL", valueobject.RiskLevelCritical, false},
		{"INVALID", valueobject.RiskLevel{}, true},
		{"", valueobject.RiskLevel{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RiskLevelFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestRiskLevel_FromScore(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.RiskLevel
		score    int
	}{
		{name: "score 0 is MINIMAL", expected: valueobject.RiskLevelMinimal, score: 0},
		{name: "score 1 is MINIMAL", expected: valueobject.RiskLevelMinimal, score: 1},
		{name: "score 2 is LOW", expected: valueobject.RiskLevelLow, score: 2},
		{name: "score 3 is LOW", expected: valueobject.RiskLevelLow, score: 3},
		{name: "score 4 is MEDIUM", expected: valueobject.RiskLevelMedium, score: 4},
		{name: "score 5 is MEDIUM", expected: valueobject.RiskLevelMedium, score: 5},
		{name: "score 6 is HIGH", expected: valueobject.RiskLevelHigh, score: 6},
		{name: "score 7 is HIGH", expected: valueobject.RiskLevelHigh, score: 7},
		{name: "score 8 is CRITICAL", expected: valueobject.RiskLevelCritical, score: 8},
		{name: "score 10 is CRITICAL", expected: valueobject.RiskLevelCritical, score: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valueobject.RiskLevelFromScore(tt.score)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for score %d, got %s", tt.expected.String(), tt.score, result.String())
		})
	}
}

func TestRiskLevel_Equal(t *testing.T) {
	assert.True(t, valueobject.RiskLevelLow.Equal(valueobject.RiskLevelLow))
	assert.False(t, valueobject.RiskLevelLow.Equal(valueobject.RiskLevelHigh))
}

func TestRiskLevel_IsZero(t *testing.T) {
	var zero valueobject.RiskLevel
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.RiskLevelMinimal.IsZero())
}
