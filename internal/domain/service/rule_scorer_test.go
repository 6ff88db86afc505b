package service_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Equity1137/deep-x-check/internal/domain/model"
	"github.com/Equity1137/deep-x-check/internal/domain/service"
	"github.com/Equity1137/deep-x-check/internal/domain/valueobject"
)

func TestRuleScorer_QuietProfile(t *testing.T) {
	scorer := service.NewRuleScorer(service.DefaultRuleConfig())

	output := scorer.Score(model.Profile{
		Username:  "@gardener_jane",
		Bio:       "I like plants and hiking.",
		JoinDate:  "June 2019",
		Followers: 200,
		Following: 180,
	})

	assert.Equal(t, 0, output.Score)
	assert.Empty(t, output.Findings)
}

func TestRuleScorer_GeoAndScamBio(t *testing.T) {
	scorer := service.NewRuleScorer(service.DefaultRuleConfig())

	output := scorer.Score(model.Profile{
		Username:          "@CryptoQueen_NY",
		Bio:               "Blessed! DM me on cashapp for alpha",
		DeclaredLocation:  "New York, USA",
		TechnicalLocation: "Lagos, Nigeria",
		JoinDate:          "June 2019",
		Followers:         200,
		Following:         180,
	})

	// geo_mismatch 3 + scam_bio 2 (four keywords) = 5
	assert.Equal(t, 5, output.Score)
	require.Len(t, output.Findings, 2)
	assert.True(t, valueobject.CategoryGeoMismatch.Equal(output.Findings[0].Category))
	assert.True(t, valueobject.CategoryScamBio.Equal(output.Findings[1].Category))
}

func TestRuleScorer_FindingsInCheckOrder(t *testing.T) {
	scorer := service.NewRuleScorer(service.DefaultRuleConfig())

	output := scorer.Score(model.Profile{
		Username:       "@user",
		Bio:            "Join t.me/alpha, blessed fam",
		SharedChannels: []string{"t.me/alpha", "t.me/beta"},
		LikeFishing:    true,
	})

	// telegram_promotion 2 + scam_bio 1 + coordinated_network 3 + like_fishing 2 = 8
	assert.Equal(t, 8, output.Score)
	require.Len(t, output.Findings, 4)
	assert.True(t, valueobject.CategoryTelegramPromotion.Equal(output.Findings[0].Category))
	assert.True(t, valueobject.CategoryScamBio.Equal(output.Findings[1].Category))
	assert.True(t, valueobject.CategoryCoordinatedNetwork.Equal(output.Findings[2].Category))
	assert.True(t, valueobject.CategoryLikeFishing.Equal(output.Findings[3].Category))
}

func TestRuleScorer_ScoreCappedAtMax(t *testing.T) {
	scorer := service.NewRuleScorer(service.DefaultRuleConfig())

	output := scorer.Score(model.Profile{
		Username:          "@user",
		DisplayName:       "Crypto Queen",
		Bio:               "Blessed! DM me on cashapp, t.me/alpha pump moon 100x",
		DeclaredLocation:  "New York, USA",
		TechnicalLocation: "Lagos, Nigeria",
		JoinDate:          fmt.Sprintf("March %d", time.Now().Year()),
		Followers:         1001,
		Following:         20000,
		NameChanges:       4,
		LastNameChange:    "last month",
		SharedChannels:    []string{"t.me/alpha", "t.me/beta", "t.me/gamma"},
		LikeFishing:       true,
	})

	// All eight checks trigger; the raw sum exceeds the cap.
	assert.Equal(t, 10, output.Score)
	assert.Len(t, output.Findings, 8)
}

func TestRuleScorer_Deterministic(t *testing.T) {
	scorer := service.NewRuleScorer(service.DefaultRuleConfig())

	profile := model.Profile{
		Username:          "@user",
		Bio:               "Blessed! DM me on cashapp, t.me/alpha",
		DeclaredLocation:  "Texas",
		TechnicalLocation: "Abuja",
		SharedChannels:    []string{"a", "b"},
		LikeFishing:       true,
	}

	first := scorer.Score(profile)
	second := scorer.Score(profile)

	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.Findings, second.Findings)
}

func TestRuleScorer_MonotonicUnderAddedConditions(t *testing.T) {
	scorer := service.NewRuleScorer(service.DefaultRuleConfig())

	base := model.Profile{
		Username:  "@user",
		Bio:       "Blessed fam",
		Followers: 200,
		Following: 180,
	}
	baseScore := scorer.Score(base).Score

	withMore := base
	withMore.LikeFishing = true
	withMore.SharedChannels = []string{"a", "b"}

	assert.GreaterOrEqual(t, scorer.Score(withMore).Score, baseScore)
}

func TestRuleScorer_ScoreEqualsWeightSum(t *testing.T) {
	scorer := service.NewRuleScorer(service.DefaultRuleConfig())

	output := scorer.Score(model.Profile{
		Username:    "@user",
		Bio:         "Join t.me/alpha",
		LikeFishing: true,
	})

	sum := 0
	for _, f := range output.Findings {
		sum += f.Weight
	}
	assert.Equal(t, sum, output.Score)
}
