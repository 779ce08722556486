package quality_test

import (
	"testing"

	"github.com/hoopsync/hsdb/pkg/compare"
	"github.com/hoopsync/hsdb/pkg/config"
	"github.com/hoopsync/hsdb/pkg/quality"
	"github.com/hoopsync/hsdb/pkg/severity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScorer(t *testing.T) *quality.Scorer {
	t.Helper()
	s, err := quality.New(config.New().Quality)
	require.NoError(t, err)
	return s
}

func TestScoreCleanMultiSource(t *testing.T) {
	s := newScorer(t)

	res := s.Score(2, nil)
	assert.Equal(t, 95, res.Score)
	assert.Equal(t, quality.UncertaintyLow, res.Uncertainty)
	assert.True(t, res.TrainingEligible)
	assert.Equal(t, quality.IssueFlags{}, res.Flags)
}

func TestScoreOneMediumDiscrepancy(t *testing.T) {
	s := newScorer(t)

	res := s.Score(2, []quality.Issue{
		{Field: compare.FieldEventCount, Severity: severity.Medium},
	})
	assert.Equal(t, 90, res.Score)
	assert.Equal(t, quality.UncertaintyLow, res.Uncertainty)
	assert.True(t, res.Flags.EventCount)
	assert.NotEmpty(t, res.Notes)
}

func TestScoreOneHighDiscrepancy(t *testing.T) {
	s := newScorer(t)

	res := s.Score(2, []quality.Issue{
		{Field: compare.FieldHomeScore, Severity: severity.High},
	})
	assert.Equal(t, 85, res.Score)
	assert.Equal(t, quality.UncertaintyMedium, res.Uncertainty)
	assert.True(t, res.Flags.Score)
}

func TestScoreSingleSource(t *testing.T) {
	s := newScorer(t)

	res := s.Score(1, nil)
	assert.Equal(t, 70, res.Score)
	assert.Equal(t, quality.UncertaintyMedium, res.Uncertainty)
	assert.True(t, res.TrainingEligible, "cutoff is below 70")
	assert.Contains(t, res.Notes, "single-source")
}

func TestScoreFloor(t *testing.T) {
	s := newScorer(t)

	// Six HIGH discrepancies would take 95 to 35; the floor holds at 50.
	issues := make([]quality.Issue, 6)
	for i := range issues {
		issues[i] = quality.Issue{
			Field:    compare.FieldGameDate,
			Severity: severity.High,
		}
	}
	res := s.Score(3, issues)
	assert.Equal(t, 50, res.Score)
	assert.Equal(t, quality.UncertaintyHigh, res.Uncertainty)
	assert.True(t, res.Flags.Timing)
	assert.True(t, res.TrainingEligible)
}

func TestScoreBounds(t *testing.T) {
	cfg := config.New().Quality
	cfg.Floor = 0
	cfg.TrainingCutoff = 60
	s, err := quality.New(cfg)
	require.NoError(t, err)

	issues := make([]quality.Issue, 20)
	for i := range issues {
		issues[i] = quality.Issue{
			Field:    compare.FieldAwayScore,
			Severity: severity.High,
		}
	}
	res := s.Score(2, issues)
	assert.GreaterOrEqual(t, res.Score, 0)
	assert.LessOrEqual(t, res.Score, 100)
	assert.False(t, res.TrainingEligible)
}

func TestUncertaintyFor(t *testing.T) {
	tests := []struct {
		score int
		want  quality.Uncertainty
	}{
		{100, quality.UncertaintyLow},
		{90, quality.UncertaintyLow},
		{89, quality.UncertaintyMedium},
		{70, quality.UncertaintyMedium},
		{69, quality.UncertaintyHigh},
		{0, quality.UncertaintyHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, quality.UncertaintyFor(tt.score),
			"score %d", tt.score)
	}
}

func TestTrainingWeight(t *testing.T) {
	assert.InEpsilon(t, 0.95, quality.TrainingWeight(95), 1e-9)
	assert.InEpsilon(t, 0.5, quality.TrainingWeight(50), 1e-9)
	assert.Zero(t, quality.TrainingWeight(0))
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		msg string
		mod func(*config.QualityConfig)
	}{
		{"baseline above 100", func(c *config.QualityConfig) {
			c.MultiSourceBaseline = 120
		}},
		{"negative baseline", func(c *config.QualityConfig) {
			c.SingleSourceBaseline = -5
		}},
		{"negative penalty", func(c *config.QualityConfig) {
			c.PenaltyMedium = -1
		}},
		{"floor above 100", func(c *config.QualityConfig) {
			c.Floor = 150
		}},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			cfg := config.New().Quality
			tt.mod(&cfg)
			_, err := quality.New(cfg)
			assert.Error(t, err)
		})
	}
}
