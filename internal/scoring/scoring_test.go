package scoring

import (
	"testing"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine_Identical(t *testing.T) {
	sim, err := Cosine([]float32{1, 2, 3}, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosine_Orthogonal(t *testing.T) {
	sim, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestCosine_ZeroVector(t *testing.T) {
	sim, err := Cosine([]float32{0, 0}, []float32{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestCosine_DimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1}, []float32{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRoleFit_ClampsNegative(t *testing.T) {
	rfs, err := RoleFit([]float32{1, 0}, []float32{-1, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, rfs)
}

func TestRoleFit_Rounded(t *testing.T) {
	rfs, err := RoleFit([]float32{1, 2}, []float32{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.8, rfs)
}

func TestExperienceCompatibility_Steps(t *testing.T) {
	tests := []struct {
		name      string
		required  int
		candidate int
		want      float64
	}{
		{"meets", 5, 5, 1.0},
		{"exceeds", 5, 8, 1.0},
		{"nearly", 4, 3, 0.8},
		{"halfway", 4, 2, 0.5},
		{"far below", 5, 2, 0.0},
		{"overqualified penalty", 4, 11, 0.9},
		{"no requirement", 0, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ExperienceCompatibility(tt.required, tt.candidate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExperienceCompatibility_Underqualified(t *testing.T) {
	score, detail := ExperienceCompatibility(5, 2)

	assert.Equal(t, 0.0, score)
	assert.Equal(t, 3, detail.Gap)
	assert.True(t, detail.Underqualified)
	assert.False(t, detail.Overqualified)
	assert.Equal(t, 40.0, detail.PercentageMatch)
}

func TestExperienceCompatibility_Overqualified(t *testing.T) {
	_, detail := ExperienceCompatibility(3, 7)

	assert.Equal(t, -4, detail.Gap)
	assert.True(t, detail.Overqualified)
	assert.Equal(t, 100.0, detail.PercentageMatch)
}

func TestComposite_Breakdown(t *testing.T) {
	composite, breakdown := Composite(0.8, 0.6, 1.0, DefaultWeights())

	assert.Equal(t, 0.76, composite)
	assert.Equal(t, 0.32, breakdown.RFSContribution)
	assert.Equal(t, 0.24, breakdown.DCSContribution)
	assert.Equal(t, 0.2, breakdown.ELCContribution)
	assert.Equal(t, composite, breakdown.Total)
}

func TestComposite_Bound(t *testing.T) {
	values := []float64{0, 0.1234, 0.5, 0.7777, 1}
	w := DefaultWeights()
	for _, rfs := range values {
		for _, dcs := range values {
			for _, elc := range values {
				composite, _ := Composite(rfs, dcs, elc, w)
				assert.GreaterOrEqual(t, composite, 0.0)
				assert.LessOrEqual(t, composite, 1.0)
				assert.Equal(t, numeric.Round4(0.4*rfs+0.4*dcs+0.2*elc), composite)
			}
		}
	}
}

func TestValidateWeights(t *testing.T) {
	assert.NoError(t, ValidateWeights(DefaultWeights()))
	assert.NoError(t, ValidateWeights(types.Weights{RFS: 0.5, DCS: 0.3, ELC: 0.2}))
	assert.Error(t, ValidateWeights(types.Weights{RFS: 0.5, DCS: 0.5, ELC: 0.5}))
	assert.Error(t, ValidateWeights(types.Weights{RFS: 1.2, DCS: -0.2, ELC: 0}))
}

func TestBundle(t *testing.T) {
	match := &types.SkillMatch{MatchScore: 0.6667}
	bundle, detail, err := Bundle([]float32{1, 0}, []float32{1, 0}, match, 5, 2, DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 1.0, bundle.RFS)
	assert.Equal(t, 0.6667, bundle.DCS)
	assert.Equal(t, 0.0, bundle.ELC)
	assert.Equal(t, 0.6667, bundle.Composite)
	assert.Equal(t, 3, detail.Gap)
}

func TestBundle_DimensionMismatch(t *testing.T) {
	_, _, err := Bundle([]float32{1}, []float32{1, 0}, nil, 1, 1, DefaultWeights())
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}
