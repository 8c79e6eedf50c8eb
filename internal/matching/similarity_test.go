package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_Symmetry(t *testing.T) {
	a := []float64{0.2, 0.5, 0.9, 0.1}
	b := []float64{0.7, 0.3, 0.4, 0.8}

	ab, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	ba, err := CosineSimilarity(b, a)
	require.NoError(t, err)

	assert.InDelta(t, ab, ba, 1e-12)
}

func TestCosineSimilarity_SelfSimilarity(t *testing.T) {
	v := []float64{0.3, 0.1, 0.8}

	sim, err := CosineSimilarity(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-12)
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	zero := []float64{0, 0, 0}
	v := []float64{1, 2, 3}

	sim, err := CosineSimilarity(zero, v)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
	assert.False(t, math.IsNaN(sim))

	sim, err = CosineSimilarity(zero, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sim)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	require.Error(t, err)

	var dme *DimensionMismatchError
	require.ErrorAs(t, err, &dme)
	assert.Equal(t, 2, dme.LenA)
	assert.Equal(t, 3, dme.LenB)
}

func TestCosineSimilarity_OrthogonalVectors(t *testing.T) {
	sim, err := CosineSimilarity([]float64{1, 0}, []float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sim, 1e-12)
}

func TestCosineSimilarity_OppositeVectors(t *testing.T) {
	sim, err := CosineSimilarity([]float64{1, 1}, []float64{-1, -1})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, sim, 1e-12)
}
