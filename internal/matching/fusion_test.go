package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuse_NormalCase(t *testing.T) {
	weighted := 1.0
	fused := Fuse(0.5, &weighted)

	// 0.3*0.5 + 0.7*1.0 = 0.85
	assert.InDelta(t, 0.85, fused.Score, 1e-12)
	assert.False(t, fused.Degraded)
}

func TestFuse_DegradedEqualsSimilarity(t *testing.T) {
	fused := Fuse(0.62, nil)

	assert.Equal(t, 0.62, fused.Score)
	assert.True(t, fused.Degraded)
}

func TestFuse_ClampsToUnitInterval(t *testing.T) {
	for _, tc := range []struct {
		name       string
		similarity float64
		weighted   *float64
	}{
		{"negative similarity degraded", -0.8, nil},
		{"negative similarity with weighted", -1.0, ptr(0.0)},
		{"oversized weighted", 1.0, ptr(1.5)},
		{"both at max", 1.0, ptr(1.0)},
		{"both at min", -1.0, ptr(0.0)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fused := Fuse(tc.similarity, tc.weighted)
			assert.GreaterOrEqual(t, fused.Score, 0.0)
			assert.LessOrEqual(t, fused.Score, 1.0)
		})
	}
}

func TestFuse_GridStaysInRange(t *testing.T) {
	for sim := -1.0; sim <= 1.0; sim += 0.25 {
		for w := 0.0; w <= 1.0; w += 0.25 {
			weighted := w
			fused := Fuse(sim, &weighted)
			assert.GreaterOrEqual(t, fused.Score, 0.0)
			assert.LessOrEqual(t, fused.Score, 1.0)
		}
	}
}

func ptr(v float64) *float64 { return &v }
