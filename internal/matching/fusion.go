package matching

// Fusion weights for the two scoring stages.
const (
	similarityWeight = 0.3
	weightedWeight   = 0.7
)

// FusedScore is the final outcome of score fusion. Degraded marks results
// computed from similarity alone so callers can flag them for diagnostics
// rather than treating the fallback as a normal score.
type FusedScore struct {
	Score    float64
	Degraded bool
}

// Fuse blends the stage-1 similarity with the stage-2 weighted score. A nil
// weighted score means stage 2 was unavailable: the result is the similarity
// alone, tagged degraded. The final score is always clamped to [0,1].
func Fuse(similarity float64, weighted *float64) FusedScore {
	if weighted == nil {
		return FusedScore{Score: clamp01(similarity), Degraded: true}
	}
	return FusedScore{Score: clamp01(similarityWeight*similarity + weightedWeight*(*weighted))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
