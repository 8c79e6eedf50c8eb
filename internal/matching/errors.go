// Package matching implements the match-scoring pipeline: embedding cosine
// similarity, LLM-judged weighted sub-scores, and their fusion into a single
// match score per profile/posting pair.
package matching

import "fmt"

// DimensionMismatchError reports vectors of unequal length passed to the
// similarity function. This is a programming-contract violation: valid
// embeddings from one model always share a dimension.
type DimensionMismatchError struct {
	LenA int
	LenB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: %d vs %d", e.LenA, e.LenB)
}

// ScoreUnavailableError reports that LLM sub-scores could not be obtained or
// parsed for one posting. The fusion stage recovers by falling back to the
// similarity-only degraded score.
type ScoreUnavailableError struct {
	Message string
	Cause   error
}

func (e *ScoreUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("sub-scores unavailable: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("sub-scores unavailable: %s", e.Message)
}

func (e *ScoreUnavailableError) Unwrap() error {
	return e.Cause
}

// ExternalServiceError reports an outright failure of the embedding or LLM
// service. For similarity input it is fatal to that posting's scoring; for
// sub-scores it is treated the same as ScoreUnavailableError.
type ExternalServiceError struct {
	Service string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service error: %v", e.Service, e.Cause)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}
