package types

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// weightSumTolerance is how far the weight sum may drift from 1.0 before the
// configuration is rejected at the API boundary. The scoring core itself uses
// weights as given and performs no renormalization.
const weightSumTolerance = 0.1

// Weights configures the relative importance of the four LLM sub-scores.
type Weights struct {
	Skills     float64 `json:"skills" validate:"gte=0"`
	Experience float64 `json:"experience" validate:"gte=0"`
	Location   float64 `json:"location" validate:"gte=0"`
	Company    float64 `json:"company" validate:"gte=0"`
}

// DefaultWeights returns the standard weighting used when the caller supplies
// none.
func DefaultWeights() Weights {
	return Weights{Skills: 0.4, Experience: 0.3, Location: 0.2, Company: 0.1}
}

// Sum returns the total of all four weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Location + w.Company
}

var weightsValidator = validator.New()

// Validate checks that all weights are non-negative and that they sum to 1.0
// within tolerance. Called at the configuration/API boundary before scoring.
func (w Weights) Validate() error {
	if err := weightsValidator.Struct(w); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	if diff := math.Abs(w.Sum() - 1.0); diff > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0 within %.1f, got %.3f", weightSumTolerance, w.Sum())
	}
	return nil
}
