package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNonFiniteFeature is returned when an attribute cannot be encoded as a finite feature
	ErrNonFiniteFeature = errors.New("non-finite feature value")

	// ErrInvalidPrice is returned when a price is zero, negative or not finite
	ErrInvalidPrice = errors.New("invalid price")
)

// Pipeline stages reported in ComputationError
const (
	StageNormalize = "normalize"
	StageEstimate  = "estimate"
	StageAdjust    = "adjust"
	StageAnalytics = "analytics"
)

// ComputationError is the single failure surfaced by the prediction pipeline
type ComputationError struct {
	Stage string
	Err   error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("prediction error: %s: %v", e.Stage, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
