package contract

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction marks a malformed descriptor rejected at build time.
	ErrConstruction = errors.New("invalid contract descriptor")
	// ErrEvaluation marks a payout that could not be computed for an outcome.
	ErrEvaluation = errors.New("payout evaluation failed")
	// ErrInvalidParameter marks a bad observed value or parameter in a combiner call.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ConstructionError reports one descriptor field that failed validation.
type ConstructionError struct {
	Field  string // e.g. "points[1][2].outcome"
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ConstructionError) Unwrap() error { return ErrConstruction }

// EvaluationError aborts a single evaluation (and any range pass using it).
type EvaluationError struct {
	Outcome int64
	Reason  string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("outcome %d: %s", e.Outcome, e.Reason)
}

func (e *EvaluationError) Unwrap() error { return ErrEvaluation }

// InvalidParameterError is raised per combiner call. Index is -1 when the
// problem is not tied to a single parameter.
type InvalidParameterError struct {
	Index  int
	Reason string
}

func (e *InvalidParameterError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("parameter %d: %s", e.Index, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

func constructionf(field, format string, args ...any) error {
	return &ConstructionError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
