package face

import (
	"errors"
	"fmt"
)

// Sentinel errors for the face package. A contract violation indicates a
// bug in an upstream collaborator (bad frame dimensions, unusable
// configuration), never a transient fault worth retrying.
var (
	// ErrContractViolation is the base error for caller contract breaches.
	ErrContractViolation = errors.New("face: contract violation")

	// ErrInvalidDimensions indicates a detection carried non-positive
	// image dimensions.
	ErrInvalidDimensions = fmt.Errorf("%w: non-positive image dimensions", ErrContractViolation)

	// ErrInvalidConfig indicates a Config failed validation.
	ErrInvalidConfig = fmt.Errorf("%w: invalid config", ErrContractViolation)
)

// IsContractViolation reports whether err stems from a caller contract
// breach.
func IsContractViolation(err error) bool {
	return errors.Is(err, ErrContractViolation)
}
