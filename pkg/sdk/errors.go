package heartcheck

import "github.com/kailas-cloud/heartcheck/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrArtifactNotFound = domain.ErrArtifactNotFound
	ErrInvalidArtifact  = domain.ErrInvalidArtifact
	ErrShapeMismatch    = domain.ErrShapeMismatch
	ErrMissingField     = domain.ErrMissingField
	ErrFieldOutOfRange  = domain.ErrFieldOutOfRange
	ErrMalformedValue   = domain.ErrMalformedValue
	ErrUnknownChoice    = domain.ErrUnknownChoice
	ErrUnknownCategory  = domain.ErrUnknownCategory
)
