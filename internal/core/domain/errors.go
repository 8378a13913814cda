package domain

import "errors"

// ============================================================================
// Quote Errors
// ============================================================================

// Validation errors
var (
	ErrMissingInput     = errors.New("no file uploaded")
	ErrInvalidFileSize  = errors.New("file size must be a non-negative integer")
	ErrFileTooLarge     = errors.New("file exceeds the maximum upload size")
	ErrInvalidRates     = errors.New("invalid pricing rates")
	ErrInvalidOracleURL = errors.New("price oracle URL is required")
)

// Computation errors
var (
	ErrComputationFailure = errors.New("price computation failed")
	ErrOracleUnavailable  = errors.New("price oracle unavailable")
)
