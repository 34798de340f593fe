package errors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	// Configuration errors
	ErrInvalidKnowledgeSize = errors.New("invalid background knowledge size: must be a positive integer")
	ErrInvalidTolerance     = errors.New("invalid tolerance: must be between 0 and 1")
	ErrInvalidPrecision     = errors.New("invalid precision level")
	ErrUnknownAttack        = errors.New("unknown attack name")

	// Computation errors
	ErrDegenerateAggregation = errors.New("degenerate aggregation: instance matched no records")
	ErrInsufficientVisits    = errors.New("insufficient visits for attack")

	// Ingestion errors
	ErrMalformedRow  = errors.New("malformed dataset row")
	ErrEmptyDataset  = errors.New("dataset contains no records")
	ErrUnknownKind   = errors.New("unknown record kind")
	ErrUnknownFormat = errors.New("unknown dataset format")
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeComputation   ErrorType = "computation"
	ErrorTypeIngestion     ErrorType = "ingestion"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents an application-specific error with additional context
type AppError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with application context
func WrapError(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewConfigurationError creates a configuration error. Configuration errors
// are reported at attack construction time and are never retried.
func NewConfigurationError(code, message string) *AppError {
	return NewAppError(ErrorTypeConfiguration, code, message)
}

// NewComputationError creates a computation error. A computation error aborts
// the risk computation for the individual it occurred on; it is distinct from
// a legitimate zero-risk result.
func NewComputationError(code, message string) *AppError {
	return NewAppError(ErrorTypeComputation, code, message)
}

// NewIngestionError creates an ingestion error
func NewIngestionError(code, message string) *AppError {
	return NewAppError(ErrorTypeIngestion, code, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return NewAppError(ErrorTypeInternal, CodeInternalError, message)
}

// Error codes for different error scenarios
const (
	// Configuration error codes
	CodeInvalidKnowledgeSize = "INVALID_KNOWLEDGE_SIZE"
	CodeInvalidTolerance     = "INVALID_TOLERANCE"
	CodeInvalidPrecision     = "INVALID_PRECISION"
	CodeUnknownAttack        = "UNKNOWN_ATTACK"
	CodeMissingParameter     = "MISSING_PARAMETER"

	// Computation error codes
	CodeDegenerateAggregation = "DEGENERATE_AGGREGATION"
	CodeInsufficientVisits    = "INSUFFICIENT_VISITS"
	CodeComputationCancelled  = "COMPUTATION_CANCELLED"

	// Ingestion error codes
	CodeMalformedRow  = "MALFORMED_ROW"
	CodeEmptyDataset  = "EMPTY_DATASET"
	CodeUnknownKind   = "UNKNOWN_KIND"
	CodeUnknownFormat = "UNKNOWN_FORMAT"
	CodeDuplicateID   = "DUPLICATE_ID"
	CodeReadFailed    = "READ_FAILED"
	CodeWriteFailed   = "WRITE_FAILED"

	// Internal error codes
	CodeInternalError = "INTERNAL_ERROR"
)
