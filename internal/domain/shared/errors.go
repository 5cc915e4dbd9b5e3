package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("VALIDATION_ERROR", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Error codes produced by the variant and channel-price engine.
// Handlers map these onto HTTP statuses; callers should treat all of
// them as recoverable user-facing failures.
const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodePreconditionFailed  = "PRECONDITION_FAILED"
	ErrCodeDuplicateName       = "DUPLICATE_NAME"
	ErrCodeDuplicateVariant    = "DUPLICATE_VARIANT"
	ErrCodeTooManyCombinations = "TOO_MANY_COMBINATIONS"
	ErrCodeRoleConflict        = "ROLE_CONFLICT"
	ErrCodeInvalidPrice        = "INVALID_PRICE"
)
