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

// Is reports whether target is a DomainError with the same code, so that
// errors.Is works for freshly constructed errors as well as the shared
// sentinels below.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
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
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidTransition = NewDomainError("INVALID_TRANSITION", "Transition not allowed in current state")
	ErrPreconditionFail  = NewDomainError("PRECONDITION_FAILED", "Transition precondition not met")
	ErrVersionConflict   = NewDomainError("VERSION_CONFLICT", "Resource was modified by another process")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrOverConsumption   = NewDomainError("OVER_CONSUMPTION", "Consumption exceeds reserved allocation")
)
