package shared

// DomainError is an error with a stable machine-readable code. The HTTP
// layer maps the code to a status; the message is safe to show callers.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across the domain packages. Compare with
// errors.As against *DomainError, or errors.Is against these values.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrDataUnavailable signals that the underlying record store could not be
	// read. Callers must be able to tell this apart from a legitimately empty
	// result, so read paths wrap fetch failures with this error instead of
	// returning zeroed data.
	ErrDataUnavailable = NewDomainError("DATA_UNAVAILABLE", "Underlying records could not be fetched")
)
