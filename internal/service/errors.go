package service

import "fmt"

const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeDuplicateLog    = "DUPLICATE_LOG"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodePersistence     = "PERSISTENCE_ERROR"
)

// BusinessError is the typed failure every core operation returns.
// Message is safe to show to a user; Err keeps the underlying cause
// for logs.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("invalid value for '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewNotFound(resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s not found", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewDuplicateLog(taskID, userID, day string) *BusinessError {
	return &BusinessError{
		Code:    CodeDuplicateLog,
		Message: "time already logged for this task today",
		Details: map[string]any{
			"task_id": taskID,
			"user_id": userID,
			"day":     day,
		},
	}
}

func NewUnauthenticated() *BusinessError {
	return &BusinessError{
		Code:    CodeUnauthenticated,
		Message: "no resolvable identity for this request",
	}
}

func NewPersistenceError(operation string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("failed to %s", operation),
		Details: map[string]any{"operation": operation},
		Err:     err,
	}
}
