package errs

import (
	"errors"
	"fmt"
)

var (
	InternalError = errors.New("internal error")
)

// ValidationError reports a request the engine refuses to grade: a
// language/version mismatch, an exercise without test cases, or a runtime the
// judge confirmed it does not support.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing lesson, exercise or submission.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ExternalServiceError reports that a remote collaborator (the judge, the
// runtime catalog) could not answer after retries. Nothing is persisted for a
// request that never reached the judge.
type ExternalServiceError struct {
	Service string
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func ExternalService(service, message string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Message: message, Err: err}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsExternalService(err error) bool {
	var es *ExternalServiceError
	return errors.As(err, &es)
}
