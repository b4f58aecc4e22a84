package common

import "errors"

type Code string

const (
	CodeValidation        Code = "validation"
	CodeUnauthorized      Code = "unauthorized"
	CodeForbidden         Code = "forbidden"
	CodeNotFound          Code = "not_found"
	CodeConflict          Code = "conflict"
	CodeInvalidTransition Code = "invalid_transition"
	CodeNotApplicable     Code = "not_applicable"
	CodeRateLimited       Code = "rate_limited"
	CodeInternal          Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: message, Fields: fields}
}

// NewTransitionError reports a rejected status change. The current and
// requested values are kept so the API can echo them back to the caller.
func NewTransitionError(current, requested string) *Error {
	return &Error{
		Code:    CodeInvalidTransition,
		Message: "application with status '" + current + "' cannot be changed to '" + requested + "'",
		Fields:  map[string]string{"current_status": current, "requested_status": requested},
	}
}

func Is(err error, code Code) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

func From(err error) (*Error, bool) {
	var coded *Error
	if errors.As(err, &coded) {
		return coded, true
	}
	return nil, false
}
