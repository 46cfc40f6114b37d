package usecase

import "errors"

// ErrDuplicateKey is returned by store create operations when a
// uniqueness constraint is violated.
var ErrDuplicateKey = errors.New("duplicate key")

// Code is one of the stable, externally visible failure codes. Every
// error surfaced to a client carries exactly one of these. A single
// entity lookup that finds nothing is an absent result, never a code.
type Code string

const (
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeInternal           Code = "INTERNAL"
)

// Error is the client-facing failure. It carries a code, a
// human-readable message, and for validation failures the offending
// field. Underlying store faults are never attached.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return string(e.Code) + ": " + e.Message + " (" + e.Field + ")"
	}
	return string(e.Code) + ": " + e.Message
}

func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

func ValidationFailed(field, msg string) *Error {
	return &Error{Code: CodeValidationFailed, Field: field, Message: msg}
}

func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "wrong credentials"}
}

func Internal() *Error {
	return &Error{Code: CodeInternal, Message: "internal error"}
}

// AsError extracts a taxonomy error, sanitizing anything else to
// CodeInternal so raw store detail never reaches a client.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal()
}
