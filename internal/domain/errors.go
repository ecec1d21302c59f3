package domain

import "errors"

// Kind is a stable failure classification surfaced to callers.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindForbidden   Kind = "forbidden"
	KindValidation  Kind = "validation"
	KindStorage     Kind = "storage"
	KindPersistence Kind = "persistence"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) *Error  { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Message: msg} }
func Invalid(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }

func StorageFailure(err error) *Error {
	return &Error{Kind: KindStorage, Message: "image storage failed", Err: err}
}

func PersistenceFailure(err error) *Error {
	return &Error{Kind: KindPersistence, Message: "database operation failed", Err: err}
}

// KindOf reports the Kind carried by err, or empty if err is not a
// domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
