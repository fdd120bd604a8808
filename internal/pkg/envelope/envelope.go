// Package envelope defines the error taxonomy shared by all seller and buyer
// actions and the JSON envelope they are rendered into.
package envelope

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Code string

const (
	CodeInvalidInput     Code = "invalid_input"
	CodeNotAuthenticated Code = "not_authenticated"
	CodeNotFound         Code = "not_found"
	CodeNotAuthorized    Code = "not_authorized"
	CodeInvalidStatus    Code = "invalid_status"
	CodeAlreadyExists    Code = "already_exists"
	CodeValidationFailed Code = "validation_failed"
	CodeCreateFailed     Code = "create_failed"
	CodeUpdateFailed     Code = "update_failed"
	CodeUnexpected       Code = "unexpected"
)

// Error is a domain failure. Key selects the localized message; when empty
// the code's default message is used.
type Error struct {
	Code Code
	Key  string
	Err  error
}

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Key != "" {
		msg += " (" + e.Key + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code so errors.Is(err, envelope.New(CodeNotFound, ""))
// works without comparing keys or causes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Key == "" || t.Key == e.Key)
}

// MessageKey returns the catalog key for this error.
func (e *Error) MessageKey() string {
	if e.Key != "" {
		return e.Key
	}
	return "error." + string(e.Code)
}

func New(code Code, key string) *Error {
	return &Error{Code: code, Key: key}
}

func Wrap(code Code, key string, err error) *Error {
	return &Error{Code: code, Key: key, Err: err}
}

func Wrapf(code Code, key string, format string, args ...any) *Error {
	return &Error{Code: code, Key: key, Err: fmt.Errorf(format, args...)}
}

// From converts any error into an *Error. Errors that are not domain
// failures become CodeUnexpected.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(CodeUnexpected, "", err)
}

// CodeOf returns the code of err, or "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return From(err).Code
}

// HTTPStatus maps a code onto the response status used by the JSON API.
func HTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return fiber.StatusBadRequest
	case CodeNotAuthenticated:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeNotAuthorized:
		return fiber.StatusForbidden
	case CodeInvalidStatus, CodeAlreadyExists:
		return fiber.StatusConflict
	case CodeValidationFailed:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
