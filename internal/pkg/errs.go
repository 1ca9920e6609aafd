package pkg

import (
	"errors"
	"net/http"
)

// Error is a request-level business error carried unmodified from the
// point of detection to the HTTP boundary.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Msg: msg}
}

// HTTPStatus maps a business error to its status; anything unclassified
// (storage failures and such) surfaces as 500.
func HTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}
