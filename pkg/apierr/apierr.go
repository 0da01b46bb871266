package apierr

import (
	"fmt"
	"net/http"
)

// Error is a domain error carrying the HTTP status it maps to.
type Error struct {
	Code int
	Text string
}

func (e *Error) Error() string {
	return e.Text
}

func NotFound(entity string, id uint) *Error {
	return &Error{
		Code: http.StatusNotFound,
		Text: fmt.Sprintf("%s %d not found", entity, id),
	}
}

func AlreadyExists(entity string) *Error {
	return &Error{
		Code: http.StatusBadRequest,
		Text: fmt.Sprintf("%s already exists", entity),
	}
}

func CannotAddOrder() *Error {
	return &Error{
		Code: http.StatusBadRequest,
		Text: "Can not add order",
	}
}

func Internal() *Error {
	return &Error{
		Code: http.StatusInternalServerError,
		Text: "internal error",
	}
}
