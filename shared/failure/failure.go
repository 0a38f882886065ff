package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a Failure independently of the HTTP code it maps to.
type Kind string

const (
	KindBadRequest        Kind = "bad_request"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindAccessDenied      Kind = "access_denied"
	KindInvalidState      Kind = "invalid_state"
	KindInvalidInterval   Kind = "invalid_interval"
	KindInvalidCategory   Kind = "invalid_category"
	KindInvalidPagination Kind = "invalid_pagination"
	KindUnavailable       Kind = "unavailable"
	KindInternal          Kind = "internal"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Kind: KindAccessDenied, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// NotFoundf returns a NotFound failure naming the entity and the identifier that did not resolve.
func NotFoundf(entityName, id string) error {
	return NotFound(fmt.Sprintf("%s with id %s not found", entityName, id))
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Kind:    KindAccessDenied,
		Message: msg,
	}
}

// AccessDenied is raised when the caller resolves but is not allowed to act on the resource.
func AccessDenied(msg string) error {
	return Forbidden(msg)
}

// InvalidState is raised for transitions the booking state table does not allow.
func InvalidState(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidState,
		Message: msg,
	}
}

func InvalidInterval(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidInterval,
		Message: msg,
	}
}

func InvalidCategory(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidCategory,
		Message: msg,
	}
}

func InvalidPagination(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidPagination,
		Message: msg,
	}
}

func Unavailable(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindUnavailable,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// KindOf returns the Kind of a Failure anywhere in the chain, or KindInternal for other errors.
func KindOf(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInternal
}
