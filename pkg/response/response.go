package response

import (
	"errors"
	"net/http"

	"github.com/clapboard/membership/pkg/apperr"
)

type APIResponseCode int

const (
	APIResponseCodeOK           APIResponseCode = 0
	APIResponseCodeBadRequest   APIResponseCode = 40000
	APIResponseCodeUnauthorized APIResponseCode = 40100
	APIResponseCodeNotFound     APIResponseCode = 40400
	APIResponseCodeConflict     APIResponseCode = 40900
	APIResponseCodeError        APIResponseCode = 50000
)

var codeToMsg = map[APIResponseCode]string{
	APIResponseCodeOK:           "ok",
	APIResponseCodeBadRequest:   "bad request",
	APIResponseCodeUnauthorized: "unauthorized",
	APIResponseCodeNotFound:     "not found",
	APIResponseCodeConflict:     "conflict",
	APIResponseCodeError:        "unexpected error",
}

// APIResponse is the generic response envelope used by HTTP APIs.
// Use OKT / ErrorT helpers to construct instances.
type APIResponse[T any] struct {
	Code    APIResponseCode `json:"code"`
	Message string          `json:"message"`
	Data    T               `json:"data"`
}

// OKT returns a successful response with data.
func OKT[T any](data T) *APIResponse[T] {
	return &APIResponse[T]{Code: APIResponseCodeOK, Message: codeToMsg[APIResponseCodeOK], Data: data}
}

// ErrorT returns an error response with message and optional data.
func ErrorT[T any](code APIResponseCode, data T) *APIResponse[T] {
	return &APIResponse[T]{Code: code, Message: codeToMsg[code], Data: data}
}

// Classify maps a service error onto an HTTP status and envelope code using
// the apperr taxonomy.
func Classify(err error) (int, APIResponseCode) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, APIResponseCodeNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, APIResponseCodeConflict
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, APIResponseCodeBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, APIResponseCodeUnauthorized
	default:
		return http.StatusInternalServerError, APIResponseCodeError
	}
}
