// Package apierror provides the error taxonomy shared by the core and the API.
// Every rejected operation returns an *Error so callers can branch on Kind
// and render Detail without parsing strings.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a rejection.
type Kind string

const (
	KindValidation Kind = "validation_rejected"
	KindStock      Kind = "stock_insufficient"
	KindReference  Kind = "referential_guard"
	KindNotFound   Kind = "not_found"
	KindCorruption Kind = "persistence_corruption"
	KindInternal   Kind = "internal"
)

// Error is the canonical error envelope, also used as the 4xx/5xx JSON body.
type Error struct {
	Kind   Kind              `json:"kind"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string { return e.Detail }

// Is matches on Kind so errors.Is(err, apierror.ErrStock) works for any detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrStock      = &Error{Kind: KindStock}
	ErrReference  = &Error{Kind: KindReference}
	ErrNotFound   = &Error{Kind: KindNotFound}
)

func New(msg string) *Error {
	return &Error{Kind: KindInternal, Detail: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Detail: msg}
}

// NewValidation wraps multiple field errors.
func NewValidation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Detail: "Dados inválidos", Fields: fields}
}

func StockInsufficient(msg string) *Error {
	return &Error{Kind: KindStock, Detail: msg}
}

func ReferentialGuard(msg string) *Error {
	return &Error{Kind: KindReference, Detail: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Detail: msg}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Status maps an error to the HTTP status the API answers with.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindStock, KindReference:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// From converts any error into an envelope safe to send to clients.
// Foreign errors never leak their message.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New("Erro interno")
}
