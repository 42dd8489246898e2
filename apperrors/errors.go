package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeOutOfStock         Code = "OUT_OF_STOCK"
	CodeStockConflict      Code = "STOCK_CONFLICT"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeInternal           Code = "INTERNAL"
)

// Error is an application error carrying an HTTP status and a machine-readable code.
type Error struct {
	Status  int    `json:"-"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func New(status int, code Code, message string, err error) *Error {
	return &Error{Status: status, Code: code, Message: message, Err: err}
}

var (
	ErrNotFound           = New(http.StatusNotFound, CodeNotFound, "Not found", nil)
	ErrOutOfStock         = New(http.StatusBadRequest, CodeOutOfStock, "Product is out of stock", nil)
	ErrStockConflict      = New(http.StatusConflict, CodeStockConflict, "Insufficient stock to place order", nil)
	ErrStorageUnavailable = New(http.StatusServiceUnavailable, CodeStorageUnavailable, "Storage unavailable", nil)
	ErrInvalidInput       = New(http.StatusBadRequest, CodeInvalidInput, "Invalid input", nil)
	ErrInternal           = New(http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
)

func NotFound(entity string, err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, entity+" not found", err)
}

func StorageUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeStorageUnavailable, "Storage unavailable", err)
}

func InvalidInput(message string) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, message, nil)
}

// From converts any error into an *Error, defaulting to ErrInternal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(http.StatusInternalServerError, CodeInternal, "Internal server error", err)
}
