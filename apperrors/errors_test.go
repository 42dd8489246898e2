package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("product", errors.New("record not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrStorageUnavailable))
	assert.Equal(t, "product not found: record not found", err.Error())
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("add item: %w", StorageUnavailable(cause))

	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.True(t, errors.Is(err, cause))
}

func TestFrom(t *testing.T) {
	wrapped := fmt.Errorf("ctx: %w", InvalidInput("bad id"))
	assert.Equal(t, http.StatusBadRequest, From(wrapped).Status)
	assert.Equal(t, CodeInvalidInput, From(wrapped).Code)

	plain := From(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, CodeInternal, plain.Code)
}
