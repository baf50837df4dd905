package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("bad", nil).Code)
	assert.Equal(t, http.StatusBadRequest, NewPayloadError("bad payload", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, NewDatabaseError("db", nil).Code)
	assert.Equal(t, http.StatusBadGateway, NewTransportError("broker", nil).Code)
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("missing", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, NewInternalError("boom", nil).Code)
}

func TestError_IncludesInternalError(t *testing.T) {
	err := NewDatabaseError("failed to insert reading", fmt.Errorf("connection refused"))
	assert.Contains(t, err.Error(), "database: failed to insert reading")
	assert.Contains(t, err.Error(), "connection refused")

	bare := NewPayloadError("missing required field: temp", nil)
	assert.Equal(t, "payload: missing required field: temp", bare.Error())
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsPayload(NewPayloadError("x", nil)))
	assert.False(t, IsPayload(NewTransportError("x", nil)))
	assert.True(t, IsTransport(NewTransportError("x", nil)))
	assert.True(t, IsValidation(NewValidationError("x", nil)))
	assert.False(t, IsTransport(fmt.Errorf("plain")))
}

func TestAsAPIError(t *testing.T) {
	typed := NewTransportError("x", nil)
	assert.Same(t, typed, AsAPIError(typed))

	wrapped := AsAPIError(fmt.Errorf("plain"))
	assert.Equal(t, ErrorTypeInternal, wrapped.Type)
}

func TestWithRequestID(t *testing.T) {
	err := NewValidationError("x", nil).WithRequestID("req_123")
	assert.Equal(t, "req_123", err.RequestID)
}
