package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	invoicedomain "github.com/smallbiznis/fbrinvoice/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		status   int
		errType  string
		firstErr string
	}{
		{name: "not found", err: fmt.Errorf("%w: gone", invoicedomain.ErrNotFound), status: http.StatusNotFound, errType: "not_found"},
		{name: "unavailable", err: fmt.Errorf("%w: dial", invoicedomain.ErrStoreUnavailable), status: http.StatusServiceUnavailable, errType: "service_unavailable"},
		{name: "invalid id", err: invoicedomain.ErrInvalidID, status: http.StatusBadRequest, errType: "validation_error", firstErr: "invalid_id"},
		{name: "invalid body", err: invalidRequestError(), status: http.StatusBadRequest, errType: "validation_error", firstErr: "invalid_request"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, errType: "internal_error"},
		{name: "nil", err: nil, status: http.StatusInternalServerError, errType: "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.errType, payload.Type)
			if tc.firstErr != "" && assert.NotEmpty(t, payload.Errors) {
				assert.Equal(t, tc.firstErr, payload.Errors[0].Code)
			}
		})
	}
}

func TestClassifyErrorForLog(t *testing.T) {
	errType, code := classifyErrorForLog(invoicedomain.ErrInvalidID)
	assert.Equal(t, "validation_error", errType)
	assert.Equal(t, "invalid_id", code)

	errType, code = classifyErrorForLog(invoicedomain.ErrStoreUnavailable)
	assert.Equal(t, "service_unavailable", errType)
	assert.Equal(t, "service_unavailable", code)
}
