package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"roombook/shared/failure"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "not found", err: failure.NotFound("room not found"), expected: http.StatusNotFound},
		{name: "bad request", err: failure.BadRequestFromString("title is required"), expected: http.StatusBadRequest},
		{name: "unauthorized", err: failure.Unauthorized("missing token"), expected: http.StatusUnauthorized},
		{name: "forbidden", err: failure.ForbiddenError, expected: http.StatusForbidden},
		{name: "conflict", err: failure.Conflict("room already booked for this interval"), expected: http.StatusConflict},
		{name: "wrapped failure keeps its code", err: fmt.Errorf("creating booking: %w", failure.NotFound("room not found")), expected: http.StatusNotFound},
		{name: "plain error maps to internal", err: errors.New("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, failure.GetCode(tt.err))
		})
	}
}

func TestBadRequestNilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}
