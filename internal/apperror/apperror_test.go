package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cause := errors.New("disk full")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad request", New(BadRequest, "malformed body"), http.StatusBadRequest, "malformed body"},
		{"not found", New(NotFound, "missing"), http.StatusNotFound, "missing"},
		{"unavailable", New(Unavailable, "down"), http.StatusServiceUnavailable, "down"},
		{"wrapped", fmt.Errorf("save: %w", Wrap(Internal, "failed to save config", cause)), http.StatusInternalServerError, "failed to save config"},
		{"plain", cause, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Internal, "failed to save config", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save config: disk full", err.Error())
}

func TestFromStatus(t *testing.T) {
	assert.Equal(t, BadRequest, FromStatus(http.StatusBadRequest, "x").Code())
	assert.Equal(t, NotFound, FromStatus(http.StatusNotFound, "x").Code())
	assert.Equal(t, Unavailable, FromStatus(http.StatusServiceUnavailable, "x").Code())
	assert.Equal(t, Internal, FromStatus(http.StatusTeapot, "x").Code())
}
