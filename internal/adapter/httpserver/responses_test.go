package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/careerflowhq/careerflow-api/internal/domain"
)

func TestWriteError_SentinelMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid job id", domain.ErrInvalidJobID, http.StatusBadRequest, "INVALID_JOB_ID"},
		{"invalid argument", domain.ErrInvalidArgument, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"job not found", domain.ErrJobNotFound, http.StatusNotFound, "JOB_NOT_FOUND"},
		{"application not found", domain.ErrApplicationNotFound, http.StatusNotFound, "APPLICATION_NOT_FOUND"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not owner", domain.ErrNotOwner, http.StatusForbidden, "NOT_OWNER"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"internal", domain.ErrInternal, http.StatusInternalServerError, "INTERNAL"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, nil, fmt.Errorf("op=test: %w", tc.err), nil)
			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"code":"`+tc.code+`"`)
		})
	}
}
