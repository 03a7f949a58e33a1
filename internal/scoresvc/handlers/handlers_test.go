package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HariTharun21/Gully-cricket-web-app/internal/scoresvc/service"
)

func TestFailMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"forbidden", fmt.Errorf("%w: no write access", service.ErrForbidden), http.StatusForbidden},
		{"invalid input", fmt.Errorf("%w: bowler is required", service.ErrInvalidInput), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: match 42", service.ErrNotFound), http.StatusNotFound},
		{"unexpected", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	h := &Handler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/v1/matches/42", nil)

			h.Fail(w, r, tt.err)

			assert.Equal(t, tt.code, w.Code)

			var rsp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))
			assert.Equal(t, tt.code, rsp.Code)
			assert.NotEmpty(t, rsp.Error)
		})
	}
}

func TestFailHidesInternalDetail(t *testing.T) {
	h := &Handler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/players", nil)

	h.Fail(w, r, fmt.Errorf("pq: relation players does not exist"))

	var rsp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rsp))
	assert.Equal(t, "internal error", rsp.Error)
}
