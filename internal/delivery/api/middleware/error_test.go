package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"basecamp/internal/delivery/api/response"
	deliverycontext "basecamp/internal/delivery/context"
	domainerrors "basecamp/internal/domain/errors"
	"basecamp/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails any
	}{
		{
			name:        "roster fetch failure keeps the message",
			err:         errors.WithStack(domainerrors.NewRosterFetchError("network unreachable")),
			wantStatus:  http.StatusBadGateway,
			wantCode:    "ROSTER_FETCH_FAILED",
			wantMessage: "network unreachable",
		},
		{
			name:        "validation failure includes details",
			err:         domainerrors.ErrValidationFailed.WithDetails("bad tier"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantMessage: "Invalid request parameters",
			wantDetails: "bad tier",
		},
		{
			name:        "echo http error",
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "HTTP_ERROR",
			wantMessage: "Not Found",
		},
		{
			name:        "unknown error is hidden",
			err:         errors.New("connection reset by peer"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "Internal server error, please try again later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/roster", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			deliverycontext.SetRequestID(c, "req-1")

			m.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
			assert.Equal(t, "req-1", body.Meta.RequestID)
		})
	}
}

func TestErrorMiddleware_SkipsCommittedResponse(t *testing.T) {
	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	m.HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}
