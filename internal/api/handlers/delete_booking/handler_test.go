package delete_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f fakeService) Delete(context.Context, int64, int64) error {
	return f.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"deleted", "5", nil, http.StatusNoContent},
		{"bad id", "-1", nil, http.StatusBadRequest},
		{"not found", "5", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "5", bookings.ErrAccessDenied, http.StatusForbidden},
		{"still confirmed", "5", bookings.ErrCannotDelete, http.StatusConflict},
		{"internal", "5", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": tt.id})
			req = req.WithContext(middleware.WithUserID(req.Context(), 7))
			rec := httptest.NewRecorder()

			NewHandler(fakeService{err: tt.err}, logger.Nop{}).Handle(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "db down")
			}
		})
	}
}
