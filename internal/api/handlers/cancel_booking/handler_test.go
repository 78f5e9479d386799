package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f fakeService) Cancel(_ context.Context, bookingID int64, userID int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: bookingID, UserID: userID, Status: "cancelled"}, nil
}

func serve(svc fakeService, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop{}).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{"cancelled", "5", nil, http.StatusOK},
		{"bad id", "abc", nil, http.StatusBadRequest},
		{"not found", "5", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "5", bookings.ErrAccessDenied, http.StatusForbidden},
		{"already cancelled", "5", bookings.ErrCannotCancel, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(fakeService{err: tt.err}, tt.id)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
