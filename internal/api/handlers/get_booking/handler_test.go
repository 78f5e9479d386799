package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-DockBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
	"github.com/m04kA/SMC-DockBookingService/pkg/ptr"
)

type fakeService struct {
	booking *models.BookingResponse
	err     error
}

func (f fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.booking != nil {
		return f.booking, nil
	}
	return &models.BookingResponse{
		ID:        id,
		UserID:    userID,
		Status:    "confirmed",
		DockID:    ptr.Ptr(int64(4)),
		Date:      "2025-03-03",
		StartTime: "09:00",
		EndTime:   "10:00",
		Slots: []models.SlotResponse{
			{ID: 100, StartTime: "09:00", EndTime: "09:30"},
			{ID: 101, StartTime: "09:30", EndTime: "10:00"},
		},
	}, nil
}

func serve(svc fakeService, id string, withUser bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	if withUser {
		req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop{}).Handle(rec, req)
	return rec
}

func TestHandle_Found(t *testing.T) {
	rec := serve(fakeService{}, "5", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, int64(7), got.UserID)
	require.NotNil(t, got.DockID)
	assert.Equal(t, int64(4), *got.DockID)
	assert.Equal(t, "10:00", got.EndTime)
	assert.Len(t, got.Slots, 2)
}

func TestHandle_CancelledWithoutSlots(t *testing.T) {
	svc := fakeService{booking: &models.BookingResponse{ID: 5, UserID: 7, Status: "cancelled", Slots: []models.SlotResponse{}}}
	rec := serve(svc, "5", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "cancelled", got.Status)
	assert.Nil(t, got.DockID)
	assert.Empty(t, got.Slots)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		withUser bool
		err      error
		status   int
	}{
		{"bad id", "0", true, nil, http.StatusBadRequest},
		{"no user", "5", false, nil, http.StatusUnauthorized},
		{"not found", "5", true, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign booking", "5", true, bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", "5", true, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(fakeService{err: tt.err}, tt.id, tt.withUser)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
