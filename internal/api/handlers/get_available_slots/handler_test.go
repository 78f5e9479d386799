package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DockBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:       req.Date,
		FacilityID: req.FacilityID,
		Direction:  req.Direction,
		Docks: []getAvailableSlots.Dock{{
			ID:       4,
			Name:     "D-1",
			DockType: domain.DockTypeEntrance,
			Slots: []getAvailableSlots.Slot{{
				ID:              12,
				StartTime:       types.TimeString("09:00"),
				EndTime:         types.TimeString("09:30"),
				DurationMinutes: 30,
				AvailableSpots:  1,
				TotalSpots:      2,
			}},
		}},
	}, nil
}

func serve(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/facilities/1/slots?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"facilityId": "1"})
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop{}).Handle(rec, req)
	return rec
}

func TestHandle_ListsSlots(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "date=2025-03-03&direction=in")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DirectionInbound, uc.got.Direction)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Docks, 1)
	require.Len(t, resp.Docks[0].Slots, 1)
	assert.Equal(t, "09:00", resp.Docks[0].Slots[0].StartTime)
	assert.Equal(t, 1, resp.Docks[0].Slots[0].AvailableSpots)
}

func TestHandle_LongDirectionNames(t *testing.T) {
	tests := []struct {
		direction string
		want      domain.Direction
	}{
		{"inbound", domain.DirectionInbound},
		{"outbound", domain.DirectionOutbound},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, "date=2025-03-03&direction="+tt.direction)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, uc.got.Direction)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"missing date", "direction=in", nil, http.StatusBadRequest},
		{"bad date", "date=03.03.2025&direction=in", nil, http.StatusBadRequest},
		{"unknown direction", "date=2025-03-03&direction=sideways", nil, http.StatusBadRequest},
		{"missing direction", "date=2025-03-03", nil, http.StatusBadRequest},
		{"unknown facility", "date=2025-03-03&direction=in", getAvailableSlots.ErrFacilityNotFound, http.StatusNotFound},
		{"date in the past", "date=2025-03-03&direction=in", getAvailableSlots.ErrInvalidDate, http.StatusBadRequest},
		{"internal", "date=2025-03-03&direction=in", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}
			rec := serve(uc, tt.query)
			assert.Equal(t, tt.status, rec.Code)
			if tt.err == nil {
				assert.Nil(t, uc.got)
			}
		})
	}
}
