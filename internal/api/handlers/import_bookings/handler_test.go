package import_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DockBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	importBookings "github.com/m04kA/SMC-DockBookingService/internal/usecase/import_bookings"
	"github.com/m04kA/SMC-DockBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *importBookings.Request
	resp *importBookings.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *importBookings.Request) (*importBookings.Response, error) {
	f.got = req
	return f.resp, f.err
}

const payload = `{"dryRun": false, "rows": [
	{"facilityId": 1, "direction": "in", "date": "2025-03-03", "startTime": "09:00", "vehicleTypeId": 3},
	{"facilityId": 1, "direction": "out", "timeSlotId": 12, "vehicleTypeId": 3}
]}`

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/import", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop{}).Handle(rec, req)
	return rec
}

func TestHandle_StatusByOutcome(t *testing.T) {
	tests := []struct {
		name   string
		resp   *importBookings.Response
		status int
	}{
		{"created", &importBookings.Response{Total: 2, Created: 2, Validated: true}, http.StatusCreated},
		{"validation failed", &importBookings.Response{Total: 2, Failed: 1}, http.StatusUnprocessableEntity},
		{"dry run", &importBookings.Response{Total: 2, Validated: true}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{resp: tt.resp}
			rec := serve(uc, payload)

			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, uc.got)
			require.Len(t, uc.got.Rows, 2)
			assert.Equal(t, int64(7), uc.got.Rows[1].UserID)
			assert.Equal(t, int64(12), *uc.got.Rows[1].TimeSlotID)
		})
	}
}

func TestHandle_BadRowFormat(t *testing.T) {
	body := strings.Replace(payload, `"2025-03-03"`, `"03.03.2025"`, 1)
	uc := &fakeUseCase{}
	rec := serve(uc, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "row 1")
	assert.Nil(t, uc.got)
}

func TestHandle_RowDirections(t *testing.T) {
	t.Run("long names", func(t *testing.T) {
		body := strings.Replace(payload, `"direction": "in"`, `"direction": "inbound"`, 1)
		body = strings.Replace(body, `"direction": "out"`, `"direction": "outbound"`, 1)
		uc := &fakeUseCase{resp: &importBookings.Response{Total: 2, Validated: true}}
		rec := serve(uc, body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.DirectionInbound, uc.got.Rows[0].Direction)
		assert.Equal(t, domain.DirectionOutbound, uc.got.Rows[1].Direction)
	})

	t.Run("unknown direction", func(t *testing.T) {
		body := strings.Replace(payload, `"direction": "out"`, `"direction": "sideways"`, 1)
		uc := &fakeUseCase{}
		rec := serve(uc, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "row 2")
		assert.Nil(t, uc.got)
	})
}
