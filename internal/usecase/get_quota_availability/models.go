package get_quota_availability

import (
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// Request модель запроса отчета по квотам
type Request struct {
	FacilityID      int64
	TransportTypeID int64
	Direction       domain.Direction
	From            time.Time
	To              time.Time
}

// Response отчет по квотам за период
type Response struct {
	FacilityID      int64       `json:"facilityId"`
	TransportTypeID int64       `json:"transportTypeId"`
	Direction       string      `json:"direction"`
	Days            []DayReport `json:"days"`
}

// DayReport остаток квоты на дату
// Без квоты на дату QuotaID пуст, а объем не ограничен
type DayReport struct {
	Date             string  `json:"date"`
	QuotaID          *int64  `json:"quotaId,omitempty"`
	AllowOverbooking bool    `json:"allowOverbooking"`
	Total            float64 `json:"totalVolume"`
	Used             float64 `json:"usedVolume"`
	Remaining        float64 `json:"remainingVolume"`
}
