package quota

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

// BatchTracker учитывает объём строк пакета, которые уже допущены, но еще не сохранены
// Не потокобезопасен: пакет обрабатывается последовательно
type BatchTracker struct {
	svc     *Service
	pending map[string]float64
}

// NewBatch создает трекер для одного пакета
func (s *Service) NewBatch() *BatchTracker {
	return &BatchTracker{
		svc:     s,
		pending: make(map[string]float64),
	}
}

// Admit проверяет строку с учетом объёма предыдущих строк пакета
// При успехе объём строки добавляется к ожидающему
func (b *BatchTracker) Admit(ctx context.Context, q Query) (*Decision, error) {
	key := batchKey(q)
	decision, err := b.svc.admit(ctx, q, b.pending[key])
	if err != nil {
		return nil, err
	}

	if decision.Quota != nil && q.Volume != nil {
		b.pending[key] += *q.Volume
	}
	return decision, nil
}

// Pending возвращает ожидающий объём ячейки запроса
func (b *BatchTracker) Pending(q Query) float64 {
	return b.pending[batchKey(q)]
}

func batchKey(q Query) string {
	var transportTypeID int64
	if q.TransportTypeID != nil {
		transportTypeID = *q.TransportTypeID
	}
	return fmt.Sprintf("%d/%s/%d/%s", q.FacilityID, q.Direction, transportTypeID, q.Date.Format(domain.DateFormat))
}
