package import_bookings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-DockBookingService/internal/service/quota"
	"github.com/m04kA/SMC-DockBookingService/internal/usecase/create_booking"
)

// UseCase пакетный импорт бронирований
// Сначала проверяются все строки с учетом объёма предыдущих строк пакета,
// и только если ошибок нет, строки по очереди распределяются
type UseCase struct {
	allocator Allocator
	quota     QuotaBatcher
	maxRows   int
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(allocator Allocator, quota QuotaBatcher, maxRows int, logger Logger) *UseCase {
	return &UseCase{
		allocator: allocator,
		quota:     quota,
		maxRows:   maxRows,
		logger:    logger,
	}
}

// Execute выполняет импорт
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ImportBookings: user=%d, rows=%d, dryRun=%t", req.UserID, len(req.Rows), req.DryRun)

	if len(req.Rows) == 0 {
		return nil, ErrEmptyBatch
	}
	if uc.maxRows > 0 && len(req.Rows) > uc.maxRows {
		return nil, fmt.Errorf("%w: %d rows, max %d", ErrBatchTooLarge, len(req.Rows), uc.maxRows)
	}

	resp := &Response{
		Total: len(req.Rows),
		Rows:  make([]RowResult, len(req.Rows)),
	}

	// 1. Проверка всех строк
	batch := uc.quota.NewBatch()
	for i, row := range req.Rows {
		row.UserID = req.UserID
		resp.Rows[i].Row = i + 1

		if err := uc.check(ctx, batch, row); err != nil {
			resp.Rows[i].Error = err.Error()
			resp.Failed++
		}
	}

	resp.Validated = resp.Failed == 0
	if !resp.Validated || req.DryRun {
		uc.logger.Info("ImportBookings: validation finished, %d of %d rows failed", resp.Failed, resp.Total)
		return resp, nil
	}

	// 2. Распределение по одной строке; ошибка строки не останавливает пакет
	for i, row := range req.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		booking, err := uc.allocator.Execute(ctx, row)
		if err != nil {
			uc.logger.Warn("ImportBookings: row %d failed: %v", i+1, err)
			resp.Rows[i].Error = err.Error()
			resp.Failed++
			continue
		}

		id := booking.ID
		resp.Rows[i].BookingID = &id
		resp.Created++
	}

	uc.logger.Info("ImportBookings: created %d of %d bookings", resp.Created, resp.Total)
	return resp, nil
}

func (uc *UseCase) check(ctx context.Context, batch *quota.BatchTracker, row *create_booking.Request) error {
	plan, err := uc.allocator.Check(ctx, row)
	if err != nil {
		return err
	}

	_, err = batch.Admit(ctx, quota.Query{
		FacilityID:      row.FacilityID,
		Direction:       row.Direction,
		TransportTypeID: row.TransportTypeID,
		Date:            plan.Date,
		Volume:          row.Cubes,
	})
	return err
}
