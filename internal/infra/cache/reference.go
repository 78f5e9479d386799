package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
)

const keyPrefix = "docks:ref"

// ReferenceSource источник справочных данных (репозиторий PostgreSQL)
type ReferenceSource interface {
	GetFacility(ctx context.Context, id int64) (*domain.Facility, error)
	GetDock(ctx context.Context, id int64) (*domain.Dock, error)
	ListDocks(ctx context.Context, facilityID int64) ([]*domain.Dock, error)
	GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	GetTransportType(ctx context.Context, id int64) (*domain.TransportType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReferenceCache read-through кэш объектов и доков
// Ошибки Redis не прерывают запрос: значение читается из источника
type ReferenceCache struct {
	source ReferenceSource
	store  store
	ttl    time.Duration
	logger Logger
}

// NewReferenceCache создает кэш поверх клиента Redis
func NewReferenceCache(source ReferenceSource, rdb redis.Cmdable, ttl time.Duration, logger Logger) *ReferenceCache {
	return newReferenceCache(source, redisStore{rdb: rdb}, ttl, logger)
}

func newReferenceCache(source ReferenceSource, s store, ttl time.Duration, logger Logger) *ReferenceCache {
	return &ReferenceCache{
		source: source,
		store:  s,
		ttl:    ttl,
		logger: logger,
	}
}

func facilityKey(id int64) string {
	return fmt.Sprintf("%s:facility:%d", keyPrefix, id)
}

func docksKey(facilityID int64) string {
	return fmt.Sprintf("%s:facility:%d:docks", keyPrefix, facilityID)
}

// GetFacility возвращает объект из кэша или источника
func (c *ReferenceCache) GetFacility(ctx context.Context, id int64) (*domain.Facility, error) {
	var facility domain.Facility
	if c.load(ctx, facilityKey(id), &facility) {
		return &facility, nil
	}

	result, err := c.source.GetFacility(ctx, id)
	if err != nil {
		return nil, err
	}

	c.save(ctx, facilityKey(id), result)
	return result, nil
}

// ListDocks возвращает доки объекта из кэша или источника
func (c *ReferenceCache) ListDocks(ctx context.Context, facilityID int64) ([]*domain.Dock, error) {
	var docks []*domain.Dock
	if c.load(ctx, docksKey(facilityID), &docks) {
		return docks, nil
	}

	result, err := c.source.ListDocks(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	c.save(ctx, docksKey(facilityID), result)
	return result, nil
}

// Invalidate удаляет закэшированные данные объекта
func (c *ReferenceCache) Invalidate(ctx context.Context, facilityID int64) error {
	if err := c.store.Del(ctx, facilityKey(facilityID), docksKey(facilityID)); err != nil {
		return fmt.Errorf("cache: invalidate facility=%d: %w", facilityID, err)
	}
	return nil
}

// GetDock читается напрямую из источника
func (c *ReferenceCache) GetDock(ctx context.Context, id int64) (*domain.Dock, error) {
	return c.source.GetDock(ctx, id)
}

// GetVehicleType читается напрямую из источника
func (c *ReferenceCache) GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error) {
	return c.source.GetVehicleType(ctx, id)
}

// GetSupplier читается напрямую из источника
func (c *ReferenceCache) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	return c.source.GetSupplier(ctx, id)
}

// GetTransportType читается напрямую из источника
func (c *ReferenceCache) GetTransportType(ctx context.Context, id int64) (*domain.TransportType, error) {
	return c.source.GetTransportType(ctx, id)
}

func (c *ReferenceCache) load(ctx context.Context, key string, dst interface{}) bool {
	bs, err := c.store.Get(ctx, key)
	if errors.Is(err, errMiss) {
		return false
	}
	if err != nil {
		c.logger.Warn("ReferenceCache: get %s failed: %v", key, err)
		return false
	}

	if err := json.Unmarshal(bs, dst); err != nil {
		c.logger.Warn("ReferenceCache: corrupted value %s: %v", key, err)
		return false
	}
	return true
}

func (c *ReferenceCache) save(ctx context.Context, key string, value interface{}) {
	bs, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("ReferenceCache: marshal %s failed: %v", key, err)
		return
	}

	if err := c.store.Set(ctx, key, bs, c.ttl); err != nil {
		c.logger.Warn("ReferenceCache: set %s failed: %v", key, err)
	}
}
