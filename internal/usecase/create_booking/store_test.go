package create_booking

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/m04kA/SMC-DockBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/booking"
	ruleRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/durationrule"
	quotaRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/quota"
	referenceRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/reference"
	slotRepo "github.com/m04kA/SMC-DockBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DockBookingService/pkg/types"
)

// memStore in-memory реализация всех репозиториев, нужных распределению
type memStore struct {
	facilities     map[int64]*domain.Facility
	docks          map[int64]*domain.Dock
	vehicleTypes   map[int64]*domain.VehicleType
	suppliers      map[int64]*domain.Supplier
	transportTypes map[int64]*domain.TransportType
	slots          map[int64]*domain.TimeSlot
	rules          []*domain.DurationRule
	quotas         []*domain.VolumeQuota

	bookings map[int64]*domain.Booking
	links    map[int64][]int64
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		facilities:     map[int64]*domain.Facility{1: {ID: 1, Name: "F"}},
		docks:          make(map[int64]*domain.Dock),
		vehicleTypes:   map[int64]*domain.VehicleType{3: {ID: 3, Name: "van", DurationMinutes: 30}},
		suppliers:      make(map[int64]*domain.Supplier),
		transportTypes: map[int64]*domain.TransportType{5: {ID: 5, Name: "pallets"}},
		slots:          make(map[int64]*domain.TimeSlot),
		bookings:       make(map[int64]*domain.Booking),
		links:          make(map[int64][]int64),
	}
}

func (s *memStore) addDock(id int64, name string, t domain.DockType) *domain.Dock {
	d := &domain.Dock{ID: id, FacilityID: 1, Name: name, DockType: t}
	s.docks[id] = d
	return d
}

func (s *memStore) addSlot(id, dockID int64, date time.Time, start, end string, capacity int) {
	s.slots[id] = &domain.TimeSlot{
		ID:          id,
		DockID:      dockID,
		Date:        date,
		StartTime:   types.MustTimeString(start),
		EndTime:     types.MustTimeString(end),
		Capacity:    capacity,
		IsAvailable: true,
	}
}

func (s *memStore) occupancy(slotID int64) int {
	n := 0
	for bookingID, ids := range s.links {
		if s.bookings[bookingID] != nil && s.bookings[bookingID].Status == domain.StatusConfirmed && slices.Contains(ids, slotID) {
			n++
		}
	}
	return n
}

// reference

func (s *memStore) GetFacility(_ context.Context, id int64) (*domain.Facility, error) {
	if f, ok := s.facilities[id]; ok {
		return f, nil
	}
	return nil, referenceRepo.ErrFacilityNotFound
}

func (s *memStore) GetDock(_ context.Context, id int64) (*domain.Dock, error) {
	if d, ok := s.docks[id]; ok {
		return d, nil
	}
	return nil, referenceRepo.ErrDockNotFound
}

func (s *memStore) ListDocks(_ context.Context, facilityID int64) ([]*domain.Dock, error) {
	out := make([]*domain.Dock, 0)
	for _, d := range s.docks {
		if d.FacilityID == facilityID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetVehicleType(_ context.Context, id int64) (*domain.VehicleType, error) {
	if v, ok := s.vehicleTypes[id]; ok {
		return v, nil
	}
	return nil, referenceRepo.ErrVehicleTypeNotFound
}

func (s *memStore) GetSupplier(_ context.Context, id int64) (*domain.Supplier, error) {
	if v, ok := s.suppliers[id]; ok {
		return v, nil
	}
	return nil, referenceRepo.ErrSupplierNotFound
}

func (s *memStore) GetTransportType(_ context.Context, id int64) (*domain.TransportType, error) {
	if v, ok := s.transportTypes[id]; ok {
		return v, nil
	}
	return nil, referenceRepo.ErrTransportTypeNotFound
}

// duration rules

func (s *memStore) GetByKey(_ context.Context, facilityID int64, supplierID, transportTypeID, vehicleTypeID *int64) (*domain.DurationRule, error) {
	eq := func(a, b *int64) bool {
		return (a == nil && b == nil) || (a != nil && b != nil && *a == *b)
	}
	for _, r := range s.rules {
		if r.FacilityID == facilityID && eq(r.SupplierID, supplierID) &&
			eq(r.TransportTypeID, transportTypeID) && eq(r.VehicleTypeID, vehicleTypeID) {
			return r, nil
		}
	}
	return nil, ruleRepo.ErrRuleNotFound
}

// slots

type slotStore struct{ *memStore }

func (s slotStore) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	if v, ok := s.slots[id]; ok {
		return v, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (s *memStore) ListAvailableFrom(_ context.Context, dockID int64, date time.Time, from types.TimeString) ([]*domain.TimeSlot, error) {
	out := make([]*domain.TimeSlot, 0)
	for _, v := range s.slots {
		if v.DockID == dockID && v.IsAvailable && domain.SameDate(v.Date, date) && !v.StartTime.IsBefore(from) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.IsBefore(out[j].StartTime) })
	return out, nil
}

func (s *memStore) LockSlots(_ context.Context, slotIDs []int64) (int, error) {
	n := 0
	for _, id := range slotIDs {
		if _, ok := s.slots[id]; ok {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CountOccupancy(_ context.Context, slotIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int)
	for _, id := range slotIDs {
		if n := s.occupancy(id); n > 0 {
			out[id] = n
		}
	}
	return out, nil
}

func (s *memStore) CountDirectional(_ context.Context, facilityID int64, direction domain.Direction, dockTypes []domain.DockType, date time.Time, start, end types.TimeString) (int, error) {
	n := 0
	for bookingID, ids := range s.links {
		b := s.bookings[bookingID]
		if b == nil || b.Status != domain.StatusConfirmed || b.FacilityID != facilityID || b.Direction != direction {
			continue
		}
		for _, id := range ids {
			v := s.slots[id]
			d := s.docks[v.DockID]
			if slices.Contains(dockTypes, d.DockType) && domain.SameDate(v.Date, date) && v.StartTime.Equal(start) && v.EndTime.Equal(end) {
				n++
				break
			}
		}
	}
	return n, nil
}

// quotas

func (s *memStore) FindForDate(_ context.Context, facilityID int64, direction domain.Direction, transportTypeID int64, date time.Time) (*domain.VolumeQuota, error) {
	for _, q := range s.quotas {
		if q.FacilityID == facilityID && q.Direction == direction && q.Matches(date, transportTypeID) {
			return q, nil
		}
	}
	return nil, quotaRepo.ErrQuotaNotFound
}

func (s *memStore) UsedVolume(_ context.Context, facilityID int64, direction domain.Direction, transportTypeID int64, date time.Time) (float64, error) {
	used := 0.0
	for bookingID, ids := range s.links {
		b := s.bookings[bookingID]
		if b == nil || b.Status != domain.StatusConfirmed || b.FacilityID != facilityID || b.Direction != direction ||
			b.TransportTypeID == nil || *b.TransportTypeID != transportTypeID || len(ids) == 0 {
			continue
		}
		if domain.SameDate(s.slots[ids[0]].Date, date) {
			used += b.Volume()
		}
	}
	return used, nil
}

func (s *memStore) UsedVolumeByDate(ctx context.Context, facilityID int64, direction domain.Direction, transportTypeID int64, from, to time.Time) (map[string]float64, error) {
	out := make(map[string]float64)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		used, _ := s.UsedVolume(ctx, facilityID, direction, transportTypeID, d)
		if used > 0 {
			out[d.Format(domain.DateFormat)] = used
		}
	}
	return out, nil
}

// bookings

func (s *memStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.nextID++
	cp := *booking
	cp.ID = s.nextID
	s.bookings[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memStore) CreateLinks(_ context.Context, bookingID int64, slotIDs []int64) error {
	s.links[bookingID] = append(s.links[bookingID], slotIDs...)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	cp.Slots = nil
	for _, slotID := range s.links[id] {
		cp.Slots = append(cp.Slots, s.slots[slotID])
	}
	return &cp, nil
}

func (s *memStore) GetByUser(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == filter.UserID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (s *memStore) UpdateDetails(_ context.Context, booking *domain.Booking) error {
	cp := *booking
	s.bookings[booking.ID] = &cp
	return nil
}

func (s *memStore) DeleteLinks(_ context.Context, bookingID int64) (int64, error) {
	n := int64(len(s.links[bookingID]))
	delete(s.links, bookingID)
	return n, nil
}

func (s *memStore) Delete(_ context.Context, id int64) error {
	delete(s.bookings, id)
	return nil
}
