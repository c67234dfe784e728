package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
	"fleet-service/internal/schedule"
)

// defaultStartRideMinutes is the tolerance before slot start within
// which a ride may begin, used when no config row overrides it.
const defaultStartRideMinutes = 120

// TripService drives a roster's daily trip through its protocol:
// start-ride, check-in, check-out, end-ride. Each transition is one
// transaction holding the roster row lock.
type TripService struct {
	db *gorm.DB
}

func NewTripService(db *gorm.DB) *TripService {
	return &TripService{db: db}
}

type StartRideInput struct {
	RosterID      string
	StartKm       float64
	VehiclePhotos []string
}

type CheckpointInput struct {
	TripID string
	Lat    float64
	Long   float64
}

type EndRideInput struct {
	TripID         string
	EndKm          float64
	TripSheetPhoto string
}

// canStartRide decides whether a ride may begin at now given the slot
// start and the tolerance. Starting is allowed from (slotStart -
// tolerance) onward; exactly at the boundary passes.
func canStartRide(now, slotStart time.Time, tolerance time.Duration) bool {
	if !now.Before(slotStart) {
		return true
	}
	return slotStart.Sub(now) <= tolerance
}

func assignedToRoster(principal model.Principal, roster *model.Roster) bool {
	return principal.DriverID != nil && roster.DriverID != nil && *roster.DriverID == *principal.DriverID
}

// startRideGuard runs the start-ride guard ladder in its fixed order
// over already-loaded state: assignment, vehicle, roster active and
// covering today (not a holiday), the start-window tolerance, an open
// trip from a previous day, and the one-trip-per-day rule.
func startRideGuard(principal model.Principal, roster *model.Roster, openTrip *model.Trip, tripsToday int64, now time.Time, tolerance time.Duration) error {
	if !assignedToRoster(principal, roster) {
		return ErrNotAssigned
	}
	if roster.VehicleID == nil {
		return ErrVehicleNotAssigned
	}
	if !roster.IsActive || !roster.WithinDates(now.UTC()) {
		return ErrInvalidAction
	}
	today := now.Format("2006-01-02")
	for _, day := range roster.Holiday {
		if day == today {
			return ErrInvalidAction
		}
	}

	slotStart, err := schedule.ParseTimeOfDay(roster.SlotStartTime)
	if err != nil {
		return ErrInvalidAction
	}
	todaySlotStart := time.Date(now.Year(), now.Month(), now.Day(),
		slotStart.Hour(), slotStart.Minute(), slotStart.Second(), 0, now.Location())
	if !canStartRide(now, todaySlotStart, tolerance) {
		return ErrCannotStartYet
	}

	if openTrip != nil {
		return ErrPreviousTripActive
	}
	if tripsToday > 0 {
		return ErrAlreadyCompletedToday
	}
	return nil
}

// tripTransitions maps each trip action to the status it requires.
var tripTransitions = map[model.TripStatus]model.TripStatus{
	model.TripStatusCheckIn:       model.TripStatusRideStarted,
	model.TripStatusCheckOut:      model.TripStatusCheckIn,
	model.TripStatusRideCompleted: model.TripStatusCheckOut,
}

// canTransition reports whether a trip in current may move to next.
func canTransition(current, next model.TripStatus) bool {
	required, ok := tripTransitions[next]
	return ok && current == required
}

// StartRide opens today's trip for a roster. Guards run in a fixed
// order so the driver app always sees the most specific failure first.
func (s *TripService) StartRide(ctx context.Context, principal model.Principal, input StartRideInput) (*model.Trip, error) {
	rosterID, err := uuid.Parse(input.RosterID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.StartKm < 0 {
		return nil, ErrInvalidInput
	}

	var trip *model.Trip
	err = s.db.Transaction(func(tx *gorm.DB) error {
		rosters := repository.NewRosterRepository(tx)
		trips := repository.NewTripRepository(tx)
		configs := repository.NewConfigRepository(tx)

		roster, err := rosters.GetByIDForUpdate(ctx, rosterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		open, err := trips.FindActiveByRoster(ctx, rosterID)
		if err != nil {
			return err
		}

		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		count, err := trips.CountForRosterSince(ctx, rosterID, midnight)
		if err != nil {
			return err
		}

		minutes, err := configs.GetMinutes(ctx, model.ConfigKeyRosterStartRide, defaultStartRideMinutes)
		if err != nil {
			return err
		}

		if err := startRideGuard(principal, roster, open, count, now, time.Duration(minutes)*time.Minute); err != nil {
			return err
		}

		startKm := input.StartKm
		trip = &model.Trip{
			RosterID:      rosterID,
			Status:        model.TripStatusRideStarted,
			StartKm:       &startKm,
			VehiclePhotos: datatypes.NewJSONSlice(input.VehiclePhotos),
			IsActive:      true,
		}
		return trips.Create(ctx, trip)
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// CheckIn records arrival at the client store.
func (s *TripService) CheckIn(ctx context.Context, principal model.Principal, input CheckpointInput) (*model.Trip, error) {
	return s.checkpoint(ctx, principal, input, model.TripStatusCheckIn)
}

// CheckOut records departure from the client store.
func (s *TripService) CheckOut(ctx context.Context, principal model.Principal, input CheckpointInput) (*model.Trip, error) {
	return s.checkpoint(ctx, principal, input, model.TripStatusCheckOut)
}

func (s *TripService) checkpoint(ctx context.Context, principal model.Principal, input CheckpointInput, next model.TripStatus) (*model.Trip, error) {
	tripID, err := uuid.Parse(input.TripID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	var trip *model.Trip
	err = s.db.Transaction(func(tx *gorm.DB) error {
		trips := repository.NewTripRepository(tx)
		rosters := repository.NewRosterRepository(tx)

		t, err := trips.GetByIDForUpdate(ctx, tripID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		roster, err := rosters.GetByID(ctx, t.RosterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !assignedToRoster(principal, roster) {
			return ErrNotAssigned
		}
		if !t.IsActive || !canTransition(t.Status, next) {
			return ErrInvalidAction
		}

		now := time.Now()
		lat, long := input.Lat, input.Long
		switch next {
		case model.TripStatusCheckIn:
			t.CheckinTime = &now
			t.InLatitude = &lat
			t.InLongitude = &long
		case model.TripStatusCheckOut:
			t.CheckoutTime = &now
			t.OutLatitude = &lat
			t.OutLongitude = &long
		}
		t.Status = next

		if err := trips.Update(ctx, t); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// EndRide closes the trip. Requires a completed check-out, records the
// closing odometer and trip sheet, and releases the roster for the next
// day.
func (s *TripService) EndRide(ctx context.Context, principal model.Principal, input EndRideInput) (*model.Trip, error) {
	tripID, err := uuid.Parse(input.TripID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.EndKm < 0 {
		return nil, ErrInvalidInput
	}

	var trip *model.Trip
	err = s.db.Transaction(func(tx *gorm.DB) error {
		trips := repository.NewTripRepository(tx)
		rosters := repository.NewRosterRepository(tx)

		t, err := trips.GetByIDForUpdate(ctx, tripID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		roster, err := rosters.GetByID(ctx, t.RosterID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !assignedToRoster(principal, roster) {
			return ErrNotAssigned
		}
		if !t.IsActive || !canTransition(t.Status, model.TripStatusRideCompleted) {
			return ErrInvalidAction
		}
		if t.StartKm != nil && input.EndKm < *t.StartKm {
			return ErrInvalidInput
		}

		now := time.Now()
		endKm := input.EndKm
		sheet := input.TripSheetPhoto
		t.Status = model.TripStatusRideCompleted
		t.EndedAt = &now
		t.EndKm = &endKm
		if sheet != "" {
			t.TripSheetPhoto = &sheet
		}
		t.IsActive = false

		if err := trips.Update(ctx, t); err != nil {
			return err
		}
		trip = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}

// ActiveTripForRoster returns the open trip of a roster the caller is
// assigned to, nil when the day has no open trip.
func (s *TripService) ActiveTripForRoster(ctx context.Context, principal model.Principal, rosterID string) (*model.Trip, error) {
	id, err := uuid.Parse(rosterID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	roster, err := repository.NewRosterRepository(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if principal.IsDriver() && !assignedToRoster(principal, roster) {
		return nil, ErrPermissionDenied
	}
	return repository.NewTripRepository(s.db).FindActiveByRoster(ctx, id)
}

func (s *TripService) ListByRoster(ctx context.Context, principal model.Principal, rosterID string) ([]model.Trip, error) {
	id, err := uuid.Parse(rosterID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if principal.IsDriver() {
		roster, err := repository.NewRosterRepository(s.db).GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !assignedToRoster(principal, roster) {
			return nil, ErrPermissionDenied
		}
	}
	return repository.NewTripRepository(s.db).ListByRoster(ctx, id)
}
