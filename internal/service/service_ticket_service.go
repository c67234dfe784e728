package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fleet-service/internal/model"
	"fleet-service/internal/repository"
)

// ServiceTicketService owns the vehicle servicing workflow. Opening a
// ticket pulls the vehicle off every roster holding it; completing the
// last ticket reprojects the vehicle status from remaining state.
type ServiceTicketService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewServiceTicketService(db *gorm.DB, notifier Notifier) *ServiceTicketService {
	return &ServiceTicketService{db: db, notifier: notifier}
}

type CreateTicketInput struct {
	VehicleID    string
	IssueType    model.ServiceIssueType
	IssueSubtype string
	Description  string
	Address      string
	Latitude     *float64
	Longitude    *float64
	Priority     model.ServicePriority
	Photos       []string
	ReporteeID   *uuid.UUID
}

// Create opens a ticket, marks the vehicle UNDER_MAINTENANCE and moves
// every roster referencing it to SERVICE with the assignment detached.
func (s *ServiceTicketService) Create(ctx context.Context, principal model.Principal, input CreateTicketInput) (*model.ServiceTicket, error) {
	vehicleID, err := uuid.Parse(input.VehicleID)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if input.IssueType == "" {
		return nil, ErrInvalidInput
	}
	priority := input.Priority
	if priority == "" {
		priority = model.ServicePriorityMedium
	}

	var (
		ticket  *model.ServiceTicket
		vehicle *model.Vehicle
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		vehicles := repository.NewVehicleRepository(tx)
		rosters := repository.NewRosterRepository(tx)
		tickets := repository.NewServiceTicketRepository(tx)
		logs := repository.NewRosterLogRepository(tx)

		v, err := vehicles.GetByIDForUpdate(ctx, vehicleID)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrNotFound
		}
		vehicle = v

		held, err := tickets.HasOpenByVehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		if held {
			return ErrConflict
		}

		ticket = &model.ServiceTicket{
			VehicleID:    vehicleID,
			Status:       model.ServiceStatusOpen,
			IssueType:    input.IssueType,
			IssueSubtype: input.IssueSubtype,
			Description:  input.Description,
			Address:      input.Address,
			Latitude:     input.Latitude,
			Longitude:    input.Longitude,
			Priority:     priority,
			Photos:       datatypes.NewJSONSlice(input.Photos),
			ReporteeID:   input.ReporteeID,
			CreatedByID:  &principal.UserID,
			IsActive:     true,
		}
		if err := tickets.Create(ctx, ticket); err != nil {
			return err
		}

		affected, err := rosters.ListByVehicle(ctx, vehicleID)
		if err != nil {
			return err
		}
		for i := range affected {
			roster := &affected[i]
			prevVehicle := roster.VehicleID

			roster.Status = model.RosterStatusService
			roster.IsActive = false
			roster.VehicleID = nil
			if err := rosters.Update(ctx, roster); err != nil {
				return err
			}

			err := logs.CreateVehicleLog(ctx, &model.RosterVehicleLog{
				RosterID:     roster.ID,
				OldVehicleID: prevVehicle,
				NewVehicleID: nil,
				Status:       roster.Status,
				CreatedByID:  &principal.UserID,
			})
			if err != nil {
				return err
			}
		}

		return vehicles.UpdateStatus(ctx, vehicleID, model.VehicleStatusUnderMaintenance)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.ServiceTicketOpened(ctx, ticket, vehicle)
	return ticket, nil
}

// ChangeStatus moves a ticket along OPEN, IN_PROGRESS, ON_HOLD,
// COMPLETED. Tickets never reopen. The vehicle status follows: work in
// progress means UNDER_SERVICING, completion reprojects from remaining
// tickets and rosters.
func (s *ServiceTicketService) ChangeStatus(ctx context.Context, principal model.Principal, id string, status model.ServiceStatus, remarks string) (*model.ServiceTicket, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}
	switch status {
	case model.ServiceStatusInProgress, model.ServiceStatusOnHold, model.ServiceStatusCompleted:
	default:
		return nil, ErrInvalidInput
	}

	var (
		ticket    *model.ServiceTicket
		vehicle   *model.Vehicle
		completed bool
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		tickets := repository.NewServiceTicketRepository(tx)
		vehicles := repository.NewVehicleRepository(tx)

		t, err := tickets.GetByID(ctx, ticketID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !t.Open() {
			return ErrConflict
		}
		if t.Status == status {
			ticket = t
			return nil
		}

		oldStatus := t.Status
		t.Status = status
		if remarks != "" {
			t.Remarks = &remarks
		}
		if status == model.ServiceStatusCompleted {
			t.IsActive = false
		}
		if err := tickets.Update(ctx, t); err != nil {
			return err
		}

		var remarksPtr *string
		if remarks != "" {
			remarksPtr = &remarks
		}
		err = tickets.CreateLog(ctx, &model.ServiceLog{
			ServiceID:   t.ID,
			OldStatus:   oldStatus,
			NewStatus:   status,
			Remarks:     remarksPtr,
			CreatedByID: &principal.UserID,
		})
		if err != nil {
			return err
		}

		switch status {
		case model.ServiceStatusInProgress, model.ServiceStatusOnHold:
			if err := vehicles.UpdateStatus(ctx, t.VehicleID, model.VehicleStatusUnderServicing); err != nil {
				return err
			}
		case model.ServiceStatusCompleted:
			if err := projectVehicleStatus(ctx, tx, t.VehicleID, nil); err != nil {
				return err
			}
			completed = true
		}

		v, err := vehicles.GetByID(ctx, t.VehicleID)
		if err != nil {
			return err
		}
		vehicle = v
		ticket = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed && vehicle != nil {
		s.notifier.ServiceTicketCompleted(ctx, ticket, vehicle)
	}
	return ticket, nil
}

func (s *ServiceTicketService) Get(ctx context.Context, id string) (*model.ServiceTicket, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidInput
	}
	ticket, err := repository.NewServiceTicketRepository(s.db).GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *ServiceTicketService) List(ctx context.Context, filter repository.ServiceTicketListFilter) ([]model.ServiceTicket, error) {
	return repository.NewServiceTicketRepository(s.db).List(ctx, filter)
}
