package service

import (
	"context"

	"github.com/rs/zerolog"

	"fleet-service/internal/model"
)

// Notifier receives servicing-workflow events. Delivery (email, chat) is
// owned by the surrounding infrastructure; the core only emits.
type Notifier interface {
	ServiceTicketOpened(ctx context.Context, ticket *model.ServiceTicket, vehicle *model.Vehicle)
	ServiceTicketCompleted(ctx context.Context, ticket *model.ServiceTicket, vehicle *model.Vehicle)
}

// LogNotifier writes notification events to the log. Used when no
// delivery channel is wired.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) ServiceTicketOpened(ctx context.Context, ticket *model.ServiceTicket, vehicle *model.Vehicle) {
	n.log.Info().
		Str("ticket_id", ticket.ID.String()).
		Str("registration", vehicle.RegistrationNumber).
		Str("issue_type", string(ticket.IssueType)).
		Msg("service ticket opened")
}

func (n *LogNotifier) ServiceTicketCompleted(ctx context.Context, ticket *model.ServiceTicket, vehicle *model.Vehicle) {
	n.log.Info().
		Str("ticket_id", ticket.ID.String()).
		Str("registration", vehicle.RegistrationNumber).
		Msg("service ticket completed")
}
