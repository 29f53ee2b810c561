package edition

import (
	"context"
	"errors"

	"editionapi/internal/platform/eventbrite"
)

// ErrNoContent signals a valid empty result: the user has no organized
// events and no tickets at all. Distinct from any fetch failure.
var ErrNoContent = errors.New("no events or tickets found")

// Gateway is the slice of the Eventbrite client the assembler needs.
type Gateway interface {
	GetUser(ctx context.Context, accessToken string) (eventbrite.User, error)
	ListOrganizedEvents(ctx context.Context, accessToken string) ([]eventbrite.Event, error)
	ListTickets(ctx context.Context, accessToken string) ([]eventbrite.Order, error)
}

// Edition is the assembled artifact for one delivery: the events the user
// organizes and the tickets they bought, both filtered to the delivery
// window. Order within each slice follows the provider's ordering.
//
// Invariant: no event ID appears both in Events and inside a Tickets entry;
// organizer events win and the ticket duplicate is dropped.
type Edition struct {
	User    eventbrite.User
	Events  []eventbrite.Event
	Tickets []eventbrite.Order
}
