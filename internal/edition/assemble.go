package edition

import (
	"context"
	"fmt"

	"editionapi/internal/platform/eventbrite"

	"golang.org/x/sync/errgroup"
)

// Assembler builds an Edition from the user's provider data.
type Assembler struct {
	gateway Gateway
}

func NewAssembler(gateway Gateway) *Assembler {
	return &Assembler{gateway: gateway}
}

// Assemble fetches the user, their organized events and their tickets, and
// assembles the filtered, deduplicated Edition for the delivery window.
//
// The user fetch is fatal on error and short-circuits the other two; the
// events and tickets fetches run concurrently and may each come back
// empty. Both empty yields ErrNoContent before the delivery timestamp is
// even looked at.
func (a *Assembler) Assemble(ctx context.Context, accessToken, localDeliveryTime string) (Edition, error) {
	user, err := a.gateway.GetUser(ctx, accessToken)
	if err != nil {
		return Edition{}, fmt.Errorf("fetching the user's data: %w", err)
	}

	var (
		events []eventbrite.Event
		orders []eventbrite.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = a.gateway.ListOrganizedEvents(gctx, accessToken)
		if err != nil {
			return fmt.Errorf("fetching events for the user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = a.gateway.ListTickets(gctx, accessToken)
		if err != nil {
			return fmt.Errorf("fetching tickets for the user: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Edition{}, err
	}

	if len(events) == 0 && len(orders) == 0 {
		return Edition{User: user}, ErrNoContent
	}

	window, err := NewWindow(localDeliveryTime)
	if err != nil {
		return Edition{}, err
	}

	ed := Edition{User: user}
	seen := make(map[int64]bool)

	for _, ev := range events {
		ok, err := window.Contains(ev.StartDate, ev.Timezone)
		if err != nil {
			return Edition{}, fmt.Errorf("checking event %d: %v", ev.ID, err)
		}
		if ok {
			ed.Events = append(ed.Events, ev)
			seen[ev.ID] = true
		}
	}

	for _, o := range orders {
		ok, err := window.Contains(o.Event.StartDate, o.Event.Timezone)
		if err != nil {
			return Edition{}, fmt.Errorf("checking ticket order %d: %v", o.ID, err)
		}
		// Organizer events take precedence: a ticket for an event the
		// user also organizes is dropped, never the reverse.
		if ok && !seen[o.Event.ID] {
			ed.Tickets = append(ed.Tickets, o)
		}
	}

	return ed, nil
}
