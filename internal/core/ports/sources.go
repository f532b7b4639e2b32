package ports

import (
	"context"
	"time"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
)

// TicketFilter narrows the rows fetched from a TicketSource. Zero values
// mean "no constraint". Filtering happens entirely before aggregation;
// aggregators never re-filter.
type TicketFilter struct {
	StatusCode *int       // exact status code
	Requester  string     // substring match on requester name
	Technician string     // substring match on the collapsed technician name
	StartDate  *time.Time // inclusive, expanded to day start by the source
	EndDate    *time.Time // inclusive, expanded to day end by the source
}

// TicketSource abstracts fetching joined ticket rows from the GLPI schema.
// A failed fetch returns an error; an empty result is a nil error with an
// empty slice, never the other way around.
type TicketSource interface {
	FetchTickets(ctx context.Context, filter TicketFilter) ([]domain.TicketRecord, error)
}
