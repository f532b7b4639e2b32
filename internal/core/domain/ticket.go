package domain

import "time"

// TicketKind discriminates incidents from service requests in the GLPI schema.
type TicketKind int

const (
	KindIncident TicketKind = 1
	KindRequest  TicketKind = 2
)

// IsValid reports whether the kind is one of the recognized GLPI ticket types.
func (k TicketKind) IsValid() bool {
	return k == KindIncident || k == KindRequest
}

// TicketRecord is one ticket row as fetched from the GLPI schema, with the
// requester, technician, category and location joins already applied.
//
// Pointer fields come from LEFT JOINs or nullable columns: nil means the
// value is absent, which is distinct from an empty string. Records are
// immutable once fetched; aggregators only read them.
type TicketRecord struct {
	ID         int64
	StatusCode int
	OpenedAt   *time.Time
	Kind       *TicketKind
	Requester  *string
	Technician *string
	Category   *string
	Location   *string
}
