package glpi

import (
	"fmt"
	"strings"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/ports"
)

// baseTicketQuery is the GLPI join behind every dashboard request. The
// technician comes from a many-to-many link (glpi_tickets_users, type = 2
// meaning "assigned"); MAX collapses multiple assigned technicians into an
// arbitrary one, a known ambiguity of the legacy dashboard that is kept
// as-is. The GROUP BY repeats the plain columns so the query is valid on
// all three backends.
const baseTicketQuery = `
SELECT T.id, T.status, T.date, T.type,
       U.name AS requisitante, MAX(Tech.name) AS tecnico,
       C.completename AS categoria, L.completename AS localizacao
FROM glpi_tickets AS T
LEFT JOIN glpi_users AS U ON U.id = T.users_id_recipient
LEFT JOIN glpi_itilcategories AS C ON C.id = T.itilcategories_id
LEFT JOIN glpi_locations AS L ON L.id = T.locations_id
LEFT JOIN glpi_tickets_users AS TU ON TU.tickets_id = T.id AND TU.type = 2
LEFT JOIN glpi_users AS Tech ON Tech.id = TU.users_id
WHERE T.is_deleted = 0`

const ticketGroupBy = `
GROUP BY T.id, T.status, T.date, T.type, U.name, C.completename, L.completename`

// placeholders numbers parameters for PostgreSQL and uses "?" elsewhere.
type placeholders struct {
	backend Backend
	n       int
}

func (p *placeholders) next() string {
	if p.backend == BackendPostgres {
		p.n++
		return fmt.Sprintf("$%d", p.n)
	}
	return "?"
}

// buildTicketQuery renders the filter into SQL predicates. Status,
// requester and date range apply before grouping; the technician filter
// must run after grouping because the technician column is an aggregate.
func buildTicketQuery(backend Backend, filter ports.TicketFilter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
		ph   = placeholders{backend: backend}
	)
	sb.WriteString(baseTicketQuery)

	if filter.StatusCode != nil {
		sb.WriteString(" AND T.status = " + ph.next())
		args = append(args, *filter.StatusCode)
	}
	if filter.Requester != "" {
		sb.WriteString(" AND U.name LIKE " + ph.next())
		args = append(args, "%"+filter.Requester+"%")
	}
	if filter.StartDate != nil {
		sb.WriteString(" AND T.date >= " + ph.next())
		args = append(args, filter.StartDate.Format("2006-01-02")+" 00:00:00")
	}
	if filter.EndDate != nil {
		sb.WriteString(" AND T.date <= " + ph.next())
		args = append(args, filter.EndDate.Format("2006-01-02")+" 23:59:59")
	}

	sb.WriteString(ticketGroupBy)

	if filter.Technician != "" {
		sb.WriteString(" HAVING MAX(Tech.name) LIKE " + ph.next())
		args = append(args, "%"+filter.Technician+"%")
	}

	return sb.String(), args
}
