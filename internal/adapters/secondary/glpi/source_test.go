package glpi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/ports"
)

// newTestSource is a helper to create a ticket source for a test.
func newTestSource(t *testing.T) *TicketSource {
	require.NotEmpty(t, testDSN, "testDSN is empty. TestMain may not have run.")

	source, err := NewTicketSource(context.Background(), Config{
		Backend:      BackendPostgres,
		DSN:          testDSN,
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	require.NoError(t, err, "Failed to create ticket source")
	t.Cleanup(func() { source.Close() })

	return source
}

// resetTables clears fixture data so tests do not leak into one another.
func resetTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{
		"glpi_tickets_users", "glpi_tickets",
		"glpi_users", "glpi_itilcategories", "glpi_locations",
	} {
		_, err := testDB.Exec("DELETE FROM " + table)
		require.NoError(t, err, "Failed to clear %s", table)
	}
}

// seedReferenceData inserts the users, categories and locations the ticket
// fixtures point at.
func seedReferenceData(t *testing.T) {
	t.Helper()
	exec := func(query string, args ...any) {
		_, err := testDB.Exec(query, args...)
		require.NoError(t, err)
	}

	exec(`INSERT INTO glpi_users (id, name) VALUES ($1, $2)`, 10, "ana.silva")
	exec(`INSERT INTO glpi_users (id, name) VALUES ($1, $2)`, 11, "bruno.costa")
	exec(`INSERT INTO glpi_users (id, name) VALUES ($1, $2)`, 20, "carlos.tech")
	exec(`INSERT INTO glpi_users (id, name) VALUES ($1, $2)`, 21, "daniela.tech")
	exec(`INSERT INTO glpi_itilcategories (id, completename) VALUES ($1, $2)`, 1, "Hardware > Impressora")
	exec(`INSERT INTO glpi_locations (id, completename) VALUES ($1, $2)`, 1, "Sede > 2º Andar")
}

func insertTicket(t *testing.T, id int64, status int, date string, kind, requester, category, location any) {
	t.Helper()
	_, err := testDB.Exec(
		`INSERT INTO glpi_tickets (id, status, date, type, users_id_recipient, itilcategories_id, locations_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, status, date, kind, requester, category, location)
	require.NoError(t, err)
}

func assignTechnician(t *testing.T, ticketID, userID int64) {
	t.Helper()
	_, err := testDB.Exec(
		`INSERT INTO glpi_tickets_users (tickets_id, users_id, type) VALUES ($1, $2, 2)`,
		ticketID, userID)
	require.NoError(t, err)
}

func TestFetchTickets_MapsJoinedColumns(t *testing.T) {
	ctx := context.Background()
	source := newTestSource(t)
	resetTables(t)
	seedReferenceData(t)

	insertTicket(t, 1, 2, "2025-03-10 09:30:00", 1, 10, 1, 1)
	assignTechnician(t, 1, 20)

	records, err := source.FetchTickets(ctx, ports.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, 2, rec.StatusCode)
	require.NotNil(t, rec.OpenedAt)
	assert.Equal(t, time.Date(2025, time.March, 10, 9, 30, 0, 0, rec.OpenedAt.Location()), *rec.OpenedAt)
	require.NotNil(t, rec.Kind)
	assert.Equal(t, domain.KindIncident, *rec.Kind)
	require.NotNil(t, rec.Requester)
	assert.Equal(t, "ana.silva", *rec.Requester)
	require.NotNil(t, rec.Technician)
	assert.Equal(t, "carlos.tech", *rec.Technician)
	require.NotNil(t, rec.Category)
	assert.Equal(t, "Hardware > Impressora", *rec.Category)
	require.NotNil(t, rec.Location)
	assert.Equal(t, "Sede > 2º Andar", *rec.Location)
}

func TestFetchTickets_NullColumns(t *testing.T) {
	ctx := context.Background()
	source := newTestSource(t)
	resetTables(t)

	// No joined rows exist at all: every LEFT JOIN misses.
	insertTicket(t, 2, 1, "2025-03-11 08:00:00", nil, nil, nil, nil)

	records, err := source.FetchTickets(ctx, ports.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Nil(t, rec.Kind)
	assert.Nil(t, rec.Requester)
	assert.Nil(t, rec.Technician)
	assert.Nil(t, rec.Category)
	assert.Nil(t, rec.Location)
}

func TestFetchTickets_ExcludesDeleted(t *testing.T) {
	ctx := context.Background()
	source := newTestSource(t)
	resetTables(t)

	insertTicket(t, 3, 1, "2025-03-12 08:00:00", nil, nil, nil, nil)
	_, err := testDB.Exec(`UPDATE glpi_tickets SET is_deleted = 1 WHERE id = 3`)
	require.NoError(t, err)

	records, err := source.FetchTickets(ctx, ports.TicketFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchTickets_Filters(t *testing.T) {
	ctx := context.Background()
	source := newTestSource(t)
	resetTables(t)
	seedReferenceData(t)

	insertTicket(t, 10, 1, "2025-01-05 10:00:00", 1, 10, nil, nil)
	insertTicket(t, 11, 2, "2025-02-05 10:00:00", 2, 11, nil, nil)
	insertTicket(t, 12, 5, "2025-03-05 10:00:00", 1, 10, nil, nil)
	assignTechnician(t, 11, 20)
	assignTechnician(t, 12, 21)

	t.Run("by status code", func(t *testing.T) {
		status := 2
		records, err := source.FetchTickets(ctx, ports.TicketFilter{StatusCode: &status})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(11), records[0].ID)
	})

	t.Run("by requester substring", func(t *testing.T) {
		records, err := source.FetchTickets(ctx, ports.TicketFilter{Requester: "bruno"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(11), records[0].ID)
	})

	t.Run("by technician substring", func(t *testing.T) {
		records, err := source.FetchTickets(ctx, ports.TicketFilter{Technician: "daniela"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(12), records[0].ID)
	})

	t.Run("by date range inclusive of the end day", func(t *testing.T) {
		start := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
		records, err := source.FetchTickets(ctx, ports.TicketFilter{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("no match", func(t *testing.T) {
		records, err := source.FetchTickets(ctx, ports.TicketFilter{Requester: "nobody"})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestFetchTickets_CollapsesMultipleTechnicians(t *testing.T) {
	ctx := context.Background()
	source := newTestSource(t)
	resetTables(t)
	seedReferenceData(t)

	insertTicket(t, 20, 2, "2025-04-01 10:00:00", 1, 10, nil, nil)
	assignTechnician(t, 20, 20)
	assignTechnician(t, 20, 21)

	records, err := source.FetchTickets(ctx, ports.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Technician)
	// MAX over the two assigned names.
	assert.Equal(t, "daniela.tech", *records[0].Technician)
}

func TestCountTickets(t *testing.T) {
	ctx := context.Background()
	source := newTestSource(t)
	resetTables(t)

	insertTicket(t, 30, 1, "2025-05-01 10:00:00", nil, nil, nil, nil)
	insertTicket(t, 31, 1, "2025-05-02 10:00:00", nil, nil, nil, nil)

	count, err := source.CountTickets(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestNewTicketSource_UnsupportedBackend(t *testing.T) {
	_, err := NewTicketSource(context.Background(), Config{Backend: "oracle", DSN: "x"})
	require.Error(t, err)
}

func TestBuildTicketQuery_Placeholders(t *testing.T) {
	status := 1
	start := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)
	filter := ports.TicketFilter{
		StatusCode: &status,
		Requester:  "ana",
		Technician: "carlos",
		StartDate:  &start,
		EndDate:    &end,
	}

	t.Run("postgres numbers parameters", func(t *testing.T) {
		query, args := buildTicketQuery(BackendPostgres, filter)
		assert.Contains(t, query, "AND T.status = $1")
		assert.Contains(t, query, "AND U.name LIKE $2")
		assert.Contains(t, query, "AND T.date >= $3")
		assert.Contains(t, query, "AND T.date <= $4")
		assert.Contains(t, query, "HAVING MAX(Tech.name) LIKE $5")
		assert.Equal(t, []any{1, "%ana%", "2025-01-02 00:00:00", "2025-01-31 23:59:59", "%carlos%"}, args)
	})

	t.Run("mysql and sqlite use question marks", func(t *testing.T) {
		for _, backend := range []Backend{BackendMySQL, BackendSQLite} {
			query, args := buildTicketQuery(backend, filter)
			assert.NotContains(t, query, "$1")
			assert.Contains(t, query, "AND T.status = ?")
			assert.Contains(t, query, "HAVING MAX(Tech.name) LIKE ?")
			assert.Len(t, args, 5)
		}
	})

	t.Run("empty filter keeps grouping and no predicates", func(t *testing.T) {
		query, args := buildTicketQuery(BackendMySQL, ports.TicketFilter{})
		assert.Empty(t, args)
		assert.NotContains(t, query, "HAVING")
		assert.Contains(t, query, "GROUP BY T.id")
		assert.Contains(t, query, "WHERE T.is_deleted = 0")
	})
}
