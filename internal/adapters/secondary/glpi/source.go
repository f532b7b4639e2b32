// Package glpi is the secondary adapter that reads ticket rows from a
// GLPI database. One implementation covers MySQL/MariaDB (the native GLPI
// backend), PostgreSQL and SQLite; the backend is chosen at construction
// and nothing above this package branches on it.
package glpi

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
	apperrors "github.com/sesma-ti/glpi-dashboard-backend/internal/core/errors"
	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/ports"
)

// Backend selects the database driver the ticket source uses.
type Backend string

const (
	BackendMySQL    Backend = "mysql"
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// driverName returns the registered database/sql driver for the backend.
func (b Backend) driverName() (string, error) {
	switch b {
	case BackendMySQL:
		return "mysql", nil
	case BackendPostgres:
		return "pgx", nil
	case BackendSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupportedBackend, b)
	}
}

// Config holds the connection settings for a ticket source.
type Config struct {
	Backend         Backend
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// TicketSource reads joined ticket rows through an owned *sql.DB. The
// handle is injected into consumers, never shared as package state; Close
// belongs to whoever constructed it.
type TicketSource struct {
	db      *sql.DB
	backend Backend
}

var _ ports.TicketSource = (*TicketSource)(nil)

// NewTicketSource opens and verifies a connection for the configured
// backend.
func NewTicketSource(ctx context.Context, cfg Config) (*TicketSource, error) {
	driver, err := cfg.Backend.driverName()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Backend, err)
	}

	if cfg.Backend == BackendSQLite {
		// A single open connection avoids "database is locked" errors.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", cfg.Backend, err)
	}

	return &TicketSource{db: db, backend: cfg.Backend}, nil
}

// Ping verifies the connection is still usable.
func (s *TicketSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CountTickets returns the number of non-deleted tickets. Used as a
// health-check smoke probe.
func (s *TicketSource) CountTickets(ctx context.Context) (int64, error) {
	var count int64
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM glpi_tickets WHERE is_deleted = 0")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}

// Close releases the underlying connection pool.
func (s *TicketSource) Close() error {
	return s.db.Close()
}

// FetchTickets runs the joined ticket query with the given filter and maps
// the rows into domain records.
func (s *TicketSource) FetchTickets(ctx context.Context, filter ports.TicketFilter) ([]domain.TicketRecord, error) {
	query, args := buildTicketQuery(s.backend, filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tickets: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TicketRecord, 0)
	for rows.Next() {
		var (
			id         int64
			status     int
			openedAt   any
			kind       sql.NullInt64
			requester  sql.NullString
			technician sql.NullString
			category   sql.NullString
			location   sql.NullString
		)
		if err := rows.Scan(&id, &status, &openedAt, &kind, &requester, &technician, &category, &location); err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}

		rec := domain.TicketRecord{
			ID:         id,
			StatusCode: status,
			OpenedAt:   scanTime(openedAt),
			Requester:  nullableString(requester),
			Technician: nullableString(technician),
			Category:   nullableString(category),
			Location:   nullableString(location),
		}
		if kind.Valid {
			k := domain.TicketKind(kind.Int64)
			rec.Kind = &k
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return records, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	value := v.String
	return &value
}

// scanTime coerces the backend's datetime representation into a time.Time.
// MySQL without parseTime and SQLite both hand back text, PostgreSQL and
// MySQL with parseTime hand back time.Time. Unparseable values are treated
// as absent, matching the malformed-record policy.
func scanTime(v any) *time.Time {
	switch value := v.(type) {
	case time.Time:
		return &value
	case []byte:
		return parseDBTime(string(value))
	case string:
		return parseDBTime(value)
	default:
		return nil
	}
}

var dbTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseDBTime(value string) *time.Time {
	for _, layout := range dbTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
