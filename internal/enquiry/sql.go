package enquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects the database behind the store.
type Config struct {
	Driver string
	DSN    string
}

// SQLStore implements Store on database/sql for SQLite and PostgreSQL.
type SQLStore struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
	now    func() time.Time
}

var _ Store = (*SQLStore)(nil)

// Open connects to the configured database and applies pending migrations.
// An SQLite DSN is a file path, or ":memory:".
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	var (
		db  *sql.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		db, err = openSQLite(cfg.DSN)
	case DriverPostgres, "pgx":
		driver = DriverPostgres
		if cfg.DSN == "" {
			return nil, fmt.Errorf("store dsn is required for postgres")
		}
		db, err = sql.Open("pgx", cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q (want %s or %s)", cfg.Driver, DriverSQLite, DriverPostgres)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	s := newSQLStore(db, driver, logger)
	if err := s.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("enquiry store ready", slog.String("driver", driver))
	return s, nil
}

func openSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" || dsn == ":memory:" {
		db, err := sql.Open("sqlite", ":memory:")
		if err != nil {
			return nil, err
		}
		// Every pooled connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return sql.Open("sqlite", "file:"+dsn+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
}

func newSQLStore(db *sql.DB, driver string, logger *slog.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		driver: driver,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// DB returns the underlying connection.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Driver returns the store driver name.
func (s *SQLStore) Driver() string {
	return s.driver
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Create saves a new enquiry.
func (s *SQLStore) Create(ctx context.Context, e *Enquiry) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if err := e.Validate(); err != nil {
		return err
	}

	e.ID = uuid.New().String()
	e.CreatedAt = s.now()

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO enquiries (id, vehicle_id, vehicle_title, dealer_name, name, email, phone, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.VehicleID, e.VehicleTitle, e.DealerName, e.Name, e.Email, e.Phone, e.Message, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create enquiry: %w", err)
	}

	s.logger.Info("enquiry created",
		slog.String("id", e.ID),
		slog.String("vehicle_id", e.VehicleID),
	)
	return nil
}

// List returns stored enquiries, newest first.
func (s *SQLStore) List(ctx context.Context, opts ListOptions) ([]*Enquiry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT id, vehicle_id, vehicle_title, dealer_name, name, email, phone, message, created_at
		FROM enquiries`
	args := []any{}
	if opts.VehicleID != "" {
		query += ` WHERE vehicle_id = ?`
		args = append(args, opts.VehicleID)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Enquiry
	for rows.Next() {
		e := &Enquiry{}
		if err := rows.Scan(&e.ID, &e.VehicleID, &e.VehicleTitle, &e.DealerName,
			&e.Name, &e.Email, &e.Phone, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}

	return result, nil
}

// RecordReveal saves one phone reveal for a vehicle.
func (s *SQLStore) RecordReveal(ctx context.Context, vehicleID string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if vehicleID == "" {
		return errors.New("vehicle id is required")
	}

	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO phone_reveals (id, vehicle_id, created_at) VALUES (?, ?, ?)`),
		uuid.New().String(), vehicleID, s.now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record phone reveal: %w", err)
	}
	return nil
}

// RevealCounts returns the number of reveals per vehicle.
func (s *SQLStore) RevealCounts(ctx context.Context) ([]RevealCount, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT vehicle_id, COUNT(*) AS reveals FROM phone_reveals
		 GROUP BY vehicle_id ORDER BY reveals DESC, vehicle_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to count phone reveals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []RevealCount
	for rows.Next() {
		var rc RevealCount
		if err := rows.Scan(&rc.VehicleID, &rc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan reveal count: %w", err)
		}
		counts = append(counts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to count phone reveals: %w", err)
	}
	return counts, nil
}
