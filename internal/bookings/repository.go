package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tayloredroots/salon-api/internal/schedule"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ErrNotFound is returned when a booking id does not exist.
var ErrNotFound = errors.New("bookings: not found")

const bookingColumns = `id::text, name, phone, COALESCE(notes, ''), COALESCE(preview_url, ''),
	       requested_start, requested_end, status, created_at`

// Repository provides persistence for bookings.
type Repository struct {
	db DB
}

// NewRepository creates a repository backed by a pgx pool (or mock).
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("bookings: db required")
	}
	return &Repository{db: db}
}

// Create inserts a booking and returns the stored row.
func (r *Repository) Create(ctx context.Context, in NewBookingInput) (*Booking, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}

	b := &Booking{
		ID:             uuid.NewString(),
		Name:           in.Name,
		Phone:          in.Phone,
		Notes:          in.Notes,
		PreviewURL:     in.PreviewURL,
		RequestedStart: in.RequestedStart,
		RequestedEnd:   in.RequestedEnd,
		Status:         status,
		CreatedAt:      time.Now().UTC(),
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (id, name, phone, notes, preview_url, requested_start, requested_end, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.Name, b.Phone, b.Notes, b.PreviewURL, b.RequestedStart, b.RequestedEnd, string(b.Status), b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("bookings: insert: %w", err)
	}
	return b, nil
}

// List returns bookings newest first, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status Status) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("bookings: list: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if out == nil {
		out = []Booking{}
	}
	return out, rows.Err()
}

// UpdateStatus transitions a booking to the given status and returns the
// updated row.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE bookings SET status = $2 WHERE id = $1
		RETURNING `+bookingColumns, id, string(status))
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("bookings: update status: %w", err)
	}
	return b, nil
}

// Delete removes a booking by id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("bookings: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActiveWindows returns the requested intervals of bookings that still
// block slots: a concrete requested window and a non-terminal status. This is
// the pre-filter the slot resolver expects.
func (r *Repository) ListActiveWindows(ctx context.Context) ([]schedule.BookingWindow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT requested_start, requested_end, status
		FROM bookings
		WHERE requested_start IS NOT NULL
		  AND requested_end IS NOT NULL
		  AND status NOT IN ('DECLINED', 'DONE')`)
	if err != nil {
		return nil, fmt.Errorf("bookings: list active windows: %w", err)
	}
	defer rows.Close()

	var out []schedule.BookingWindow
	for rows.Next() {
		var w schedule.BookingWindow
		if err := rows.Scan(&w.Start, &w.End, &w.Status); err != nil {
			return nil, fmt.Errorf("bookings: scan window: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	var b Booking
	var status string
	if err := row.Scan(&b.ID, &b.Name, &b.Phone, &b.Notes, &b.PreviewURL,
		&b.RequestedStart, &b.RequestedEnd, &status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("bookings: scan: %w", err)
	}
	b.Status = Status(status)
	return &b, nil
}
