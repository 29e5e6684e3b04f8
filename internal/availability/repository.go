// Package availability persists weekly opening rules and blackout dates and
// answers the public availability query by running the schedule pipeline over
// them.
package availability

import (
	"context"
	"errors"
	"fmt"

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

// ErrNotFound is returned when a rule or blackout id does not exist.
var ErrNotFound = errors.New("availability: not found")

// Repository provides persistence for availability rules and blackouts.
type Repository struct {
	db DB
}

// NewRepository creates a repository backed by a pgx pool (or mock).
func NewRepository(db DB) *Repository {
	if db == nil {
		panic("availability: db required")
	}
	return &Repository{db: db}
}

// ListRules returns every availability rule, ordered for the admin calendar.
func (r *Repository) ListRules(ctx context.Context) ([]schedule.Rule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, day_of_week, start_time, end_time
		FROM availability_rules
		ORDER BY day_of_week, start_time`)
	if err != nil {
		return nil, fmt.Errorf("availability: list rules: %w", err)
	}
	defer rows.Close()

	var out []schedule.Rule
	for rows.Next() {
		var rule schedule.Rule
		if err := rows.Scan(&rule.ID, &rule.DayOfWeek, &rule.StartTime, &rule.EndTime); err != nil {
			return nil, fmt.Errorf("availability: scan rule: %w", err)
		}
		out = append(out, rule)
	}
	if out == nil {
		out = []schedule.Rule{}
	}
	return out, rows.Err()
}

// CreateRule inserts a validated rule and returns it with its assigned id.
func (r *Repository) CreateRule(ctx context.Context, rule schedule.Rule) (schedule.Rule, error) {
	if err := rule.Validate(); err != nil {
		return schedule.Rule{}, err
	}
	rule.ID = uuid.NewString()
	_, err := r.db.Exec(ctx, `
		INSERT INTO availability_rules (id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)`,
		rule.ID, rule.DayOfWeek, rule.StartTime, rule.EndTime)
	if err != nil {
		return schedule.Rule{}, fmt.Errorf("availability: insert rule: %w", err)
	}
	return rule, nil
}

// DeleteRule removes a rule by id.
func (r *Repository) DeleteRule(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM availability_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("availability: delete rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBlackouts returns every blackout date.
func (r *Repository) ListBlackouts(ctx context.Context) ([]schedule.Blackout, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, date, COALESCE(reason, '')
		FROM blackouts
		ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("availability: list blackouts: %w", err)
	}
	defer rows.Close()

	var out []schedule.Blackout
	for rows.Next() {
		var b schedule.Blackout
		if err := rows.Scan(&b.ID, &b.Date, &b.Reason); err != nil {
			return nil, fmt.Errorf("availability: scan blackout: %w", err)
		}
		out = append(out, b)
	}
	if out == nil {
		out = []schedule.Blackout{}
	}
	return out, rows.Err()
}

// CreateBlackout inserts a blackout date.
func (r *Repository) CreateBlackout(ctx context.Context, b schedule.Blackout) (schedule.Blackout, error) {
	if b.Date.IsZero() {
		return schedule.Blackout{}, fmt.Errorf("availability: blackout date required")
	}
	b.ID = uuid.NewString()
	_, err := r.db.Exec(ctx, `
		INSERT INTO blackouts (id, date, reason)
		VALUES ($1, $2, $3)`,
		b.ID, b.Date, b.Reason)
	if err != nil {
		return schedule.Blackout{}, fmt.Errorf("availability: insert blackout: %w", err)
	}
	return b, nil
}

// DeleteBlackout removes a blackout by id.
func (r *Repository) DeleteBlackout(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM blackouts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("availability: delete blackout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
