package availability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tayloredroots/salon-api/internal/schedule"
	"github.com/tayloredroots/salon-api/pkg/logging"
)

var availabilityTracer = otel.Tracer("salon.internal.availability")

// RuleStore is what the service needs from the availability repository.
type RuleStore interface {
	ListRules(ctx context.Context) ([]schedule.Rule, error)
	ListBlackouts(ctx context.Context) ([]schedule.Blackout, error)
}

// BookingWindows supplies the active booking intervals used for conflict
// marking; implemented by the bookings repository.
type BookingWindows interface {
	ListActiveWindows(ctx context.Context) ([]schedule.BookingWindow, error)
}

// Service computes the published schedule for a date range. Slots are derived
// fresh on every call; nothing here is cached.
type Service struct {
	store    RuleStore
	bookings BookingWindows
	logger   *logging.Logger
}

// NewService constructs an availability service.
func NewService(store RuleStore, bookings BookingWindows, logger *logging.Logger) *Service {
	if store == nil {
		panic("availability: rule store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{store: store, bookings: bookings, logger: logger.Component("availability")}
}

// Slots loads rules, blackouts, and active bookings, then resolves the slot
// list for [from, to].
func (s *Service) Slots(ctx context.Context, from, to time.Time) ([]schedule.Slot, error) {
	ctx, span := availabilityTracer.Start(ctx, "availability.slots")
	defer span.End()
	span.SetAttributes(
		attribute.String("salon.range_from", from.Format(time.RFC3339)),
		attribute.String("salon.range_to", to.Format(time.RFC3339)),
	)

	rules, err := s.store.ListRules(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("availability: load rules: %w", err)
	}
	blackouts, err := s.store.ListBlackouts(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("availability: load blackouts: %w", err)
	}

	var windows []schedule.BookingWindow
	if s.bookings != nil {
		windows, err = s.bookings.ListActiveWindows(ctx)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("availability: load booking windows: %w", err)
		}
	}

	slots := schedule.Resolve(rules, blackouts, windows, from, to)
	span.SetAttributes(attribute.Int("salon.slot_count", len(slots)))
	s.logger.Debug("resolved availability",
		"rules", len(rules),
		"blackouts", len(blackouts),
		"bookings", len(windows),
		"slots", len(slots),
	)
	if slots == nil {
		slots = []schedule.Slot{}
	}
	return slots, nil
}
