package bookings

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tayloredroots/salon-api/internal/notify"
	"github.com/tayloredroots/salon-api/internal/observability/metrics"
	"github.com/tayloredroots/salon-api/pkg/logging"
)

var bookingsTracer = otel.Tracer("salon.internal.bookings")

// Notifier alerts the salon owner about new booking requests.
type Notifier interface {
	BookingReceived(ctx context.Context, n notify.BookingNotice) error
}

// Service wraps the repository with notification and metrics side effects.
type Service struct {
	repo     *Repository
	notifier Notifier
	metrics  *metrics.SalonMetrics
	logger   *logging.Logger
}

// NewService constructs a bookings service. notifier and m may be nil.
func NewService(repo *Repository, notifier Notifier, m *metrics.SalonMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, notifier: notifier, metrics: m, logger: logger.Component("bookings")}
}

// Create stores a booking request and notifies the owner. Notification
// failures are logged, never surfaced: the client's booking stands.
func (s *Service) Create(ctx context.Context, in NewBookingInput) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.create")
	defer span.End()

	b, err := s.repo.Create(ctx, in)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("salon.booking_id", b.ID))
	s.metrics.ObserveBookingCreated(string(b.Status))
	s.logger.Info("booking created", "booking_id", b.ID, "status", b.Status)

	if s.notifier != nil {
		notice := notify.BookingNotice{
			Name:           b.Name,
			Phone:          b.Phone,
			Notes:          b.Notes,
			PreviewURL:     b.PreviewURL,
			RequestedStart: b.RequestedStart,
			RequestedEnd:   b.RequestedEnd,
		}
		if err := s.notifier.BookingReceived(ctx, notice); err != nil {
			s.logger.Error("booking notification failed", "error", err, "booking_id", b.ID)
		}
	}
	return b, nil
}

// UpdateStatus transitions a booking's lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.update_status")
	defer span.End()
	span.SetAttributes(
		attribute.String("salon.booking_id", id),
		attribute.String("salon.status", string(status)),
	)

	b, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.logger.Info("booking status updated", "booking_id", id, "status", status)
	return b, nil
}

// List returns bookings, optionally filtered by status.
func (s *Service) List(ctx context.Context, status Status) ([]Booking, error) {
	return s.repo.List(ctx, status)
}

// Delete removes a booking.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking deleted", "booking_id", id)
	return nil
}
