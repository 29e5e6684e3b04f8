package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tayloredroots/salon-api/pkg/logging"
)

// BookingNotice carries the booking details included in an owner
// notification. It deliberately mirrors only what the email needs, keeping
// this package independent of the bookings model.
type BookingNotice struct {
	Name           string
	Phone          string
	Notes          string
	PreviewURL     string
	RequestedStart *time.Time
	RequestedEnd   *time.Time
}

// Service sends owner notifications about new bookings.
type Service struct {
	email      EmailSender
	ownerEmail string
	salonName  string
	logger     *logging.Logger
}

// NewService creates a notification service. An empty ownerEmail disables
// sending.
func NewService(email EmailSender, ownerEmail, salonName string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if salonName == "" {
		salonName = "TayloredRoots Salon"
	}
	return &Service{email: email, ownerEmail: ownerEmail, salonName: salonName, logger: logger.Component("notify")}
}

// BookingReceived emails the owner about a new booking request.
func (s *Service) BookingReceived(ctx context.Context, n BookingNotice) error {
	if s.email == nil || s.ownerEmail == "" {
		s.logger.Debug("owner notifications disabled, skipping")
		return nil
	}

	msg := EmailMessage{
		To:      s.ownerEmail,
		ToName:  s.salonName,
		Subject: fmt.Sprintf("New booking request from %s", n.Name),
		Body:    bookingBody(n),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: booking received: %w", err)
	}
	return nil
}

func bookingBody(n BookingNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\n", n.Name, n.Phone)
	if n.RequestedStart != nil && n.RequestedEnd != nil {
		fmt.Fprintf(&b, "Requested: %s - %s\n",
			n.RequestedStart.Format("Mon Jan 2 15:04"),
			n.RequestedEnd.Format("15:04 MST"))
	} else {
		b.WriteString("Requested: no slot selected\n")
	}
	if n.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", n.Notes)
	}
	if n.PreviewURL != "" {
		fmt.Fprintf(&b, "Hair try-on preview: %s\n", n.PreviewURL)
	}
	return b.String()
}
