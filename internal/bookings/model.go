// Package bookings manages client appointment requests: public creation and
// the admin review lifecycle.
package bookings

import (
	"fmt"
	"strings"
	"time"
)

// Status is the admin-managed lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusDeclined  Status = "DECLINED"
	StatusDone      Status = "DONE"
)

// ParseStatus normalizes and validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusDeclined:
		return StatusDeclined, nil
	case StatusDone:
		return StatusDone, nil
	}
	return "", fmt.Errorf("bookings: invalid status %q", s)
}

// Booking is a client appointment request. RequestedStart/RequestedEnd are
// nil when the client did not pick a published slot.
type Booking struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Notes          string     `json:"notes,omitempty"`
	PreviewURL     string     `json:"previewUrl,omitempty"`
	RequestedStart *time.Time `json:"requestedStart,omitempty"`
	RequestedEnd   *time.Time `json:"requestedEnd,omitempty"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// NewBookingInput carries the fields a caller may set at creation time.
type NewBookingInput struct {
	Name           string
	Phone          string
	Notes          string
	PreviewURL     string
	RequestedStart *time.Time
	RequestedEnd   *time.Time
	// Status is only honored for admin manual entry; public creation always
	// starts PENDING.
	Status Status
}

// Validate checks required fields and the requested window's shape.
func (in NewBookingInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return fmt.Errorf("bookings: name and phone are required")
	}
	if (in.RequestedStart == nil) != (in.RequestedEnd == nil) {
		return fmt.Errorf("bookings: requestedStart and requestedEnd must be set together")
	}
	if in.RequestedStart != nil && !in.RequestedStart.Before(*in.RequestedEnd) {
		return fmt.Errorf("bookings: requestedStart must be before requestedEnd")
	}
	return nil
}
