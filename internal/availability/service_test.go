package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tayloredroots/salon-api/internal/schedule"
)

type fakeStore struct {
	rules     []schedule.Rule
	blackouts []schedule.Blackout
	rulesErr  error
}

func (f *fakeStore) ListRules(ctx context.Context) ([]schedule.Rule, error) {
	return f.rules, f.rulesErr
}

func (f *fakeStore) ListBlackouts(ctx context.Context) ([]schedule.Blackout, error) {
	return f.blackouts, nil
}

type fakeWindows struct {
	windows []schedule.BookingWindow
}

func (f *fakeWindows) ListActiveWindows(ctx context.Context) ([]schedule.BookingWindow, error) {
	return f.windows, nil
}

var chicago = time.FixedZone("America/Chicago", -6*3600)

func TestServiceSlotsPipeline(t *testing.T) {
	// 2026-01-06 is a Tuesday, 2026-01-13 the next one.
	store := &fakeStore{
		rules:     []schedule.Rule{{ID: "r1", DayOfWeek: 2, StartTime: "09:00", EndTime: "19:00"}},
		blackouts: []schedule.Blackout{{Date: time.Date(2026, 1, 13, 0, 0, 0, 0, chicago)}},
	}
	windows := &fakeWindows{windows: []schedule.BookingWindow{{
		Start:  time.Date(2026, 1, 6, 12, 0, 0, 0, chicago),
		End:    time.Date(2026, 1, 6, 13, 0, 0, 0, chicago),
		Status: "PENDING",
	}}}

	svc := NewService(store, windows, nil)
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, chicago)
	to := time.Date(2026, 1, 18, 23, 59, 59, 0, chicago)

	slots, err := svc.Slots(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot (second Tuesday blacked out), got %d", len(slots))
	}
	if slots[0].Status != schedule.SlotBooked {
		t.Errorf("overlapping booking should mark slot booked, got %s", slots[0].Status)
	}
}

func TestServiceSlotsEmptySchedule(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeWindows{}, nil)
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, chicago)

	slots, err := svc.Slots(context.Background(), from, from.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected empty non-nil slot list, got %#v", slots)
	}
}

func TestServiceSlotsStoreError(t *testing.T) {
	svc := NewService(&fakeStore{rulesErr: errors.New("boom")}, nil, nil)
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, chicago)

	if _, err := svc.Slots(context.Background(), from, from.AddDate(0, 0, 7)); err == nil {
		t.Fatal("store error must propagate")
	}
}

func TestServiceSlotsNilBookingSource(t *testing.T) {
	store := &fakeStore{
		rules: []schedule.Rule{{DayOfWeek: 2, StartTime: "09:00", EndTime: "19:00"}},
	}
	svc := NewService(store, nil, nil)
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, chicago)

	slots, err := svc.Slots(context.Background(), from, from.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("Slots: %v", err)
	}
	for _, s := range slots {
		if s.Status != schedule.SlotOpen {
			t.Errorf("without a booking source every slot stays open, got %s", s.Status)
		}
	}
}
