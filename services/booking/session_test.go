package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"slotbook/models"
)

func newSessionService(store *fakeStore) *DefaultSessionService {
	return &DefaultSessionService{
		Engine:   newTestService(store),
		Sessions: NewMemorySessionStore(time.Hour),
	}
}

func TestSessionFlowBooksSlot(t *testing.T) {
	store := newFakeStore()
	store.addSheet("Providers", directoryRow(2, "Center", "A"))
	day := dateOffset(1)
	store.addSheet(day, slot(2, "10:00", "A", ""))

	svc := newSessionService(store)
	ctx := context.Background()

	if _, err := svc.ChooseLocation(ctx, "42", "Center"); err != nil {
		t.Fatalf("choose location: %v", err)
	}
	days, err := svc.ChooseProvider(ctx, "42", "any")
	if err != nil {
		t.Fatalf("choose provider: %v", err)
	}
	if len(days) != 1 || days[0] != day {
		t.Fatalf("expected [%s], got %v", day, days)
	}
	times, err := svc.ChooseDate(ctx, "42", day)
	if err != nil {
		t.Fatalf("choose date: %v", err)
	}
	if len(times) != 1 || times[0] != "10:00" {
		t.Fatalf("expected [10:00], got %v", times)
	}
	session, err := svc.ChooseTime(ctx, "42", "10:00")
	if err != nil {
		t.Fatalf("choose time: %v", err)
	}
	if !session.Complete() {
		t.Fatalf("expected a complete selection, got %+v", session)
	}

	booked, err := svc.Confirm(ctx, "42", "id: 42")
	if err != nil || !booked {
		t.Fatalf("expected confirmation to book, got booked=%v err=%v", booked, err)
	}
	if got := store.occupant(day, 2); got != "id: 42" {
		t.Fatalf("expected occupant written, got %q", got)
	}
	if _, err := svc.Sessions.Get(ctx, "42"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session cleared after booking, got %v", err)
	}
}

func TestSessionConfirmIncomplete(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	ctx := context.Background()

	if _, err := svc.ChooseLocation(ctx, "42", "Center"); err != nil {
		t.Fatalf("choose location: %v", err)
	}
	if _, err := svc.Confirm(ctx, "42", "id: 42"); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected incomplete-selection error, got %v", err)
	}
}

func TestSessionProviderRequiresLocation(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)

	if _, err := svc.ChooseProvider(context.Background(), "42", "A"); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected incomplete-selection error, got %v", err)
	}
}

func TestSessionChooseLocationResetsDownstream(t *testing.T) {
	store := newFakeStore()
	day := dateOffset(1)
	store.addSheet(day, slot(2, "10:00", "A", ""))

	svc := newSessionService(store)
	ctx := context.Background()

	if _, err := svc.ChooseLocation(ctx, "42", "Center"); err != nil {
		t.Fatalf("choose location: %v", err)
	}
	if _, err := svc.ChooseProvider(ctx, "42", "A"); err != nil {
		t.Fatalf("choose provider: %v", err)
	}
	if _, err := svc.ChooseDate(ctx, "42", day); err != nil {
		t.Fatalf("choose date: %v", err)
	}
	if _, err := svc.ChooseTime(ctx, "42", "10:00"); err != nil {
		t.Fatalf("choose time: %v", err)
	}

	session, err := svc.ChooseLocation(ctx, "42", "North")
	if err != nil {
		t.Fatalf("restart flow: %v", err)
	}
	if session.Provider != "" || session.Date != "" || session.Time != "" {
		t.Fatalf("expected downstream selection reset, got %+v", session)
	}
}

func TestSessionMyBookingsMemoized(t *testing.T) {
	store := newFakeStore()
	store.addSheet("Providers", directoryRow(2, "Center", "A"))
	day := dateOffset(1)
	store.addSheet(day, slot(2, "10:00", "A", "id: 42"))

	svc := newSessionService(store)
	ctx := context.Background()

	first, err := svc.MyBookings(ctx, "42", "id: 42")
	if err != nil {
		t.Fatalf("my bookings: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one record, got %v", first)
	}
	reads := store.readCalls

	second, err := svc.MyBookings(ctx, "42", "id: 42")
	if err != nil {
		t.Fatalf("my bookings: %v", err)
	}
	if store.readCalls != reads {
		t.Fatalf("expected memoized records to avoid store reads, got %d more", store.readCalls-reads)
	}
	if len(second) != 1 {
		t.Fatalf("expected one record, got %v", second)
	}
}

func TestSessionCancelBooking(t *testing.T) {
	store := newFakeStore()
	store.addSheet("Providers", directoryRow(2, "Center", "A"))
	day := dateOffset(1)
	store.addSheet(day, slot(2, "10:00", "A", "id: 42"))

	svc := newSessionService(store)
	ctx := context.Background()

	cancelled, err := svc.CancelBooking(ctx, "42", "id: 42", 0)
	if err != nil || !cancelled {
		t.Fatalf("expected cancel to succeed, got cancelled=%v err=%v", cancelled, err)
	}
	if got := store.occupant(day, 2); got != "" {
		t.Fatalf("expected slot freed, got occupant %q", got)
	}

	records, err := svc.MyBookings(ctx, "42", "id: 42")
	if err != nil {
		t.Fatalf("my bookings after cancel: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected memoized list invalidated and refreshed, got %v", records)
	}
}

func TestSessionCancelBookingIndexOutOfRange(t *testing.T) {
	store := newFakeStore()
	store.addSheet("Providers", directoryRow(2, "Center", "A"))

	svc := newSessionService(store)

	if _, err := svc.CancelBooking(context.Background(), "42", "id: 42", 3); err == nil {
		t.Fatalf("expected out-of-range index to error")
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore(20 * time.Millisecond)
	ctx := context.Background()

	session := &models.BookingSession{ClientID: "42", Location: "Center"}
	if err := store.Set(ctx, session); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := store.Get(ctx, "42"); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	time.Sleep(50 * time.Millisecond)

	if _, err := store.Get(ctx, "42"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestMemorySessionStoreClear(t *testing.T) {
	store := NewMemorySessionStore(time.Hour)
	ctx := context.Background()

	if err := store.Set(ctx, &models.BookingSession{ClientID: "42"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Clear(ctx, "42"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := store.Get(ctx, "42"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected cleared session to be gone, got %v", err)
	}
}
