package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"slotbook/models"
)

// DefaultSessionService drives one client's booking flow: the front-end
// translates each user intent into a call here, and the session records the
// selection between calls. Sessions live in the injected SessionStore and
// expire by TTL; completing a flow resets them explicitly.
type DefaultSessionService struct {
	Engine   BookingService
	Sessions SessionStore
}

// session loads the client's session, creating one on first interaction.
func (s *DefaultSessionService) session(ctx context.Context, clientID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, clientID)
	if errors.Is(err, ErrSessionNotFound) {
		return &models.BookingSession{ClientID: clientID}, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ChooseLocation starts or restarts the flow at the given location. Any
// downstream selection is discarded.
func (s *DefaultSessionService) ChooseLocation(ctx context.Context, clientID, location string) (*models.BookingSession, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	session.Location = strings.TrimSpace(location)
	session.Provider = ""
	session.Date = ""
	session.Time = ""
	session.AvailableDays = nil
	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ChooseProvider records the provider preference (empty means any) and
// returns the dates with open slots for the current selection.
func (s *DefaultSessionService) ChooseProvider(ctx context.Context, clientID, provider string) ([]string, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if session.Location == "" {
		return nil, fmt.Errorf("no location chosen: %w", ErrIncompleteSelection)
	}
	if strings.EqualFold(strings.TrimSpace(provider), models.AnyProvider) {
		provider = ""
	}
	session.Provider = strings.TrimSpace(provider)
	session.Date = ""
	session.Time = ""

	days, err := s.Engine.AvailableDays(ctx, session.Location, session.Provider)
	if err != nil {
		return nil, err
	}
	session.AvailableDays = days
	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return days, nil
}

// ChooseDate records the date and returns its open times.
func (s *DefaultSessionService) ChooseDate(ctx context.Context, clientID, date string) ([]string, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if session.Location == "" {
		return nil, fmt.Errorf("no location chosen: %w", ErrIncompleteSelection)
	}
	session.Date = strings.TrimSpace(date)
	session.Time = ""
	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return s.Engine.FreeTimes(ctx, session.Location, session.Provider, session.Date)
}

// ChooseTime records the time and returns the session for the confirmation
// prompt.
func (s *DefaultSessionService) ChooseTime(ctx context.Context, clientID, slotTime string) (*models.BookingSession, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if session.Location == "" || session.Date == "" {
		return nil, fmt.Errorf("location and date must be chosen first: %w", ErrIncompleteSelection)
	}
	session.Time = strings.TrimSpace(slotTime)
	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm attempts the reservation with the front-end-supplied identity.
// False means someone took the slot first. A successful booking completes
// the flow and resets the session.
func (s *DefaultSessionService) Confirm(ctx context.Context, clientID, occupant string) (bool, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return false, err
	}
	if !session.Complete() {
		return false, ErrIncompleteSelection
	}

	booked, err := s.Engine.Reserve(ctx, session.Selection(), occupant)
	if err != nil || !booked {
		return booked, err
	}
	if err := s.Sessions.Clear(ctx, clientID); err != nil {
		return true, err
	}
	return true, nil
}

// MyBookings returns the client's upcoming reservations, memoized on the
// session until the next reserve or cancel.
func (s *DefaultSessionService) MyBookings(ctx context.Context, clientID, occupant string) ([]models.BookingRecord, error) {
	session, err := s.session(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if session.Records != nil {
		return session.Records, nil
	}

	records, err := s.Engine.UpcomingBookings(ctx, occupant)
	if err != nil {
		return nil, err
	}
	session.Records = records
	if err := s.Sessions.Set(ctx, session); err != nil {
		return nil, err
	}
	return records, nil
}

// CancelBooking cancels the index-th record of the client's memoized booking
// list. False means the slot no longer holds this client's identity.
func (s *DefaultSessionService) CancelBooking(ctx context.Context, clientID, occupant string, index int) (bool, error) {
	records, err := s.MyBookings(ctx, clientID, occupant)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(records) {
		return false, fmt.Errorf("booking index %d out of range", index)
	}
	record := records[index]

	cancelled, err := s.Engine.Cancel(ctx, models.Selection{
		Location: record.Location,
		Provider: record.Provider,
		Date:     record.Date,
		Time:     record.Time,
	}, occupant)
	if err != nil || !cancelled {
		return cancelled, err
	}

	session, err := s.session(ctx, clientID)
	if err != nil {
		return true, err
	}
	session.Invalidate()
	if err := s.Sessions.Set(ctx, session); err != nil {
		return true, err
	}
	return true, nil
}
