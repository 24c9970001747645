package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotbook/database/sheets"
	"slotbook/models"
)

// ColumnNames are the header names the engine reads slots and directory
// entries through. Zero values fall back to the conventional names.
type ColumnNames struct {
	Location string
	Provider string
	Time     string
	Client   string
}

func (c ColumnNames) withDefaults() ColumnNames {
	if c.Location == "" {
		c.Location = "Location"
	}
	if c.Provider == "" {
		c.Provider = "Provider"
	}
	if c.Time == "" {
		c.Time = "Time"
	}
	if c.Client == "" {
		c.Client = "Client"
	}
	return c
}

// DefaultBookingService is the production booking engine. All store traffic
// goes through Store; scans fan out over a bounded worker pool and populate
// Cache; writes always read the live sheet first.
type DefaultBookingService struct {
	Store     sheets.Store
	Cache     *Caches
	Reminders ReminderScheduler

	// DirectorySheet names the location/provider sheet; Reserved lists sheet
	// titles excluded from date scanning (the directory sheet among them).
	DirectorySheet string
	Reserved       []string
	Columns        ColumnNames

	// Zone is the timezone all "today" and time-of-day checks are fixed to.
	Zone        *time.Location
	HorizonDays int
	Workers     int
}

func (s *DefaultBookingService) zone() *time.Location {
	if s.Zone != nil {
		return s.Zone
	}
	return time.UTC
}

func (s *DefaultBookingService) horizon() int {
	if s.HorizonDays > 0 {
		return s.HorizonDays
	}
	return 7
}

func (s *DefaultBookingService) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return 2
}

func (s *DefaultBookingService) directorySheet() string {
	if s.DirectorySheet != "" {
		return s.DirectorySheet
	}
	return "Providers"
}

func (s *DefaultBookingService) isReserved(title string) bool {
	if title == s.directorySheet() {
		return true
	}
	for _, name := range s.Reserved {
		if title == name {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) now() time.Time {
	return time.Now().In(s.zone())
}

// slotRow projects a raw sheet record onto the slot columns.
func (s *DefaultBookingService) slotRow(row sheets.Row) models.SlotRow {
	cols := s.Columns.withDefaults()
	return models.SlotRow{
		Index:    row.Index,
		Time:     row.Cells[cols.Time],
		Provider: row.Cells[cols.Provider],
		Occupant: row.Cells[cols.Client],
	}
}

// matchesProvider applies the provider filter; an empty filter matches all.
func matchesProvider(slot models.SlotRow, provider string) bool {
	return provider == "" || slot.Provider == provider
}

// parseSheetDate parses a worksheet title as a calendar date in the engine's
// zone. Titles that fail to parse belong in the reserved list.
func (s *DefaultBookingService) parseSheetDate(title string) (time.Time, error) {
	day, err := time.ParseInLocation(models.DateLayout, strings.TrimSpace(title), s.zone())
	if err != nil {
		return time.Time{}, fmt.Errorf("sheet title %q is not a date: %w", title, err)
	}
	return day, nil
}

// withinHorizon reports whether day falls in [today, today+horizon].
func (s *DefaultBookingService) withinHorizon(day, now time.Time) bool {
	today := midnight(now)
	return !day.Before(today) && !day.After(today.AddDate(0, 0, s.horizon()))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isNotFound(err error) bool {
	return errors.Is(err, sheets.ErrSheetNotFound)
}

// afterTimeOfDay reports whether the slot time string is strictly later than
// now's time of day. Malformed slot times report an error so callers can
// skip the row.
func afterTimeOfDay(slotTime string, now time.Time) (bool, error) {
	parsed, err := time.Parse(models.TimeLayout, strings.TrimSpace(slotTime))
	if err != nil {
		return false, fmt.Errorf("malformed slot time %q: %w", slotTime, err)
	}
	clock, err := time.Parse(models.TimeLayout, now.Format(models.TimeLayout))
	if err != nil {
		return false, err
	}
	return parsed.After(clock), nil
}

// listSheets returns worksheet titles cache-first.
func (s *DefaultBookingService) listSheets(ctx context.Context) ([]string, error) {
	if titles, ok := s.Cache.SheetList(); ok {
		return titles, nil
	}
	titles, err := s.Store.ListSheets(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.SetSheetList(titles)
	return titles, nil
}

// Warm refreshes the metadata cache from the live store.
func (s *DefaultBookingService) Warm(ctx context.Context) error {
	titles, err := s.Store.ListSheets(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm sheet list: %w", err)
	}
	s.Cache.SetSheetList(titles)

	dir, err := s.readDirectory(ctx)
	if err != nil {
		return fmt.Errorf("failed to warm directory: %w", err)
	}
	s.Cache.SetDirectory(dir)
	return nil
}
