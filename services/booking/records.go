package booking

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"slotbook/models"
	"slotbook/utils"
)

// UpcomingBookings collects the occupant's reservations across all date
// sheets within the horizon, using the same bounded worker pool as the
// availability scan. On today's sheet only future times are included.
// Locations are resolved through the directory; a provider missing from it
// yields an empty location rather than an error.
func (s *DefaultBookingService) UpcomingBookings(ctx context.Context, occupant string) ([]models.BookingRecord, error) {
	titles, err := s.listSheets(ctx)
	if err != nil {
		return nil, err
	}

	dir, err := s.GetDirectory(ctx)
	if err != nil {
		utils.GetLogger().Warn("upcoming bookings: directory unavailable, locations will be empty", zap.Error(err))
		dir = models.Directory{}
	}

	now := s.now()

	var (
		mu      sync.Mutex
		records []models.BookingRecord
	)

	g := new(errgroup.Group)
	g.SetLimit(s.workers())
	for _, title := range titles {
		title := title
		g.Go(func() error {
			day, ok := s.sheetDayInHorizon(title, now)
			if !ok {
				return nil
			}
			rows, err := s.Store.ReadSheet(ctx, title)
			if err != nil {
				utils.GetLogger().Warn("upcoming bookings: sheet read failed",
					zap.String("sheet", title), zap.Error(err))
				return nil
			}

			isToday := day.Equal(midnight(now))
			for _, row := range rows {
				slot := s.slotRow(row)
				if slot.Occupant != occupant {
					continue
				}
				if isToday {
					future, err := afterTimeOfDay(slot.Time, now)
					if err != nil {
						utils.GetLogger().Warn("skipping record with malformed time",
							zap.String("sheet", title), zap.Error(err))
						continue
					}
					if !future {
						continue
					}
				}
				record := models.BookingRecord{
					Date:     strings.TrimSpace(title),
					Time:     strings.TrimSpace(slot.Time),
					Location: dir.LocationOf(slot.Provider),
					Provider: slot.Provider,
				}
				mu.Lock()
				records = append(records, record)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		di, erri := s.parseSheetDate(records[i].Date)
		dj, errj := s.parseSheetDate(records[j].Date)
		if erri == nil && errj == nil && !di.Equal(dj) {
			return di.Before(dj)
		}
		if records[i].Date != records[j].Date {
			return records[i].Date < records[j].Date
		}
		return records[i].Time < records[j].Time
	})
	return records, nil
}
