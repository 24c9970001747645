package booking

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"slotbook/models"
	"slotbook/utils"
)

// AvailableDays returns the sorted date-sheet titles within the horizon that
// have at least one open slot matching the provider filter. Results are
// cached per (location, provider) for the availability TTL.
func (s *DefaultBookingService) AvailableDays(ctx context.Context, location, provider string) ([]string, error) {
	if days, ok := s.Cache.Days(location, provider); ok {
		return days, nil
	}

	titles, err := s.listSheets(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	type match struct {
		title string
		day   time.Time
	}
	var (
		mu      sync.Mutex
		matches []match
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
			open, err := s.hasOpenSlot(ctx, title, day, now, provider)
			if err != nil {
				// Worker failures are filtered out of the scan, not propagated.
				utils.GetLogger().Warn("availability scan: sheet read failed",
					zap.String("sheet", title), zap.Error(err))
				return nil
			}
			if open {
				mu.Lock()
				matches = append(matches, match{title: strings.TrimSpace(title), day: day})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].day.Before(matches[j].day) })
	days := make([]string, len(matches))
	for i, m := range matches {
		days[i] = m.title
	}

	s.Cache.PutDays(location, provider, days)
	return days, nil
}

// sheetDayInHorizon decides whether a worksheet participates in the scan:
// reserved titles and non-date titles are excluded, as is anything outside
// [today, today+horizon].
func (s *DefaultBookingService) sheetDayInHorizon(title string, now time.Time) (time.Time, bool) {
	if s.isReserved(title) {
		return time.Time{}, false
	}
	day, err := s.parseSheetDate(title)
	if err != nil {
		utils.GetLogger().Warn("skipping sheet with unparseable title, add it to the reserved list",
			zap.String("sheet", title), zap.Error(err))
		return time.Time{}, false
	}
	if !s.withinHorizon(day, now) {
		return time.Time{}, false
	}
	return day, true
}

// hasOpenSlot reports whether the sheet has at least one free matching slot.
// On today's sheet only times strictly after now count.
func (s *DefaultBookingService) hasOpenSlot(ctx context.Context, title string, day, now time.Time, provider string) (bool, error) {
	rows, err := s.Store.ReadSheet(ctx, title)
	if err != nil {
		return false, err
	}

	isToday := day.Equal(midnight(now))
	for _, row := range rows {
		slot := s.slotRow(row)
		if !slot.Free() || !matchesProvider(slot, provider) {
			continue
		}
		if isToday {
			future, err := afterTimeOfDay(slot.Time, now)
			if err != nil {
				utils.GetLogger().Warn("skipping slot with malformed time",
					zap.String("sheet", title), zap.Error(err))
				continue
			}
			if !future {
				continue
			}
		}
		return true, nil
	}
	return false, nil
}

// FreeTimes returns the open slot times for one date sheet, deduplicated and
// sorted. A missing sheet means the date is gone, not a failure.
func (s *DefaultBookingService) FreeTimes(ctx context.Context, location, provider, date string) ([]string, error) {
	rows, err := s.Store.ReadSheet(ctx, date)
	if err != nil {
		if isNotFound(err) {
			utils.GetLogger().Info("free-time lookup on missing date sheet",
				zap.String("sheet", date), zap.String("location", location))
			return nil, nil
		}
		return nil, err
	}

	now := s.now()
	isToday := date == now.Format(models.DateLayout)

	seen := make(map[string]bool)
	var times []string
	for _, row := range rows {
		slot := s.slotRow(row)
		if !slot.Free() || !matchesProvider(slot, provider) {
			continue
		}
		if isToday {
			future, err := afterTimeOfDay(slot.Time, now)
			if err != nil {
				utils.GetLogger().Warn("skipping slot with malformed time",
					zap.String("sheet", date), zap.Error(err))
				continue
			}
			if !future {
				continue
			}
		}
		t := strings.TrimSpace(slot.Time)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		times = append(times, t)
	}

	sort.Strings(times)
	return times, nil
}
