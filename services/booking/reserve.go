package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/utils"
)

// Reserve books the selected slot for occupant. The live sheet is re-read
// and the target row re-checked immediately before writing: if the slot was
// taken in the meantime the call reports false. The check and the write are
// two separate store calls, so two near-simultaneous reservations can still
// both pass the check and the later write wins; that residual race is an
// accepted limitation of the backing store, which offers no compare-and-set.
//
// A slot already holding the same occupant is matched again, making
// re-confirmation idempotent.
func (s *DefaultBookingService) Reserve(ctx context.Context, sel models.Selection, occupant string) (bool, error) {
	slot, ok, err := s.writeMatchingSlot(ctx, sel, func(current string) bool {
		return current == "" || current == occupant
	}, occupant)
	if err != nil || !ok {
		return ok, err
	}

	if s.Reminders != nil {
		record := models.BookingRecord{
			Date:     sel.Date,
			Time:     sel.Time,
			Location: sel.Location,
			Provider: slot.Provider,
		}
		if err := s.Reminders.Schedule(ctx, record, occupant); err != nil {
			utils.GetLogger().Warn("failed to schedule booking reminder",
				zap.String("date", sel.Date), zap.String("time", sel.Time), zap.Error(err))
		}
	}
	return true, nil
}

// Cancel clears the selected slot if occupant currently holds it. Reports
// false when nothing matches, e.g. the booking was already cancelled.
func (s *DefaultBookingService) Cancel(ctx context.Context, sel models.Selection, occupant string) (bool, error) {
	_, ok, err := s.writeMatchingSlot(ctx, sel, func(current string) bool {
		return current == occupant
	}, "")
	return ok, err
}

// writeMatchingSlot scans the selection's date sheet for the first row
// matching the provider filter, the selected time, and the expected occupant
// predicate, then writes value into its client cell. A missing date sheet is
// a conflict, not a failure.
func (s *DefaultBookingService) writeMatchingSlot(ctx context.Context, sel models.Selection, expect func(string) bool, value string) (models.SlotRow, bool, error) {
	rows, err := s.Store.ReadSheet(ctx, sel.Date)
	if err != nil {
		if isNotFound(err) {
			utils.GetLogger().Info("booking write on missing date sheet", zap.String("sheet", sel.Date))
			return models.SlotRow{}, false, nil
		}
		return models.SlotRow{}, false, fmt.Errorf("failed to read date sheet %q: %w", sel.Date, err)
	}

	want := strings.TrimSpace(sel.Time)
	for _, row := range rows {
		slot := s.slotRow(row)
		if !matchesProvider(slot, sel.Provider) || strings.TrimSpace(slot.Time) != want {
			continue
		}
		if !expect(slot.Occupant) {
			continue
		}
		cols := s.Columns.withDefaults()
		if err := s.Store.WriteCell(ctx, sel.Date, slot.Index, cols.Client, value); err != nil {
			if isNotFound(err) {
				return models.SlotRow{}, false, nil
			}
			return models.SlotRow{}, false, fmt.Errorf("failed to write slot cell: %w", err)
		}
		return slot, true, nil
	}
	return models.SlotRow{}, false, nil
}
