package booking

import (
	"context"
	"fmt"

	"slotbook/models"
)

// GetDirectory returns the location to provider mapping, cache-first. On a
// miss the directory sheet is read once and the result cached for the
// metadata TTL, so repeated lookups within the window cost no store calls.
func (s *DefaultBookingService) GetDirectory(ctx context.Context) (models.Directory, error) {
	if dir, ok := s.Cache.Directory(); ok {
		return dir, nil
	}
	dir, err := s.readDirectory(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.SetDirectory(dir)
	return dir, nil
}

func (s *DefaultBookingService) readDirectory(ctx context.Context) (models.Directory, error) {
	rows, err := s.Store.ReadSheet(ctx, s.directorySheet())
	if err != nil {
		return nil, fmt.Errorf("failed to read directory sheet %q: %w", s.directorySheet(), err)
	}

	cols := s.Columns.withDefaults()
	dir := make(models.Directory)
	for _, row := range rows {
		location := row.Cells[cols.Location]
		provider := row.Cells[cols.Provider]
		if location == "" || provider == "" {
			continue
		}
		dir[location] = append(dir[location], provider)
	}
	return dir, nil
}
