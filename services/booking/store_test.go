package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slotbook/database/sheets"
	"slotbook/models"
)

// fakeStore is an in-memory sheets.Store with call counting, used across the
// package tests.
type fakeStore struct {
	mu     sync.Mutex
	titles []string
	data   map[string][]sheets.Row

	listCalls  int
	readCalls  int
	writeCalls int

	readErr map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]sheets.Row), readErr: make(map[string]error)}
}

func (f *fakeStore) addSheet(title string, rows ...sheets.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	f.data[title] = rows
}

func (f *fakeStore) ListSheets(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return append([]string(nil), f.titles...), nil
}

func (f *fakeStore) ReadSheet(ctx context.Context, name string) ([]sheets.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readCalls++
	if err, ok := f.readErr[name]; ok {
		return nil, err
	}
	rows, ok := f.data[name]
	if !ok {
		return nil, sheets.ErrSheetNotFound
	}
	out := make([]sheets.Row, len(rows))
	for i, row := range rows {
		cells := make(map[string]string, len(row.Cells))
		for k, v := range row.Cells {
			cells[k] = v
		}
		out[i] = sheets.Row{Index: row.Index, Cells: cells}
	}
	return out, nil
}

func (f *fakeStore) WriteCell(ctx context.Context, name string, rowIndex int, column, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writeCalls++
	rows, ok := f.data[name]
	if !ok {
		return sheets.ErrSheetNotFound
	}
	for i, row := range rows {
		if row.Index == rowIndex {
			rows[i].Cells[column] = value
			return nil
		}
	}
	return fmt.Errorf("no row %d in sheet %q", rowIndex, name)
}

// occupant returns the client cell of the row with the given index.
func (f *fakeStore) occupant(name string, rowIndex int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.data[name] {
		if row.Index == rowIndex {
			return row.Cells["Client"]
		}
	}
	return ""
}

// slot builds a date-sheet row with the default column names.
func slot(index int, timeStr, provider, client string) sheets.Row {
	return sheets.Row{Index: index, Cells: map[string]string{
		"Time":     timeStr,
		"Provider": provider,
		"Client":   client,
	}}
}

// directoryRow builds a directory-sheet row with the default column names.
func directoryRow(index int, location, provider string) sheets.Row {
	return sheets.Row{Index: index, Cells: map[string]string{
		"Location": location,
		"Provider": provider,
	}}
}

// newTestService wires an engine over the fake store with fast-expiring
// caches and UTC scanning.
func newTestService(store *fakeStore) *DefaultBookingService {
	return &DefaultBookingService{
		Store: store,
		Cache: NewCaches(time.Hour, time.Hour, 6),
		Zone:  time.UTC,
	}
}

// dateOffset formats today+days as a sheet title in UTC.
func dateOffset(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(models.DateLayout)
}
