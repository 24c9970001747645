package sheets

import (
	"context"
	"errors"
)

// ErrSheetNotFound reports that a named worksheet does not exist. Callers
// treat it as "no such date", not as a failure.
var ErrSheetNotFound = errors.New("sheet not found")

// Row is one record of a worksheet, keyed by the header row. Index is the
// 1-based sheet row the record occupies (the header is row 1), and is the
// addressing key for WriteCell.
type Row struct {
	Index int
	Cells map[string]string
}

// Store is the backing store client. Implementations serialize every call
// behind a single process-wide lock: the backing spreadsheet has no row-level
// isolation, so at most one read or write may be in flight at a time.
type Store interface {
	// ListSheets returns all worksheet titles in document order.
	ListSheets(ctx context.Context) ([]string, error)

	// ReadSheet returns all records of the named worksheet in row order.
	// Returns ErrSheetNotFound if no such worksheet exists.
	ReadSheet(ctx context.Context, name string) ([]Row, error)

	// WriteCell sets a single cell, addressed by 1-based row index and header
	// column name. Returns ErrSheetNotFound if no such worksheet exists.
	WriteCell(ctx context.Context, name string, rowIndex int, column, value string) error
}
