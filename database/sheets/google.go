package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetsStore implements Store against one Google spreadsheet. The
// mutex serializes all API traffic; it is held per call, not per booking
// flow, so a read-then-write sequence is not atomic end to end.
type GoogleSheetsStore struct {
	service       *sheets.Service
	spreadsheetID string
	mu            sync.Mutex
}

// NewGoogleSheetsStore authenticates with a service-account credentials file
// and returns a store bound to the given spreadsheet.
func NewGoogleSheetsStore(ctx context.Context, credentialsFile, spreadsheetID string) (*GoogleSheetsStore, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &GoogleSheetsStore{service: srv, spreadsheetID: spreadsheetID}, nil
}

func (s *GoogleSheetsStore) ListSheets(ctx context.Context) ([]string, error) {
	var titles []string
	err := withRetry(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		doc, err := s.service.Spreadsheets.Get(s.spreadsheetID).
			Fields("sheets.properties.title").
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		titles = titles[:0]
		for _, sheet := range doc.Sheets {
			titles = append(titles, sheet.Properties.Title)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	return titles, nil
}

func (s *GoogleSheetsStore) ReadSheet(ctx context.Context, name string) ([]Row, error) {
	var rows []Row
	err := withRetry(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(name, "A:Z")).
			Context(ctx).
			Do()
		if err != nil {
			return mapNotFound(err)
		}
		rows = recordRows(resp.Values)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GoogleSheetsStore) WriteCell(ctx context.Context, name string, rowIndex int, column, value string) error {
	return withRetry(ctx, func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		header, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(name, "1:1")).
			Context(ctx).
			Do()
		if err != nil {
			return mapNotFound(err)
		}
		colIdx := -1
		if len(header.Values) > 0 {
			for i, cell := range header.Values[0] {
				if strings.TrimSpace(cellString(cell)) == column {
					colIdx = i
					break
				}
			}
		}
		if colIdx < 0 {
			return backoff.Permanent(fmt.Errorf("sheet %q has no column %q", name, column))
		}

		cell := fmt.Sprintf("%s%d", columnLetter(colIdx), rowIndex)
		_, err = s.service.Spreadsheets.Values.Update(s.spreadsheetID, sheetRange(name, cell), &sheets.ValueRange{
			Values: [][]interface{}{{value}},
		}).ValueInputOption("RAW").Context(ctx).Do()
		return mapNotFound(err)
	})
}

// recordRows folds raw cell values into header-keyed records. The first row
// is the header; data rows keep their 1-based sheet index.
func recordRows(values [][]interface{}) []Row {
	if len(values) == 0 {
		return nil
	}
	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = strings.TrimSpace(cellString(cell))
	}

	rows := make([]Row, 0, len(values)-1)
	for i, raw := range values[1:] {
		cells := make(map[string]string, len(header))
		for j, key := range header {
			if key == "" {
				continue
			}
			if j < len(raw) {
				cells[key] = strings.TrimSpace(cellString(raw[j]))
			} else {
				cells[key] = ""
			}
		}
		rows = append(rows, Row{Index: i + 2, Cells: cells})
	}
	return rows
}

func cellString(cell interface{}) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}

// sheetRange quotes the sheet title, which routinely contains dots.
func sheetRange(name, ref string) string {
	return fmt.Sprintf("'%s'!%s", name, ref)
}

func columnLetter(idx int) string {
	letters := ""
	for idx >= 0 {
		letters = string(rune('A'+idx%26)) + letters
		idx = idx/26 - 1
	}
	return letters
}

// mapNotFound converts the API's missing-sheet responses into
// ErrSheetNotFound. A range referencing an absent worksheet comes back as a
// 400 "unable to parse range".
func mapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*googleapi.Error); ok {
		if apiErr.Code == 400 || apiErr.Code == 404 {
			return ErrSheetNotFound
		}
	}
	return err
}
