package models

// Sheet naming and cell formats used across the backing spreadsheet. Date
// sheets are titled day.month.year; slot times are 24h clock strings.
const (
	DateLayout = "02.01.2006"
	TimeLayout = "15:04"
)

// AnyProvider is the provider filter meaning "no preference". It doubles as
// the availability-cache key for unfiltered scans.
const AnyProvider = "any"

// SlotRow is one bookable slot as read from a date sheet. Index is the
// 1-based sheet row the slot lives in (the header occupies row 1), and is the
// addressing key for writes. An empty Occupant means the slot is free.
type SlotRow struct {
	Index    int    `json:"index"`
	Time     string `json:"time"`
	Provider string `json:"provider"`
	Occupant string `json:"occupant"`
}

// Free reports whether the slot has no occupant.
func (r SlotRow) Free() bool {
	return r.Occupant == ""
}

// Directory maps a location name to its ordered provider list, sourced from
// the directory sheet.
type Directory map[string][]string

// Providers returns the provider list for a location, nil if unknown.
func (d Directory) Providers(location string) []string {
	return d[location]
}

// LocationOf returns the first location offering the given provider.
func (d Directory) LocationOf(provider string) string {
	for location, providers := range d {
		for _, p := range providers {
			if p == provider {
				return location
			}
		}
	}
	return ""
}

// BookingRecord is one confirmed appointment as presented to a client.
type BookingRecord struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Provider string `json:"provider"`
}
