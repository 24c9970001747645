package models

// BookingSession holds one client's in-progress selection between the first
// intent and confirmation. Provider is empty while the client has no
// preference. Records and AvailableDays memoize scan results until the next
// successful reserve or cancel invalidates them.
type BookingSession struct {
	ClientID      string          `json:"clientId"`
	Location      string          `json:"location,omitempty"`
	Provider      string          `json:"provider,omitempty"`
	Date          string          `json:"date,omitempty"`
	Time          string          `json:"time,omitempty"`
	Records       []BookingRecord `json:"records,omitempty"`
	AvailableDays []string        `json:"availableDays,omitempty"`
}

// Selection returns the slot coordinates currently chosen in the session.
func (s *BookingSession) Selection() Selection {
	return Selection{
		Location: s.Location,
		Provider: s.Provider,
		Date:     s.Date,
		Time:     s.Time,
	}
}

// Complete reports whether enough has been chosen to attempt a reservation.
func (s *BookingSession) Complete() bool {
	return s.Location != "" && s.Date != "" && s.Time != ""
}

// Invalidate drops memoized scan results after a write to the store.
func (s *BookingSession) Invalidate() {
	s.Records = nil
	s.AvailableDays = nil
}

// Selection identifies one slot a client wants to act on. An empty Provider
// means any provider at the location is acceptable.
type Selection struct {
	Location string `json:"location"`
	Provider string `json:"provider,omitempty"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}
