package booking

import "errors"

// ErrSessionNotFound reports that a client has no live booking session.
var ErrSessionNotFound = errors.New("booking session not found")

// ErrIncompleteSelection reports a confirm attempt before location, date and
// time have all been chosen.
var ErrIncompleteSelection = errors.New("booking selection is incomplete")
