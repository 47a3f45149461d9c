package booking

import "github.com/Happyesss/careerlive---alpha/models"

type transition struct {
	from string
	to   string
}

// allowedTransitions enumerates every legal edge of the booking lifecycle.
// Cancelled and completed are terminal.
var allowedTransitions = map[transition]bool{
	{models.BookingStatusPending, models.BookingStatusConfirmed}:   true,
	{models.BookingStatusPending, models.BookingStatusCancelled}:   true,
	{models.BookingStatusConfirmed, models.BookingStatusCompleted}: true,
}

// CanTransition reports whether from -> to is a legal lifecycle edge.
func CanTransition(from, to string) bool {
	return allowedTransitions[transition{from: from, to: to}]
}

// IsValidStatus reports whether s is a known booking status.
func IsValidStatus(s string) bool {
	switch s {
	case models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted:
		return true
	}
	return false
}
