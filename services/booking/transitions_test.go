package booking

import (
	"testing"

	"github.com/Happyesss/careerlive---alpha/models"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to confirmed", models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{"pending to cancelled", models.BookingStatusPending, models.BookingStatusCancelled, true},
		{"confirmed to completed", models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{"pending to completed", models.BookingStatusPending, models.BookingStatusCompleted, false},
		{"confirmed to pending", models.BookingStatusConfirmed, models.BookingStatusPending, false},
		{"confirmed to cancelled", models.BookingStatusConfirmed, models.BookingStatusCancelled, false},
		{"cancelled is terminal", models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{"completed is terminal", models.BookingStatusCompleted, models.BookingStatusConfirmed, false},
		{"self transition", models.BookingStatusPending, models.BookingStatusPending, false},
		{"unknown status", "archived", models.BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted,
	} {
		require.True(t, IsValidStatus(s), s)
	}
	require.False(t, IsValidStatus("archived"))
	require.False(t, IsValidStatus(""))
}
