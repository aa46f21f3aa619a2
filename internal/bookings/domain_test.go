package bookings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "confirmed", "cancelled", "completed"} {
		status, ok := ParseStatus(raw)
		require.True(t, ok, raw)
		require.Equal(t, BookingStatus(raw), status)
	}

	for _, raw := range []string{"", "archived", "PENDING", "Confirmed "} {
		_, ok := ParseStatus(raw)
		require.False(t, ok, raw)
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatuses(t *testing.T) {
	require.False(t, StatusPending.Terminal())
	require.False(t, StatusConfirmed.Terminal())
	require.True(t, StatusCancelled.Terminal())
	require.True(t, StatusCompleted.Terminal())
}
