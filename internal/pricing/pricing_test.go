package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestPriceForWholeNights(t *testing.T) {
	quote, err := PriceFor(date(1), date(2), 100)
	require.NoError(t, err)
	require.Equal(t, 1, quote.Nights)
	require.InDelta(t, 100.0, quote.Total, 0.001)

	quote, err = PriceFor(date(1), date(5), 150)
	require.NoError(t, err)
	require.Equal(t, 4, quote.Nights)
	require.InDelta(t, 600.0, quote.Total, 0.001)
}

func TestPriceForRoundsPartialNightsUp(t *testing.T) {
	quote, err := PriceFor(date(1), date(1).Add(time.Hour), 80)
	require.NoError(t, err)
	require.Equal(t, 1, quote.Nights)
	require.InDelta(t, 80.0, quote.Total, 0.001)

	quote, err = PriceFor(date(1), date(3).Add(12*time.Hour), 100)
	require.NoError(t, err)
	require.Equal(t, 3, quote.Nights)
	require.InDelta(t, 300.0, quote.Total, 0.001)
}

func TestPriceForRejectsNonPositiveRange(t *testing.T) {
	_, err := PriceFor(date(5), date(5), 100)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = PriceFor(date(5), date(3), 100)
	require.ErrorIs(t, err, ErrInvalidRange)
}
