package rental_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexraum/PropertyManager/rental"
)

func Test_DateBounds(t *testing.T) {
	defaults := rental.DefaultDateBounds()
	assert.Equal(t, rental.Date(2020, time.January, 1), defaults.Earliest)
	assert.Equal(t, rental.Date(2029, time.December, 31), defaults.Latest)
	assert.NoError(t, defaults.Validate())

	_, err := rental.BuildDateBounds(rental.Date(2025, time.January, 2), rental.Date(2025, time.January, 1))
	assert.ErrorIs(t, err, rental.ErrInvalidArgument)

	sameDay, err := rental.BuildDateBounds(
		time.Date(2025, time.January, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2025, time.January, 1, 1, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, sameDay.Earliest, sameDay.Latest)
}

func Test_ParseAndFormatDate(t *testing.T) {
	parsed, err := rental.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, rental.Date(2024, time.February, 29), parsed)
	assert.Equal(t, "2024-02-29", rental.FormatDate(parsed))

	_, err = rental.ParseDate("29.02.2024")
	assert.ErrorIs(t, err, rental.ErrInvalidArgument)
}

func Test_ToDate_KeepsCalendarDayOfLocation(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*60*60)
	t1 := time.Date(2024, time.March, 1, 2, 30, 0, 0, zone)

	assert.Equal(t, rental.Date(2024, time.March, 1), rental.ToDate(t1))
	assert.True(t, rental.ToDate(time.Time{}).IsZero())
}

func Test_ConfirmationSequence(t *testing.T) {
	sequence := rental.NewConfirmationSequence()

	assert.Equal(t, 1, sequence.Next())
	assert.Equal(t, 2, sequence.Next())

	sequence.Observe(10)
	assert.Equal(t, 11, sequence.Peek())

	sequence.Observe(4)
	assert.Equal(t, 11, sequence.Next())
	assert.Equal(t, 12, sequence.Peek())
}
