package requisicao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindowFor_RollsBackAcrossYear(t *testing.T) {
	w := WindowFor(time.Date(2024, time.February, 15, 13, 45, 0, 0, time.UTC))

	assert.Equal(t, date(2023, time.November, 1), w.Start)
	assert.Equal(t, date(2024, time.January, 31), w.End)
	assert.Equal(t, "01/11/2023", w.StartText())
	assert.Equal(t, "31/01/2024", w.EndText())
}

func TestWindowFor_AlwaysThreeWholeMonths(t *testing.T) {
	now := date(2022, time.January, 1)
	for i := 0; i < 800; i++ {
		d := now.AddDate(0, 0, i*3)
		w := WindowFor(d)

		require.False(t, w.Start.After(w.End), "start after end for %s", d)
		assert.Equal(t, 1, w.Start.Day(), "start not first of month for %s", d)

		// End is the last day of the month before d's month.
		assert.Equal(t, 1, w.End.AddDate(0, 0, 1).Day(), "end not last of month for %s", d)
		assert.Equal(t, time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC), w.End.AddDate(0, 0, 1))

		// Start plus three months minus one day is End.
		assert.Equal(t, w.End, w.Start.AddDate(0, 3, -1), "span is not three months for %s", d)
	}
}

func TestWindowFor_FirstAndLastDayOfMonth(t *testing.T) {
	first := WindowFor(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	last := WindowFor(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, first, last)
	assert.Equal(t, date(2023, time.December, 1), first.Start)
	assert.Equal(t, date(2024, time.February, 29), first.End)
}

func TestWindowFor_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	w := WindowFor(time.Date(2024, time.May, 10, 1, 0, 0, 0, loc))

	assert.Equal(t, loc, w.Start.Location())
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, loc), w.Start)
	assert.Equal(t, time.Date(2024, time.April, 30, 0, 0, 0, 0, loc), w.End)
}

func TestWindow_ContainsIsInclusive(t *testing.T) {
	w := WindowFor(date(2024, time.February, 15))

	assert.True(t, w.Contains(date(2023, time.November, 1)))
	assert.True(t, w.Contains(time.Date(2024, time.January, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, w.Contains(date(2023, time.December, 25)))
	assert.False(t, w.Contains(date(2023, time.October, 31)))
	assert.False(t, w.Contains(date(2024, time.February, 1)))
}

func TestParseEmissionDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"05/03/2024", date(2024, time.March, 5)},
		{" 5/3/2024 ", date(2024, time.March, 5)},
		{"31/12/2023 14:10:00", date(2023, time.December, 31)},
	}
	for _, tc := range cases {
		got, err := ParseEmissionDate(tc.in, time.UTC)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "2024-03-05", "31/13/2024", "abc"} {
		_, err := ParseEmissionDate(bad, time.UTC)
		assert.Error(t, err, bad)
	}
}
