package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 999999000, time.UTC)
}

func TestResolveNamed(t *testing.T) {
	now := time.Date(2025, time.May, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{ThisMonth, date(2025, time.May, 1), endOfDay(2025, time.May, 31)},
		{LastMonth, date(2025, time.April, 1), endOfDay(2025, time.April, 30)},
		{ThisQuarter, date(2025, time.April, 1), endOfDay(2025, time.June, 30)},
		{LastQuarter, date(2025, time.January, 1), endOfDay(2025, time.March, 31)},
		{ThisYear, date(2025, time.January, 1), endOfDay(2025, time.December, 31)},
		{LastYear, date(2024, time.January, 1), endOfDay(2024, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(now, Query{Name: tt.name})
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
			assert.Equal(t, tt.name, r.Label)
		})
	}
}

func TestResolveDefaultsToLastMonth(t *testing.T) {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	r, err := Resolve(now, Query{})
	require.NoError(t, err)
	assert.Equal(t, LastMonth, r.Label)
	assert.Equal(t, date(2025, time.April, 1), r.Start)
}

func TestResolveNameIsCaseInsensitive(t *testing.T) {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	r, err := Resolve(now, Query{Name: " This_Month "})
	require.NoError(t, err)
	assert.Equal(t, ThisMonth, r.Label)
}

func TestResolveCrossesYearBoundary(t *testing.T) {
	t.Run("last_month_in_january", func(t *testing.T) {
		now := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
		r, err := Resolve(now, Query{Name: LastMonth})
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.December, 1), r.Start)
		assert.Equal(t, endOfDay(2024, time.December, 31), r.End)
	})

	t.Run("last_quarter_in_q1", func(t *testing.T) {
		now := time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC)
		r, err := Resolve(now, Query{Name: LastQuarter})
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.October, 1), r.Start)
		assert.Equal(t, endOfDay(2024, time.December, 31), r.End)
	})
}

func TestResolveLeapFebruary(t *testing.T) {
	now := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	r, err := Resolve(now, Query{Name: LastMonth})
	require.NoError(t, err)
	assert.Equal(t, endOfDay(2024, time.February, 29), r.End)

	now = time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	r, err = Resolve(now, Query{Name: LastMonth})
	require.NoError(t, err)
	assert.Equal(t, endOfDay(2025, time.February, 28), r.End)
}

func TestResolveUsesUTC(t *testing.T) {
	// 23:30 on April 30 in UTC-5 is already May 1 in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, time.April, 30, 23, 30, 0, 0, loc)
	r, err := Resolve(now, Query{Name: ThisMonth})
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.May, 1), r.Start)
}

func TestResolveCustom(t *testing.T) {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)

	t.Run("date_only_to_covers_whole_day", func(t *testing.T) {
		from, to := date(2025, time.March, 1), date(2025, time.March, 10)
		r, err := Resolve(now, Query{Name: ThisYear, From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, Custom, r.Label)
		assert.Equal(t, from, r.Start)
		assert.Equal(t, endOfDay(2025, time.March, 10), r.End)
		assert.True(t, r.Contains(time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC)))
	})

	t.Run("midnight_to_in_offset_covers_whole_day", func(t *testing.T) {
		zone := time.FixedZone("EET", 2*60*60)
		from := time.Date(2025, time.February, 1, 0, 0, 0, 0, zone)
		to := time.Date(2025, time.February, 28, 0, 0, 0, 0, zone)
		r, err := Resolve(now, Query{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, time.February, 28, 21, 59, 59, 999999000, time.UTC), r.End)
		assert.Equal(t, time.UTC, r.End.Location())
		assert.True(t, r.Contains(time.Date(2025, time.February, 28, 18, 0, 0, 0, zone)))
	})

	t.Run("exact_to_is_kept", func(t *testing.T) {
		from := date(2025, time.March, 1)
		to := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
		r, err := Resolve(now, Query{From: &from, To: &to})
		require.NoError(t, err)
		assert.Equal(t, to, r.End)
	})

	t.Run("only_one_bound", func(t *testing.T) {
		from := date(2025, time.March, 1)
		_, err := Resolve(now, Query{From: &from})
		assert.ErrorIs(t, err, ErrInvalidRange)

		_, err = Resolve(now, Query{Name: ThisMonth, To: &from})
		assert.ErrorIs(t, err, ErrInvalidRange)
	})
}

func TestResolveUnknownName(t *testing.T) {
	_, err := Resolve(time.Now(), Query{Name: "fortnight"})
	require.ErrorIs(t, err, ErrInvalidPeriod)
	for _, n := range Names {
		assert.Contains(t, err.Error(), n)
	}
}

func TestRangeContainsBoundaries(t *testing.T) {
	now := time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC)
	r, err := Resolve(now, Query{Name: LastMonth})
	require.NoError(t, err)

	assert.True(t, r.Contains(date(2025, time.April, 1)))
	assert.True(t, r.Contains(endOfDay(2025, time.April, 30)))
	assert.False(t, r.Contains(date(2025, time.May, 1)))
	assert.False(t, r.Contains(date(2025, time.March, 31).Add(23*time.Hour)))
}
