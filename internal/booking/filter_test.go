package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendmarket/internal/pkg/apperror"
)

func TestParseStateFilter(t *testing.T) {
	t.Run("empty means all", func(t *testing.T) {
		f, err := ParseStateFilter("")
		require.NoError(t, err)
		assert.Equal(t, FilterAll, f)
	})

	t.Run("case insensitive", func(t *testing.T) {
		f, err := ParseStateFilter("current")
		require.NoError(t, err)
		assert.Equal(t, FilterCurrent, f)

		f, err = ParseStateFilter("  Future ")
		require.NoError(t, err)
		assert.Equal(t, FilterFuture, f)
	})

	t.Run("all known values", func(t *testing.T) {
		for _, s := range []string{"ALL", "CURRENT", "PAST", "FUTURE", "WAITING", "REJECTED"} {
			f, err := ParseStateFilter(s)
			require.NoError(t, err)
			assert.Equal(t, StateFilter(s), f)
		}
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := ParseStateFilter("APPROVED_MAYBE")
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Message, "APPROVED_MAYBE")
	})
}

func TestStateFilterMatches(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hour := func(n int) time.Time { return now.Add(time.Duration(n) * time.Hour) }

	running := &Booking{Start: hour(-1), End: hour(1), Status: StatusApproved}
	past := &Booking{Start: hour(-3), End: hour(-2), Status: StatusApproved}
	future := &Booking{Start: hour(2), End: hour(3), Status: StatusWaiting}
	rejected := &Booking{Start: hour(2), End: hour(3), Status: StatusRejected}

	assert.True(t, FilterAll.Matches(past, now))
	assert.True(t, FilterAll.Matches(future, now))

	assert.True(t, FilterCurrent.Matches(running, now))
	assert.False(t, FilterCurrent.Matches(past, now))
	assert.False(t, FilterCurrent.Matches(future, now))

	assert.True(t, FilterPast.Matches(past, now))
	assert.False(t, FilterPast.Matches(running, now))

	assert.True(t, FilterFuture.Matches(future, now))
	assert.False(t, FilterFuture.Matches(running, now))

	assert.True(t, FilterWaiting.Matches(future, now))
	assert.False(t, FilterWaiting.Matches(running, now))

	assert.True(t, FilterRejected.Matches(rejected, now))
	assert.False(t, FilterRejected.Matches(future, now))
}

func TestStateFilterCurrentIncludesBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	startsNow := &Booking{Start: now, End: now.Add(time.Hour), Status: StatusApproved}
	endsNow := &Booking{Start: now.Add(-time.Hour), End: now, Status: StatusApproved}

	assert.True(t, FilterCurrent.Matches(startsNow, now))
	assert.True(t, FilterCurrent.Matches(endsNow, now))
}
