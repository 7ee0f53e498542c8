package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	hour := func(n int) time.Time { return now.Add(time.Duration(n) * time.Hour) }

	t.Run("picks latest past and earliest future", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "old", ItemID: "item-1", Start: hour(-5), Status: StatusApproved},
			{ID: "recent", ItemID: "item-1", Start: hour(-1), Status: StatusApproved},
			{ID: "soon", ItemID: "item-1", Start: hour(2), Status: StatusWaiting},
			{ID: "later", ItemID: "item-1", Start: hour(8), Status: StatusApproved},
		}

		result := Annotate(bookings, now)

		require.Contains(t, result, "item-1")
		assert.Equal(t, "recent", result["item-1"].Last.ID)
		assert.Equal(t, "soon", result["item-1"].Next.ID)
	})

	t.Run("rejected bookings count for neither side", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "r1", ItemID: "item-1", Start: hour(-1), Status: StatusRejected},
			{ID: "r2", ItemID: "item-1", Start: hour(1), Status: StatusRejected},
		}

		result := Annotate(bookings, now)

		assert.NotContains(t, result, "item-1")
	})

	t.Run("booking starting exactly now is excluded", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "exact", ItemID: "item-1", Start: now, Status: StatusApproved},
		}

		result := Annotate(bookings, now)

		entry := result["item-1"]
		assert.Nil(t, entry.Last)
		assert.Nil(t, entry.Next)
	})

	t.Run("groups by item", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "a-last", ItemID: "item-a", Start: hour(-1), Status: StatusApproved},
			{ID: "b-next", ItemID: "item-b", Start: hour(1), Status: StatusWaiting},
		}

		result := Annotate(bookings, now)

		assert.Equal(t, "a-last", result["item-a"].Last.ID)
		assert.Nil(t, result["item-a"].Next)
		assert.Equal(t, "b-next", result["item-b"].Next.ID)
		assert.Nil(t, result["item-b"].Last)
	})

	t.Run("equal starts keep the first seen", func(t *testing.T) {
		bookings := []*Booking{
			{ID: "first", ItemID: "item-1", Start: hour(1), Status: StatusApproved},
			{ID: "second", ItemID: "item-1", Start: hour(1), Status: StatusApproved},
		}

		result := Annotate(bookings, now)

		assert.Equal(t, "first", result["item-1"].Next.ID)
	})

	t.Run("empty input", func(t *testing.T) {
		result := Annotate(nil, now)
		assert.Empty(t, result)
	})
}
