package booking

import "time"

// LastNext holds the nearest past and nearest upcoming booking for an
// item relative to a reference instant. Either side may be nil.
type LastNext struct {
	Last *Booking
	Next *Booking
}

// Annotate groups bookings by item and computes, per item, the booking
// with the latest start before now ("last") and the earliest start
// after now ("next"). Rejected bookings count for neither side, and a
// booking starting exactly at now is excluded from both. When two
// qualifying bookings share a start, whichever is seen first wins.
//
// The input is expected to come from one batched fetch across all
// items of interest; callers must not fall back to per-item queries.
func Annotate(bookings []*Booking, now time.Time) map[string]LastNext {
	result := make(map[string]LastNext)

	for _, b := range bookings {
		if b.Status == StatusRejected {
			continue
		}

		entry := result[b.ItemID]
		switch {
		case b.Start.After(now):
			if entry.Next == nil || b.Start.Before(entry.Next.Start) {
				entry.Next = b
			}
		case b.Start.Before(now):
			if entry.Last == nil || b.Start.After(entry.Last.Start) {
				entry.Last = b
			}
		}
		result[b.ItemID] = entry
	}

	return result
}
