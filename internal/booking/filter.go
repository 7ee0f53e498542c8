package booking

import (
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"lendmarket/internal/pkg/apperror"
)

// StateFilter narrows booking lists either by position relative to a
// reference instant (CURRENT, PAST, FUTURE) or by exact status
// (WAITING, REJECTED). ALL applies no narrowing.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter normalizes a query-string value into a StateFilter.
// An empty value means ALL.
func ParseStateFilter(s string) (StateFilter, error) {
	if strings.TrimSpace(s) == "" {
		return FilterAll, nil
	}
	f := StateFilter(strings.ToUpper(strings.TrimSpace(s)))
	switch f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", apperror.New(http.StatusBadRequest, "unknown state: "+s)
	}
}

// Predicate returns the SQL condition selecting bookings matching the
// filter at the given instant, or nil for ALL. Both the booker and the
// owner listings share this single definition.
func (f StateFilter) Predicate(now time.Time) squirrel.Sqlizer {
	switch f {
	case FilterCurrent:
		return squirrel.And{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	case FilterPast:
		return squirrel.Lt{"b.end_time": now}
	case FilterFuture:
		return squirrel.Gt{"b.start_time": now}
	case FilterWaiting:
		return squirrel.Eq{"b.status": StatusWaiting}
	case FilterRejected:
		return squirrel.Eq{"b.status": StatusRejected}
	default:
		return nil
	}
}

// Matches is the in-memory equivalent of Predicate.
func (f StateFilter) Matches(b *Booking, now time.Time) bool {
	switch f {
	case FilterCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case FilterPast:
		return b.End.Before(now)
	case FilterFuture:
		return b.Start.After(now)
	case FilterWaiting:
		return b.Status == StatusWaiting
	case FilterRejected:
		return b.Status == StatusRejected
	default:
		return true
	}
}
