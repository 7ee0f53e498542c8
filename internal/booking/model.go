package booking

import (
	"net/http"
	"time"

	"lendmarket/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrItemNotAvailable = apperror.New(http.StatusBadRequest, "item is not available for booking")
	ErrOwnBooking       = apperror.New(http.StatusNotFound, "owner cannot book their own item")
	ErrAlreadyDecided   = apperror.New(http.StatusBadRequest, "booking has already been decided")
	ErrNotItemOwner     = apperror.New(http.StatusNotFound, "user is not the item owner")
	ErrAccessDenied     = apperror.New(http.StatusNotFound, "booking is not accessible for this user")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
)

// Booking is a request to rent an item over a time window. It starts
// out waiting and is approved or rejected exactly once by the item's
// owner.
type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	OwnerID    string
	BookerID   string
	BookerName string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ItemRef is the slice of an item the booking flow needs: who owns it
// and whether it is open for booking at all.
type ItemRef struct {
	ID        string
	Name      string
	OwnerID   string
	Available bool
}

// Filter holds pagination for booking lists.
type Filter struct {
	Page     int
	PageSize int
}
