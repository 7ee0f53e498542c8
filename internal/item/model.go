package item

import (
	"net/http"
	"time"

	"lendmarket/internal/booking"
	"lendmarket/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrNotItemOwner = apperror.New(http.StatusNotFound, "user is not the item owner")
	ErrEmptyName    = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrEmptyComment = apperror.New(http.StatusBadRequest, "comment text cannot be empty")
	ErrDidNotBook   = apperror.New(http.StatusBadRequest, "user has never booked this item")
)

// Item is a thing listed for sharing. Only its owner may change it;
// the availability flag gates whether it can be booked at all.
type Item struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Available   bool
	RequestID   *string // set when the item was listed to fulfil a request
	CreatedAt   time.Time
}

// Comment is feedback left by a user who previously booked the item.
type Comment struct {
	ID         string
	ItemID     string
	AuthorID   string
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

// Info is an item enriched for its owner's view: the nearest past and
// upcoming bookings plus the item's comments.
type Info struct {
	Item
	LastBooking *booking.Booking
	NextBooking *booking.Booking
	Comments    []*Comment
}

// Filter holds pagination for item lists.
type Filter struct {
	Page     int
	PageSize int
}
