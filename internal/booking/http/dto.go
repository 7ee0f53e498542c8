package http

import (
	"time"

	"lendmarket/internal/booking"
)

// CreateBookingRequest is the body for POST /bookings.
type CreateBookingRequest struct {
	ItemID    string    `json:"item_id" binding:"required,uuid"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// ListBookingsRequest binds the state filter and pagination for the
// booking list endpoints.
type ListBookingsRequest struct {
	State    string `form:"state"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// ItemTag is the compact item representation embedded in booking
// responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookerTag is the compact booker representation embedded in booking
// responses.
type BookerTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID        string    `json:"id"`
	Item      ItemTag   `json:"item"`
	Booker    BookerTag `json:"booker"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID: b.ID,
		Item: ItemTag{
			ID:   b.ItemID,
			Name: b.ItemName,
		},
		Booker: BookerTag{
			ID:   b.BookerID,
			Name: b.BookerName,
		},
		StartTime: b.Start,
		EndTime:   b.End,
		Status:    b.Status.Wire(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = NewBookingResponse(b)
	}
	return out
}
