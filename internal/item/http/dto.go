package http

import (
	"time"

	"lendmarket/internal/booking"
	"lendmarket/internal/item"
)

// CreateItemRequest is the body for POST /items.
type CreateItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Available   bool    `json:"available"`
	RequestID   *string `json:"request_id" binding:"omitempty,uuid"`
}

// UpdateItemRequest is the body for PATCH /items/:id; nil fields are
// left unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest is the body for POST /items/:id/comments.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// SearchItemsRequest binds the search text and pagination.
type SearchItemsRequest struct {
	Text     string `form:"text"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type ItemResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	RequestID   *string   `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingTag is the compact booking representation attached to an
// owner's item view.
type BookingTag struct {
	ID        string    `json:"id"`
	BookerID  string    `json:"booker_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type ItemInfoResponse struct {
	ItemResponse
	LastBooking *BookingTag       `json:"last_booking"`
	NextBooking *BookingTag       `json:"next_booking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
		CreatedAt:   i.CreatedAt,
	}
}

func NewItemResponses(items []*item.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for idx, i := range items {
		out[idx] = NewItemResponse(i)
	}
	return out
}

func newBookingTag(b *booking.Booking) *BookingTag {
	if b == nil {
		return nil
	}
	return &BookingTag{
		ID:        b.ID,
		BookerID:  b.BookerID,
		StartTime: b.Start,
		EndTime:   b.End,
		Status:    b.Status.Wire(),
	}
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Text:       c.Text,
		CreatedAt:  c.CreatedAt,
	}
}

func NewItemInfoResponse(info *item.Info) ItemInfoResponse {
	comments := make([]CommentResponse, len(info.Comments))
	for idx, c := range info.Comments {
		comments[idx] = NewCommentResponse(c)
	}

	return ItemInfoResponse{
		ItemResponse: NewItemResponse(&info.Item),
		LastBooking:  newBookingTag(info.LastBooking),
		NextBooking:  newBookingTag(info.NextBooking),
		Comments:     comments,
	}
}

func NewItemInfoResponses(infos []*item.Info) []ItemInfoResponse {
	out := make([]ItemInfoResponse, len(infos))
	for idx, info := range infos {
		out[idx] = NewItemInfoResponse(info)
	}
	return out
}
