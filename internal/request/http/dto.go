package http

import (
	"time"

	"lendmarket/internal/item"
	"lendmarket/internal/request"
)

// CreateRequest is the body for POST /requests.
type CreateRequest struct {
	Description string `json:"description" binding:"required"`
}

// ItemTag is the compact representation of an item listed in answer to
// a request.
type ItemTag struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"owner_id"`
	Name      string  `json:"name"`
	Available bool    `json:"available"`
	RequestID *string `json:"request_id,omitempty"`
}

type RequestResponse struct {
	ID          string    `json:"id"`
	RequesterID string    `json:"requester_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Items       []ItemTag `json:"items"`
}

func newItemTag(i *item.Item) ItemTag {
	return ItemTag{
		ID:        i.ID,
		OwnerID:   i.OwnerID,
		Name:      i.Name,
		Available: i.Available,
		RequestID: i.RequestID,
	}
}

func NewRequestResponse(r *request.Request) RequestResponse {
	items := make([]ItemTag, len(r.Items))
	for idx, i := range r.Items {
		items[idx] = newItemTag(i)
	}

	return RequestResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		Items:       items,
	}
}

func NewRequestResponses(requests []*request.Request) []RequestResponse {
	out := make([]RequestResponse, len(requests))
	for idx, r := range requests {
		out[idx] = NewRequestResponse(r)
	}
	return out
}
