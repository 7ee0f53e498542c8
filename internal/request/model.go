package request

import (
	"net/http"
	"time"

	"lendmarket/internal/item"
	"lendmarket/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "request not found")
	ErrEmptyDescription = apperror.New(http.StatusBadRequest, "description cannot be empty")
)

// Request is a wish for an item that does not exist in the catalog
// yet. Other users may list items referencing the request, which then
// show up as its fulfilments.
type Request struct {
	ID          string
	RequesterID string
	Description string
	CreatedAt   time.Time
	Items       []*item.Item
}

// Filter holds pagination for request lists.
type Filter struct {
	Page     int
	PageSize int
}
