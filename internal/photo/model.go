package photo

import (
	"net/http"
	"time"

	"lendmarket/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "photo not found")
	ErrNoThumbnail = apperror.New(http.StatusNotFound, "thumbnail not available")
	ErrNotAnImage  = apperror.New(http.StatusBadRequest, "uploaded file is not an image")
)

// Photo is an image attached to an item listing.
type Photo struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	OwnerID       string    `json:"-"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	ThumbnailPath *string   `json:"-"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	CreatedAt     time.Time `json:"created_at"`
}

// URL returns the public path for the photo content.
func URL(id string) string {
	return "/v1/photos/" + id
}

// ThumbnailURL returns the public path for the photo's thumbnail.
func ThumbnailURL(id string) string {
	return "/v1/photos/" + id + "/thumbnail"
}
