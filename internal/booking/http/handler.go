package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lendmarket/internal/auth"
	"lendmarket/internal/booking"
	"lendmarket/internal/pkg/request"
	"lendmarket/internal/pkg/response"
)

type listFunc func(ctx context.Context, userID string, state booking.StateFilter, f booking.Filter) ([]*booking.Booking, int, error)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		ItemID:   body.ItemID,
		BookerID: auth.GetUserID(c),
		Start:    body.StartTime,
		End:      body.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Confirm handles PATCH /bookings/:id?approved=true|false. Only the
// owner of the booked item may decide, and only while the booking is
// still waiting.
func (h *Handler) Confirm(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	approved, ok := c.GetQuery("approved")
	if !ok || (approved != "true" && approved != "false") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved must be true or false"})
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), uri.ID, auth.GetUserID(c), approved == "true")
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListOwn handles GET /bookings: the caller's bookings as booker.
func (h *Handler) ListOwn(c *gin.Context) {
	h.list(c, h.service.ListByBooker)
}

// ListOwner handles GET /bookings/owner: bookings of the caller's
// items.
func (h *Handler) ListOwner(c *gin.Context) {
	h.list(c, h.service.ListByOwner)
}

func (h *Handler) list(c *gin.Context, fetch listFunc) {
	var query ListBookingsRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	state, err := booking.ParseStateFilter(query.State)
	if err != nil {
		response.Error(c, err)
		return
	}

	f := booking.Filter{Page: query.Page, PageSize: query.PageSize}
	bookings, total, err := fetch(c.Request.Context(), auth.GetUserID(c), state, f)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewBookingResponses(bookings), f.Page, f.PageSize, total))
}
