package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lendmarket/internal/auth"
	pkgrequest "lendmarket/internal/pkg/request"
	"lendmarket/internal/pkg/response"
	"lendmarket/internal/request"
)

type Handler struct {
	service request.Service
}

func NewHandler(service request.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(r))
}

// ListOwn handles GET /requests: the caller's requests, oldest first,
// each with the items listed in answer to it.
func (h *Handler) ListOwn(c *gin.Context) {
	requests, err := h.service.ListOwn(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": NewRequestResponses(requests)})
}

// ListOthers handles GET /requests/all: other users' requests, newest
// first, paginated.
func (h *Handler) ListOthers(c *gin.Context) {
	var params pkgrequest.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	params.Normalize()

	f := request.Filter{Page: params.Page, PageSize: params.PageSize}
	requests, total, err := h.service.ListOthers(c.Request.Context(), auth.GetUserID(c), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewRequestResponses(requests), f.Page, f.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri pkgrequest.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(r))
}
