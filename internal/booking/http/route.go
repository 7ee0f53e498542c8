package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := g.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListOwn)
		bookings.GET("/owner", h.ListOwner)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id", h.Confirm)
	}
}
