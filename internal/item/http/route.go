package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	items := g.Group("/items")
	items.Use(authMiddleware)
	{
		items.POST("", h.Create)
		items.GET("", h.ListMine)
		items.GET("/search", h.Search)
		items.GET("/:id", h.Get)
		items.PATCH("/:id", h.Update)
		items.POST("/:id/comments", h.AddComment)
	}
}
