package http

import "github.com/gin-gonic/gin"

// Register attaches proyecto routes to the given router group. The
// static analytic routes go first so they are never shadowed by /:id.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/graficos", h.graficosResumen)
	rg.GET("/analisis", h.analisisResumen)

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
