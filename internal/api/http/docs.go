package http

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed openapi.json
var openapiSpec []byte

// RegisterDocs serves the OpenAPI document describing this API.
func RegisterDocs(r gin.IRouter) {
	r.GET("/api/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", openapiSpec)
	})
}
