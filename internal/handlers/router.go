package handlers

import (
	"net/http"

	_ "github.com/epeers/indexetfs/docs"
	"github.com/epeers/indexetfs/internal/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter wires the holdings endpoints, health check and Swagger UI
func NewRouter(h *HoldingsHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/etfs", h.List)
	router.POST("/etfs/refresh", h.Refresh)
	router.GET("/etfs/:symbol/holdings", h.Get)
	router.GET("/etfs/:symbol/snapshot", h.GetSnapshot)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
