package leavecycle

import (
	"go-leaveledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	cycles := r.Group("/leave-cycles")
	{
		cycles.GET("", handler.ListByEmployee)
		cycles.GET("/active", handler.GetActive)
		cycles.POST("", handler.Create)
		cycles.POST("/setup", middleware.Idempotency(rdb), handler.Setup)
		cycles.POST("/:id/close", handler.Close)
	}
}
