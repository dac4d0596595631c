package leavebalance

import (
	"go-leaveledger/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	balances := r.Group("/leave-balances")
	{
		balances.GET("", handler.GetAll)
		balances.GET("/:id", handler.GetByID)
		balances.GET("/:id/transactions", handler.GetTransactions)
		balances.POST("", handler.Create)
		balances.POST("/generate-annual", middleware.Idempotency(rdb), handler.GenerateAnnual)
		balances.POST("/reset", handler.ResetForYear)
		balances.PATCH("/:id/adjust", handler.Adjust)
		balances.POST("/:id/encash", handler.Encash)
		balances.POST("/:id/close", handler.Close)
	}
}
