package leaverequest

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	requests := r.Group("/leave-requests")
	{
		requests.GET("", handler.GetAll)
		requests.GET("/:id", handler.GetByID)
		requests.POST("", handler.Create)
		requests.PUT("/:id", handler.Update)
		requests.POST("/:id/approve", handler.Approve)
		requests.POST("/:id/reject", handler.Reject)
		requests.POST("/:id/cancel", handler.Cancel)
	}
}
