package leavepolicy

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	policies := r.Group("/leave-policies")
	{
		policies.GET("", handler.GetAll)
		policies.GET("/active", handler.GetActive)
		policies.GET("/:id", handler.GetById)
		policies.POST("", handler.Create)
		policies.PUT("/:id", handler.Update)
		policies.POST("/:id/activate", handler.Activate)
		policies.POST("/:id/retire", handler.Retire)
	}
}
