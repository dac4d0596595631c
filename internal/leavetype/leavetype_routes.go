package leavetype

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	types := r.Group("/leave-types")
	{
		types.GET("", handler.GetAll)
		types.GET("/:id", handler.GetById)
		types.POST("", handler.Create)
		types.PUT("/:id", handler.Update)
		types.DELETE("/:id", handler.Delete)
	}
}
