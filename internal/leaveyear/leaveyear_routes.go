package leaveyear

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	years := r.Group("/leave-years")
	{
		years.GET("", handler.GetAll)
		years.GET("/resolve", handler.Resolve)
		years.POST("", handler.Create)
		years.PUT("/:id", handler.Update)
	}
}
