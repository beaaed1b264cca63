package leave

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	leaves := r.Group("/leaves")
	{
		leaves.GET("", handler.GetAll)
		leaves.GET("/:id", handler.GetByID)
		leaves.GET("/employee/:employee_code", handler.GetByEmployee)
		leaves.GET("/quota/:employee_code", handler.GetQuota)
		leaves.POST("", handler.Create)
		leaves.PATCH("/:id/status", handler.UpdateStatus)
	}
}
