package employee

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	{
		employees.GET("", handler.GetAll)
		employees.GET("/:employee_code", handler.GetByCode)
		employees.POST("", handler.Create)
		employees.PUT("/:employee_code", handler.Update)
		employees.DELETE("/:employee_code", handler.Delete)
	}
}
