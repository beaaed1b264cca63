package attendance

import (
	"hr-portal/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	attendances := r.Group("/attendance")
	{
		attendances.GET("/summaries", handler.GetAllSummaries)
		attendances.GET("/employee/:employee_code", handler.GetSummary)

		upsert := attendances.Group("")
		upsert.Use(middleware.RateLimitByIP(rate.Limit(5), 10))
		if rdb != nil {
			upsert.Use(middleware.Idempotency(rdb))
		}
		upsert.POST("/upsert", handler.Upsert)
	}
}
