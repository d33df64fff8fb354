package attendance

import (
	"hrbuddy/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	attendance := r.Group("/attendance")
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.GET("", handler.GetAll)
		attendance.GET("/employee/:employee_id", handler.GetAllByEmployee)
		attendance.GET("/department/:department_name", handler.GetAllByDepartment)

		attendance.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Mark,
		)

		attendance.PUT("/:id",
			middleware.RateLimitByIP(1, 5),
			handler.Update,
		)

		attendance.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Delete,
		)
	}
}
