package salary

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
	salaries := r.Group("/salaries")
	salaries.Use(middleware.ContextLogger(logger))
	{
		salaries.GET("", handler.GetAll)
		salaries.GET("/employee/:employee_id", handler.GetAllByEmployee)
		salaries.GET("/department/:department_name", handler.GetAllByDepartment)

		salaries.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Create,
		)

		salaries.PUT("/:id",
			middleware.RateLimitByIP(1, 5),
			handler.Update,
		)

		salaries.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Delete,
		)
	}
}
