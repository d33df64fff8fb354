package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("", handler.GetAll)

		// registered before /:id so the literal segment wins
		employees.GET("/department/:department_name", handler.GetAllByDepartment)

		employees.GET("/:id", handler.GetById)

		employees.POST("",
			middleware.RateLimitByIP(1, 5),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByIP(1, 5),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Delete,
		)
	}
}
