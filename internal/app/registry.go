package app

import (
	"database/sql"

	"hrbuddy/internal/attendance"
	"hrbuddy/internal/department"
	"hrbuddy/internal/employee"
	"hrbuddy/internal/messaging/kafka"
	"hrbuddy/internal/salary"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, logger)
	salaryService := salary.NewService(db, salaryRepo, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, logger)

	// --- Handlers ---
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	salaryHandler := salary.NewHandler(salaryService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		department.RegisterRoutes(api, departmentHandler, logger)
		employee.RegisterRoutes(api, employeeHandler, logger)
		salary.RegisterRoutes(api, salaryHandler, logger)
		attendance.RegisterRoutes(api, attendanceHandler, logger)
	}

	return nil
}
