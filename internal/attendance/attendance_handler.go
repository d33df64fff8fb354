package attendance

import (
	"net/http"
	"strconv"

	attendanceerrors "hrbuddy/internal/attendance/errors"
	"hrbuddy/internal/shared/apperror"
	"hrbuddy/internal/shared/contextutil"
	"hrbuddy/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	// The request-scoped logger already carries the request id.
	contextutil.GetLogger(c.Request.Context(), h.logger).Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Mark(c *gin.Context) {
	h.logger.Debug("http mark attendance")
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http mark attendance validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	h.logger.Debug("http get all attendance")

	resp, err := h.service.GetAll(ctx)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAllByEmployee(c *gin.Context) {
	ctx := c.Request.Context()
	employeeID, err := parseID(c.Param("employee_id"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidEmployeeID)
		return
	}
	h.logger.Debug("http get attendance by employee", zap.Uint("employee_id", employeeID))

	resp, err := h.service.GetAllByEmployee(ctx, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAllByDepartment(c *gin.Context) {
	ctx := c.Request.Context()
	departmentName := c.Param("department_name")
	h.logger.Debug("http get attendance by department",
		zap.String("department_name", departmentName),
	)

	resp, err := h.service.GetAllByDepartmentName(ctx, departmentName)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidAttendanceID)
		return
	}
	h.logger.Debug("http update attendance", zap.Uint("attendance_id", id))

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update attendance validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	resp, err := h.service.Update(ctx, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, attendanceerrors.ErrInvalidAttendanceID)
		return
	}
	h.logger.Debug("http delete attendance", zap.Uint("attendance_id", id))

	if err := h.service.Delete(ctx, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":      id,
		"message": "Attendance record deleted successfully",
	}, nil)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
