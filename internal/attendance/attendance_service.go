package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "hrbuddy/internal/attendance/errors"
	"hrbuddy/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context) ([]AttendanceResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID uint) ([]AttendanceResponse, error)
	GetAllByDepartmentName(ctx context.Context, departmentName string) ([]AttendanceResponse, error)
	Update(ctx context.Context, id uint, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Mark(
	ctx context.Context,
	req MarkAttendanceRequest,
) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark attendance requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.String("status", req.Status),
	)

	status := Status(req.Status)
	if !status.Valid() {
		s.logger.Warn("mark attendance invalid status", zap.String("status", req.Status))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		s.logger.Warn("mark attendance invalid date",
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emplExists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("mark attendance employee lookup failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if !emplExists {
		s.logger.Warn("mark attendance employee not found",
			zap.Uint("employee_id", req.EmployeeID),
		)
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	// Friendly conflict check; uq_attendance_employee_date is the backstop.
	_, err = qtx.FindByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err == nil {
		s.logger.Warn("mark attendance already marked",
			zap.Uint("employee_id", req.EmployeeID),
			zap.String("date", req.Date),
		)
		return AttendanceResponse{}, attendanceerrors.ErrAttendanceAlreadyMarked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("mark attendance lookup by date failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	a := &Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     status,
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("mark attendance success",
		zap.String("request_id", rid),
		zap.Uint("attendance_id", a.ID),
	)

	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context) ([]AttendanceResponse, error) {
	s.logger.Debug("get all attendance requested")
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID uint) ([]AttendanceResponse, error) {
	s.logger.Debug("get attendance by employee requested", zap.Uint("employee_id", employeeID))

	emplExists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("get attendance employee lookup failed", zap.Error(err))
		return nil, err
	}
	if !emplExists {
		s.logger.Warn("get attendance employee not found", zap.Uint("employee_id", employeeID))
		return nil, attendanceerrors.ErrEmployeeNotFound
	}

	rows, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get attendance by employee failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) GetAllByDepartmentName(
	ctx context.Context,
	departmentName string,
) ([]AttendanceResponse, error) {
	s.logger.Debug("get attendance by department requested",
		zap.String("department_name", departmentName),
	)

	departmentID, err := s.repo.FindDepartmentIDByName(ctx, departmentName)
	if err != nil {
		s.logger.Error("get attendance department lookup failed", zap.Error(err))
		return nil, err
	}
	if departmentID == 0 {
		s.logger.Warn("get attendance department not found",
			zap.String("department_name", departmentName),
		)
		return nil, attendanceerrors.ErrDepartmentNotFound
	}

	rows, err := s.repo.FindAllByDepartment(ctx, departmentID)
	if err != nil {
		s.logger.Error("get attendance by department failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(rows), nil
}

func (s *service) Update(
	ctx context.Context,
	id uint,
	req UpdateAttendanceRequest,
) (AttendanceResponse, error) {
	s.logger.Debug("update attendance requested", zap.Uint("attendance_id", id))

	// Validate the patch before opening the transaction.
	if req.Status != nil && !Status(*req.Status).Valid() {
		s.logger.Warn("update attendance invalid status", zap.String("status", *req.Status))
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			s.logger.Warn("update attendance invalid date",
				zap.String("date", *req.Date),
				zap.Error(err),
			)
			return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
		}
		date = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update attendance fetch existing failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if date != nil {
		a.Date = *date
	}
	if req.Status != nil {
		a.Status = Status(*req.Status)
	}

	// A date change colliding with another record surfaces as a unique
	// violation here and is mapped to a conflict.
	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("update attendance success", zap.Uint("attendance_id", id))

	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete attendance requested", zap.Uint("attendance_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete attendance begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		s.logger.Error("delete attendance fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete attendance failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete attendance commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete attendance success", zap.Uint("attendance_id", id))
	return nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date.Format(dateLayout),
		Status:     a.Status,
	}
}

func mapToListResponse(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		res[i] = mapToResponse(a)
	}
	return res
}
