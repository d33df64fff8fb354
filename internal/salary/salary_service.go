package salary

import (
	"context"
	"database/sql"
	"time"

	salaryerrors "hrbuddy/internal/salary/errors"
	"hrbuddy/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context) ([]SalaryResponse, error)
	GetAllByEmployee(ctx context.Context, employeeID uint) ([]SalaryResponse, error)
	GetAllByDepartmentName(ctx context.Context, departmentName string) ([]SalaryResponse, error)
	Update(ctx context.Context, id uint, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	req CreateSalaryRequest,
) (SalaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create salary requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
	)

	period, err := time.Parse(periodLayout, req.Period)
	if err != nil {
		s.logger.Warn("create salary invalid period",
			zap.String("period", req.Period),
			zap.Error(err),
		)
		return SalaryResponse{}, salaryerrors.ErrInvalidPeriod
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emplExists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		s.logger.Error("create salary employee lookup failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	if !emplExists {
		s.logger.Warn("create salary employee not found",
			zap.Uint("employee_id", req.EmployeeID),
		)
		return SalaryResponse{}, salaryerrors.ErrEmployeeNotFound
	}

	sal := &Salary{
		EmployeeID: req.EmployeeID,
		Amount:     *req.Amount,
		Period:     period,
	}

	if err := qtx.Create(ctx, sal); err != nil {
		s.logger.Error("create salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}

	s.logger.Info("create salary success",
		zap.String("request_id", rid),
		zap.Uint("salary_id", sal.ID),
	)

	return mapToResponse(*sal), nil
}

func (s *service) GetAll(ctx context.Context) ([]SalaryResponse, error) {
	s.logger.Debug("get all salaries requested")
	sals, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all salaries failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sals), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, employeeID uint) ([]SalaryResponse, error) {
	s.logger.Debug("get salaries by employee requested", zap.Uint("employee_id", employeeID))

	emplExists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		s.logger.Error("get salaries employee lookup failed", zap.Error(err))
		return nil, err
	}
	if !emplExists {
		s.logger.Warn("get salaries employee not found", zap.Uint("employee_id", employeeID))
		return nil, salaryerrors.ErrEmployeeNotFound
	}

	sals, err := s.repo.FindAllByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get salaries by employee failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sals), nil
}

func (s *service) GetAllByDepartmentName(
	ctx context.Context,
	departmentName string,
) ([]SalaryResponse, error) {
	s.logger.Debug("get salaries by department requested",
		zap.String("department_name", departmentName),
	)

	departmentID, err := s.repo.FindDepartmentIDByName(ctx, departmentName)
	if err != nil {
		s.logger.Error("get salaries department lookup failed", zap.Error(err))
		return nil, err
	}
	if departmentID == 0 {
		s.logger.Warn("get salaries department not found",
			zap.String("department_name", departmentName),
		)
		return nil, salaryerrors.ErrDepartmentNotFound
	}

	sals, err := s.repo.FindAllByDepartment(ctx, departmentID)
	if err != nil {
		s.logger.Error("get salaries by department failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(sals), nil
}

func (s *service) Update(
	ctx context.Context,
	id uint,
	req UpdateSalaryRequest,
) (SalaryResponse, error) {
	s.logger.Debug("update salary requested", zap.Uint("salary_id", id))

	// Validate the patch before opening the transaction.
	var period *time.Time
	if req.Period != nil {
		parsed, err := time.Parse(periodLayout, *req.Period)
		if err != nil {
			s.logger.Warn("update salary invalid period",
				zap.String("period", *req.Period),
				zap.Error(err),
			)
			return SalaryResponse{}, salaryerrors.ErrInvalidPeriod
		}
		period = &parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sal, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update salary fetch existing failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if req.Amount != nil {
		sal.Amount = *req.Amount
	}
	if period != nil {
		sal.Period = *period
	}

	if err := qtx.Update(ctx, sal); err != nil {
		s.logger.Error("update salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary commit failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	s.logger.Info("update salary success", zap.Uint("salary_id", id))

	return mapToResponse(*sal), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete salary requested", zap.Uint("salary_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete salary begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		s.logger.Error("delete salary fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete salary failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete salary commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete salary success", zap.Uint("salary_id", id))
	return nil
}

func mapToResponse(sal Salary) SalaryResponse {
	return SalaryResponse{
		ID:         sal.ID,
		EmployeeID: sal.EmployeeID,
		Amount:     sal.Amount,
		Period:     sal.Period.Format(periodLayout),
	}
}

func mapToListResponse(sals []Salary) []SalaryResponse {
	res := make([]SalaryResponse, len(sals))
	for i, s := range sals {
		res[i] = mapToResponse(s)
	}
	return res
}
