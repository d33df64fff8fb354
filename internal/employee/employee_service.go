package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	employeeerrors "hrbuddy/internal/employee/errors"
	"hrbuddy/internal/events"
	"hrbuddy/internal/messaging/kafka"
	"hrbuddy/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetAllByDepartmentName(ctx context.Context, departmentName string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.Uint("department_id", req.DepartmentID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Friendly conflict check; uq_employee_email is the real backstop.
	existing, err := qtx.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create employee lookup by email failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err == nil && existing != nil {
		s.logger.Warn("create employee email already registered",
			zap.String("email", req.Email),
			zap.Uint("existing_id", existing.ID),
		)
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyRegistered
	}

	deptExists, err := qtx.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		s.logger.Error("create employee department lookup failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if !deptExists {
		s.logger.Warn("create employee department not found",
			zap.Uint("department_id", req.DepartmentID),
		)
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	empl := &Employee{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    "employee_created",
			RequestID:    rid,
			EmployeeID:   empl.ID,
			Email:        empl.Email,
			DepartmentID: empl.DepartmentID,
			OccurredAt:   time.Now().UTC(),
		}
		if err := s.enqueueEvent(ctx, tx, empl.ID, event.EventType, event); err != nil {
			s.logger.Error("create employee outbox persist failed",
				zap.Uint("employee_id", empl.ID),
				zap.Error(err),
			)
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", empl.ID),
	)

	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetAllByDepartmentName(
	ctx context.Context,
	departmentName string,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get employees by department requested",
		zap.String("department_name", departmentName),
	)

	departmentID, err := s.repo.FindDepartmentIDByName(ctx, departmentName)
	if err != nil {
		s.logger.Error("get employees department lookup failed", zap.Error(err))
		return nil, err
	}
	if departmentID == 0 {
		s.logger.Warn("get employees department not found",
			zap.String("department_name", departmentName),
		)
		return nil, employeeerrors.ErrDepartmentNotFound
	}

	empls, err := s.repo.FindAllByDepartment(ctx, departmentID)
	if err != nil {
		s.logger.Error("get employees by department failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Uint("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	id uint,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.Uint("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	// Validate the whole patch before touching the record.
	if req.Email != nil {
		existing, err := qtx.FindByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("update employee lookup by email failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if err == nil && existing != nil && existing.ID != id {
			s.logger.Warn("update employee email already registered",
				zap.String("email", *req.Email),
				zap.Uint("existing_id", existing.ID),
			)
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyRegistered
		}
	}

	if req.DepartmentID != nil {
		deptExists, err := qtx.DepartmentExists(ctx, *req.DepartmentID)
		if err != nil {
			s.logger.Error("update employee department lookup failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		if !deptExists {
			s.logger.Warn("update employee department not found",
				zap.Uint("department_id", *req.DepartmentID),
			)
			return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
		}
	}

	if req.Name != nil {
		empl.Name = *req.Name
	}
	if req.Email != nil {
		empl.Email = *req.Email
	}
	if req.Phone != nil {
		empl.Phone = req.Phone
	}
	if req.DepartmentID != nil {
		empl.DepartmentID = *req.DepartmentID
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.Uint("employee_id", id))

	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		s.logger.Error("delete employee fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	// Salary rows carry no storage-level cascade; remove them in the same
	// transaction. Attendance rows cascade at the storage layer.
	if err := qtx.DeleteSalariesByEmployee(ctx, id); err != nil {
		s.logger.Error("delete employee salaries failed", zap.Error(err))
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.EmployeeDeletedEvent{
			EventType:  "employee_deleted",
			RequestID:  rid,
			EmployeeID: id,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.enqueueEvent(ctx, tx, id, event.EventType, event); err != nil {
			s.logger.Error("delete employee outbox persist failed",
				zap.Uint("employee_id", id),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.Uint("employee_id", id),
	)
	return nil
}

func (s *service) enqueueEvent(
	ctx context.Context,
	tx *sql.Tx,
	employeeID uint,
	eventType string,
	payload any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	return outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "employee",
		AggregateID:   strconv.FormatUint(uint64(employeeID), 10),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID,
		Name:         empl.Name,
		Email:        empl.Email,
		Phone:        empl.Phone,
		DepartmentID: empl.DepartmentID,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
