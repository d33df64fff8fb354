package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	departmenterrors "hrbuddy/internal/department/errors"
	"hrbuddy/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DepartmentListKey = "departments:all"

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	Update(ctx context.Context, id uint, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create department requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Friendly conflict check; the unique index is the real backstop.
	existing, err := qtx.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("create department lookup by name failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	if err == nil && existing != nil {
		s.logger.Warn("create department name already taken",
			zap.String("name", req.Name),
			zap.Uint("existing_id", existing.ID),
		)
		return DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
	}

	dept := &Department{
		Name: req.Name,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("create department success",
		zap.String("request_id", rid),
		zap.Uint("department_id", dept.ID),
	)

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	s.logger.Debug("get all departments requested")

	// 1. Check Redis
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DepartmentListKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight so a cold cache does not stampede the DB
	v, err, _ := s.sf.Do(DepartmentListKey, func() (interface{}, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(depts)

		// 3. Store in Redis (master data, 30 minutes is plenty)
		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, DepartmentListKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) Update(
	ctx context.Context,
	id uint,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	s.logger.Debug("update department requested", zap.Uint("department_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update department fetch existing failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		existing, err := qtx.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("update department lookup by name failed", zap.Error(err))
			return DepartmentResponse{}, err
		}
		if err == nil && existing != nil && existing.ID != id {
			s.logger.Warn("update department name already taken",
				zap.String("name", *req.Name),
				zap.Uint("existing_id", existing.ID),
			)
			return DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
		}
		dept.Name = *req.Name
	}

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("update department success", zap.Uint("department_id", id))

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete department requested", zap.Uint("department_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		s.logger.Error("delete department fetch existing failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	count, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		s.logger.Error("delete department count employees failed", zap.Error(err))
		return err
	}
	if count > 0 {
		s.logger.Warn("delete department still has employees",
			zap.Uint("department_id", id),
			zap.Int64("employee_count", count),
		)
		return departmenterrors.ErrDepartmentNotEmpty
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("delete department success", zap.Uint("department_id", id))
	return nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, DepartmentListKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department list cache",
			zap.Error(err),
			zap.String("key", DepartmentListKey),
		)
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:   dept.ID,
		Name: dept.Name,
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
