package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hrbuddy/internal/department"
	departmenterrors "hrbuddy/internal/department/errors"

	departmentMock "hrbuddy/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	dbRedis, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	svc := department.NewService(db, repo, dbRedis)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		redisMock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := department.CreateDepartmentRequest{Name: "Engineering"}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(department.DepartmentListKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(nil, gorm.ErrRecordNotFound)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, req.Name, d.Name)
				d.ID = 1
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, uint(1), resp.ID)
		assert.Equal(t, req.Name, resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := department.CreateDepartmentRequest{Name: "Engineering"}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(&department.Department{ID: 7, Name: req.Name}, nil)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
	})

	t.Run("repo error -> rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := department.CreateDepartmentRequest{Name: "Engineering"}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			FindByName(ctx, req.Name).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("db error"))

		_, err := deps.service.Create(ctx, req)

		assert.Error(t, err)
	})
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectedResp := []department.DepartmentResponse{
			{ID: 1, Name: "Engineering"},
			{ID: 2, Name: "Sales"},
		}
		jsonResp, _ := json.Marshal(expectedResp)

		deps.redisMock.ExpectGet(department.DepartmentListKey).SetVal(string(jsonResp))

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Engineering", resp[0].Name)

		deps.repo.EXPECT().FindAll(gomock.Any()).Times(0)
	})

	t.Run("cache miss -> db then cache fill", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(department.DepartmentListKey).RedisNil()

		deps.repo.EXPECT().
			FindAll(ctx).
			Return([]department.Department{{ID: 3, Name: "Finance"}}, nil).
			Times(1)

		deps.redisMock.ExpectSet(department.DepartmentListKey, gomock.Any(), 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Finance", resp[0].Name)
	})

	t.Run("database error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redisMock.ExpectGet(department.DepartmentListKey).RedisNil()

		deps.repo.EXPECT().
			FindAll(ctx).
			Return(nil, errors.New("db connection error")).
			Times(1)

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		newName := "People Ops"
		req := department.UpdateDepartmentRequest{Name: &newName}

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(department.DepartmentListKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&department.Department{ID: 1, Name: "HR"}, nil)

		deps.repo.EXPECT().
			FindByName(ctx, newName).
			Return(nil, gorm.ErrRecordNotFound)

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, newName, d.Name)
				return nil
			})

		resp, err := deps.service.Update(ctx, 1, req)

		assert.NoError(t, err)
		assert.Equal(t, newName, resp.Name)
	})

	t.Run("empty patch keeps record unchanged", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(department.DepartmentListKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&department.Department{ID: 1, Name: "HR"}, nil)

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, d *department.Department) error {
				assert.Equal(t, "HR", d.Name)
				return nil
			})

		resp, err := deps.service.Update(ctx, 1, department.UpdateDepartmentRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "HR", resp.Name)
	})

	t.Run("name taken by another department -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		newName := "Sales"
		req := department.UpdateDepartmentRequest{Name: &newName}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&department.Department{ID: 1, Name: "HR"}, nil)

		deps.repo.EXPECT().
			FindByName(ctx, newName).
			Return(&department.Department{ID: 2, Name: newName}, nil)

		_, err := deps.service.Update(ctx, 1, req)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(99)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 99, department.UpdateDepartmentRequest{})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.redisMock.ExpectDel(department.DepartmentListKey).SetVal(1)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&department.Department{ID: 1, Name: "HR"}, nil)

		deps.repo.EXPECT().
			CountEmployees(ctx, uint(1)).
			Return(int64(0), nil)

		deps.repo.EXPECT().
			Delete(ctx, uint(1)).
			Return(nil)

		err := deps.service.Delete(ctx, 1)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("still has employees -> conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&department.Department{ID: 1, Name: "HR"}, nil)

		deps.repo.EXPECT().
			CountEmployees(ctx, uint(1)).
			Return(int64(3), nil)

		err := deps.service.Delete(ctx, 1)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotEmpty)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(99)).
			Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, 99)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
