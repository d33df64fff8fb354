package salary_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"hrbuddy/internal/salary"
	salaryerrors "hrbuddy/internal/salary/errors"

	salaryMock "hrbuddy/internal/salary/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service salary.Service
	repo    *salaryMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := salaryMock.NewMockRepository(ctrl)

	svc := salary.NewService(db, repo)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
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

func amount(v float64) *float64 { return &v }

func TestSalaryService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := salary.CreateSalaryRequest{
			EmployeeID: 3,
			Amount:     amount(5200.50),
			Period:     "2026-08",
		}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			EmployeeExists(ctx, uint(3)).
			Return(true, nil)

		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *salary.Salary) error {
				assert.Equal(t, uint(3), s.EmployeeID)
				assert.Equal(t, 5200.50, s.Amount)
				assert.Equal(t, time.August, s.Period.Month())
				s.ID = 1
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "2026-08", resp.Period)
		assert.Equal(t, 5200.50, resp.Amount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid period format", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := salary.CreateSalaryRequest{
			EmployeeID: 3,
			Amount:     amount(5200.50),
			Period:     "August 2026",
		}

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, salaryerrors.ErrInvalidPeriod)
	})

	t.Run("employee not found -> no insert", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := salary.CreateSalaryRequest{
			EmployeeID: 99,
			Amount:     amount(5200.50),
			Period:     "2026-08",
		}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			EmployeeExists(ctx, uint(99)).
			Return(false, nil)

		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, salaryerrors.ErrEmployeeNotFound)
	})

	t.Run("foreign key violation from storage -> not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := salary.CreateSalaryRequest{
			EmployeeID: 3,
			Amount:     amount(5200.50),
			Period:     "2026-08",
		}

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			EmployeeExists(ctx, uint(3)).
			Return(true, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23503", TableName: "employee_salaries"})

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, salaryerrors.ErrEmployeeNotFound)
	})
}

func TestSalaryService_GetAllByEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		period, _ := time.Parse("2006-01", "2026-07")

		deps.repo.EXPECT().
			EmployeeExists(ctx, uint(3)).
			Return(true, nil)

		deps.repo.EXPECT().
			FindAllByEmployee(ctx, uint(3)).
			Return([]salary.Salary{{ID: 1, EmployeeID: 3, Amount: 5000, Period: period}}, nil)

		resp, err := deps.service.GetAllByEmployee(ctx, 3)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "2026-07", resp[0].Period)
	})

	t.Run("employee not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			EmployeeExists(ctx, uint(99)).
			Return(false, nil)

		_, err := deps.service.GetAllByEmployee(ctx, 99)

		assert.ErrorIs(t, err, salaryerrors.ErrEmployeeNotFound)
	})
}

func TestSalaryService_GetAllByDepartmentName(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindDepartmentIDByName(ctx, "Engineering").
			Return(uint(2), nil)

		deps.repo.EXPECT().
			FindAllByDepartment(ctx, uint(2)).
			Return([]salary.Salary{{ID: 1, EmployeeID: 3, Amount: 5000}}, nil)

		resp, err := deps.service.GetAllByDepartmentName(ctx, "Engineering")

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
	})

	t.Run("department not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindDepartmentIDByName(ctx, "Nowhere").
			Return(uint(0), nil)

		_, err := deps.service.GetAllByDepartmentName(ctx, "Nowhere")

		assert.ErrorIs(t, err, salaryerrors.ErrDepartmentNotFound)
	})
}

func TestSalaryService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success - amount only", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		period, _ := time.Parse("2006-01", "2026-07")
		req := salary.UpdateSalaryRequest{Amount: amount(6000)}

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&salary.Salary{ID: 1, EmployeeID: 3, Amount: 5000, Period: period}, nil)

		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, s *salary.Salary) error {
				assert.Equal(t, 6000.0, s.Amount)
				assert.Equal(t, period, s.Period)
				return nil
			})

		resp, err := deps.service.Update(ctx, 1, req)

		assert.NoError(t, err)
		assert.Equal(t, 6000.0, resp.Amount)
		assert.Equal(t, "2026-07", resp.Period)
	})

	t.Run("invalid period -> no transaction", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		badPeriod := "07/2026"
		req := salary.UpdateSalaryRequest{Period: &badPeriod}

		_, err := deps.service.Update(ctx, 1, req)

		assert.ErrorIs(t, err, salaryerrors.ErrInvalidPeriod)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(99)).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 99, salary.UpdateSalaryRequest{})

		assert.ErrorIs(t, err, salaryerrors.ErrSalaryNotFound)
	})
}

func TestSalaryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&salary.Salary{ID: 1}, nil)

		deps.repo.EXPECT().
			Delete(ctx, uint(1)).
			Return(nil)

		err := deps.service.Delete(ctx, 1)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
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

		assert.ErrorIs(t, err, salaryerrors.ErrSalaryNotFound)
	})

	t.Run("failure - db error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)

		deps.repo.EXPECT().
			FindByID(ctx, uint(1)).
			Return(&salary.Salary{ID: 1}, nil)

		deps.repo.EXPECT().
			Delete(ctx, uint(1)).
			Return(errors.New("db error"))

		err := deps.service.Delete(ctx, 1)

		assert.Error(t, err)
	})
}
