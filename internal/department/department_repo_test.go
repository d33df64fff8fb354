package department_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"hrbuddy/internal/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRepoTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, department.Repository) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	return db, mock, department.NewRepository(gormDB)
}

func TestRepositoryWithTx(t *testing.T) {
	t.Run("read and write share the caller's transaction", func(t *testing.T) {
		db, mock, repo := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "employees" WHERE department_id = $1`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "departments" WHERE id = $1`)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := db.Begin()
		assert.NoError(t, err)
		qtx := repo.WithTx(tx)

		count, err := qtx.CountEmployees(context.Background(), 3)
		assert.NoError(t, err)
		assert.Zero(t, count)

		assert.NoError(t, qtx.Delete(context.Background(), 3))

		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback discards the delete", func(t *testing.T) {
		db, mock, repo := setupRepoTest(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "departments" WHERE id = $1`)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		tx, err := db.Begin()
		assert.NoError(t, err)

		assert.NoError(t, repo.WithTx(tx).Delete(context.Background(), 3))

		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
