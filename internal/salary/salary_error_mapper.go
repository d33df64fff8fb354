package salary

import (
	"errors"
	"strings"

	salaryerrors "hrbuddy/internal/salary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// FK violation means the referenced employee vanished between
		// the existence check and the insert.
		if pgErr.Code == "23503" && pgErr.TableName == "employee_salaries" {
			return salaryerrors.ErrEmployeeNotFound
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "foreign key constraint") && strings.Contains(errMsg, "employee_salaries") {
		return salaryerrors.ErrEmployeeNotFound
	}

	return err
}
