package salary

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sal *Salary) error
	FindAll(ctx context.Context) ([]Salary, error)
	FindByID(ctx context.Context, id uint) (*Salary, error)
	FindAllByEmployee(ctx context.Context, employeeID uint) ([]Salary, error)
	FindAllByDepartment(ctx context.Context, departmentID uint) ([]Salary, error)
	FindDepartmentIDByName(ctx context.Context, name string) (uint, error)
	EmployeeExists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, sal *Salary) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements all run on tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	// The session clones its statement, so the pool swap is local to the
	// returned repository.
	session := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, sal *Salary) error {
	return r.db.WithContext(ctx).Create(sal).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Salary, error) {
	var sals []Salary
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&sals).Error
	return sals, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Salary, error) {
	var sal Salary
	err := r.db.WithContext(ctx).
		First(&sal, "id = ?", id).Error
	return &sal, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uint) ([]Salary, error) {
	var sals []Salary
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("period DESC, created_at DESC").
		Find(&sals).Error
	return sals, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, departmentID uint) ([]Salary, error) {
	var sals []Salary
	query := `
SELECT
	employee_salaries.*
FROM employee_salaries
JOIN employees ON employees.id = employee_salaries.employee_id
WHERE employees.department_id = ?
ORDER BY
	employee_salaries.employee_id ASC,
	employee_salaries.period DESC,
	employee_salaries.created_at DESC
`

	err := r.db.WithContext(ctx).Raw(query, departmentID).Scan(&sals).Error
	return sals, err
}

func (r *repository) FindDepartmentIDByName(ctx context.Context, name string) (uint, error) {
	var departmentID uint
	err := r.db.WithContext(ctx).
		Table("departments").
		Select("id").
		Where("name = ?", name).
		Scan(&departmentID).Error
	return departmentID, err
}

func (r *repository) EmployeeExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, sal *Salary) error {
	return r.db.WithContext(ctx).Save(sal).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Delete(&Salary{}, "id = ?", id).Error
}
