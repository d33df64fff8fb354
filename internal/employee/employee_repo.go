package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindAllByDepartment(ctx context.Context, departmentID uint) ([]Employee, error)
	FindDepartmentIDByName(ctx context.Context, name string) (uint, error)
	DepartmentExists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id uint) error
	DeleteSalariesByEmployee(ctx context.Context, employeeID uint) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		First(&empl, "email = ?", email).Error
	return &empl, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, departmentID uint) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("id ASC").
		Find(&empls).Error
	return empls, err
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

func (r *repository) DepartmentExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) DeleteSalariesByEmployee(ctx context.Context, employeeID uint) error {
	return r.db.WithContext(ctx).
		Table("employee_salaries").
		Where("employee_id = ?", employeeID).
		Delete(nil).Error
}
