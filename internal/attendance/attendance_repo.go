package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindAll(ctx context.Context) ([]Attendance, error)
	FindByID(ctx context.Context, id uint) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error)
	FindAllByEmployee(ctx context.Context, employeeID uint) ([]Attendance, error)
	FindAllByDepartment(ctx context.Context, departmentID uint) ([]Attendance, error)
	FindDepartmentIDByName(ctx context.Context, name string) (uint, error)
	EmployeeExists(ctx context.Context, id uint) (bool, error)
	Update(ctx context.Context, a *Attendance) error
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(dateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID uint) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, departmentID uint) ([]Attendance, error) {
	var rows []Attendance
	query := `
SELECT
	employee_attendance.*
FROM employee_attendance
JOIN employees ON employees.id = employee_attendance.employee_id
WHERE employees.department_id = ?
ORDER BY
	employee_attendance.employee_id ASC,
	employee_attendance.date DESC
`

	err := r.db.WithContext(ctx).Raw(query, departmentID).Scan(&rows).Error
	return rows, err
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

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Delete(&Attendance{}, "id = ?", id).Error
}
