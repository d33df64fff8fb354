package salary

import (
	"time"
)

// Salary is one payroll record for an employee. Period is stored as the
// first day of the month it covers; multiple records per period are allowed.
type Salary struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	Amount     float64   `gorm:"not null"`
	Period     time.Time `gorm:"type:date;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Salary) TableName() string {
	return "employee_salaries"
}
