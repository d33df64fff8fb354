package attendance

import (
	"time"
)

type Attendance struct {
	ID         uint      `gorm:"column:id;primaryKey"`
	EmployeeID uint      `gorm:"column:employee_id;not null;index;uniqueIndex:uq_attendance_employee_date"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_employee_date"`
	Status     Status    `gorm:"column:status;type:varchar(20);not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`

	// Declared only so migration emits the FK with ON DELETE CASCADE.
	Employee *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Attendance) TableName() string {
	return "employee_attendance"
}

type EmployeeRef struct {
	ID uint `gorm:"primaryKey"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
