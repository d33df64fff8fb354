package employee

import (
	"time"
)

type Employee struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"size:255;not null"`
	Email        string  `gorm:"size:255;not null;uniqueIndex:uq_employee_email"`
	Phone        *string `gorm:"size:20"`
	DepartmentID uint    `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Employee) TableName() string {
	return "employees"
}
