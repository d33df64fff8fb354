package employee

type CreateEmployeeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone"`
	DepartmentID uint    `json:"department_id" binding:"required"`
}

// UpdateEmployeeRequest carries a partial patch: nil fields are left
// untouched, supplied fields are validated and applied in one transaction.
type UpdateEmployeeRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone"`
	DepartmentID *uint   `json:"department_id"`
}

type EmployeeResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone,omitempty"`
	DepartmentID uint    `json:"department_id"`
}
