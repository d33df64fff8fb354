package salary

const periodLayout = "2006-01"

type CreateSalaryRequest struct {
	EmployeeID uint     `json:"employee_id" binding:"required"`
	Amount     *float64 `json:"amount" binding:"required,gte=0"`
	Period     string   `json:"period" binding:"required"`
}

type UpdateSalaryRequest struct {
	Amount *float64 `json:"amount" binding:"omitempty,gte=0"`
	Period *string  `json:"period"`
}

type SalaryResponse struct {
	ID         uint    `json:"id"`
	EmployeeID uint    `json:"employee_id"`
	Amount     float64 `json:"amount"`
	Period     string  `json:"period"`
}
