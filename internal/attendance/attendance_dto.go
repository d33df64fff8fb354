package attendance

const dateLayout = "2006-01-02"

type MarkAttendanceRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

type UpdateAttendanceRequest struct {
	Date   *string `json:"date"`
	Status *string `json:"status"`
}

type AttendanceResponse struct {
	ID         uint   `json:"id"`
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
}
