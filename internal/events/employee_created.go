package events

import "time"

const EmployeeLifecycleTopic = "hr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   uint      `json:"employee_id"`
	Email        string    `json:"email"`
	DepartmentID uint      `json:"department_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
