package attendance

// Status is the single authoritative attendance status enumeration,
// shared by request validation and the persisted column.
type Status string

const (
	StatusPresent     Status = "present"
	StatusAbsent      Status = "absent"
	StatusLate        Status = "late"
	StatusHalfDay     Status = "half_day"
	StatusSickLeave   Status = "sick_leave"
	StatusVacation    Status = "vacation"
	StatusUnpaidLeave Status = "unpaid_leave"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay,
		StatusSickLeave, StatusVacation, StatusUnpaidLeave:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
