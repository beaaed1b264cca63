package events

import "time"

const LeaveStatusChangedTopic = "hr.leave.status.changed.v1"

type LeaveStatusChangedEvent struct {
	EventType    string    `json:"event_type"`
	LeaveID      string    `json:"leave_id"`
	EmployeeCode string    `json:"employee_code"`
	LeaveType    string    `json:"leave_type"`
	Status       string    `json:"status"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	OccurredAt   time.Time `json:"occurred_at"`
}
