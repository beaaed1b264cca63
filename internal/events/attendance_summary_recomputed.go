package events

import "time"

const AttendanceSummaryRecomputedTopic = "hr.attendance.summary.recomputed.v1"

// AttendanceSummaryRecomputedEvent carries the freshly derived figures for
// one employee/period so dashboard consumers never need to rederive them.
type AttendanceSummaryRecomputedEvent struct {
	EventType             string    `json:"event_type"`
	EmployeeCode          string    `json:"employee_code"`
	Month                 int       `json:"month"`
	Year                  int       `json:"year"`
	AbsentDays            int       `json:"absent_days"`
	ApprovedLeaveDays     int       `json:"approved_leave_days"`
	UnapprovedAbsenceDays int       `json:"unapproved_absence_days"`
	EffectiveDailyRate    float64   `json:"effective_daily_deduction"`
	TotalDeduction        float64   `json:"total_deduction"`
	FinalSalary           float64   `json:"final_salary"`
	Warnings              []string  `json:"warnings,omitempty"`
	OccurredAt            time.Time `json:"occurred_at"`
}
