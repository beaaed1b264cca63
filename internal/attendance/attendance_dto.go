package attendance

import "math"

type UpsertAttendanceRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	Year         int    `json:"year" binding:"required,min=1900"`
	AbsentDays   int    `json:"absent_days" binding:"min=0"`

	// Absent means "use the fallback daily rate".
	DailyDeduction *float64 `json:"daily_deduction" binding:"omitempty,gte=0"`
}

type AttendanceSummaryResponse struct {
	EmployeeCode            string   `json:"employee_code"`
	EmployeeName            string   `json:"employee_name,omitempty"`
	Month                   int      `json:"month"`
	Year                    int      `json:"year"`
	AbsentDays              int      `json:"absent_days"`
	ApprovedLeaveDays       int      `json:"approved_leave_days"`
	UnapprovedAbsenceDays   int      `json:"unapproved_absence_days"`
	EffectiveDailyDeduction float64  `json:"effective_daily_deduction"`
	TotalDeduction          float64  `json:"total_deduction"`
	FinalSalary             float64  `json:"final_salary"`
	Warnings                []string `json:"warnings,omitempty"`
}

type BatchSummaryItemResponse struct {
	EmployeeCode string                     `json:"employee_code"`
	Summary      *AttendanceSummaryResponse `json:"summary,omitempty"`
	Error        string                     `json:"error,omitempty"`
}

// round2 is the presentation rounding step; the engine itself keeps full
// float precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mapSummaryToResponse(s Summary, employeeName string) AttendanceSummaryResponse {
	return AttendanceSummaryResponse{
		EmployeeCode:            s.EmployeeCode,
		EmployeeName:            employeeName,
		Month:                   s.Month,
		Year:                    s.Year,
		AbsentDays:              s.AbsentDays,
		ApprovedLeaveDays:       s.ApprovedLeaveDays,
		UnapprovedAbsenceDays:   s.UnapprovedAbsenceDays,
		EffectiveDailyDeduction: round2(s.EffectiveDailyDeduction),
		TotalDeduction:          round2(s.TotalDeduction),
		FinalSalary:             round2(s.FinalSalary),
		Warnings:                s.Warnings,
	}
}
