package leave

type CreateLeaveRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required"`
	LeaveType    string `json:"leave_type" binding:"required,oneof=SICK CASUAL ANNUAL UNPAID"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}

type UpdateLeaveStatusRequest struct {
	Status       string  `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	AdminComment *string `json:"admin_comment"`
}

type LeaveResponse struct {
	ID           string  `json:"id"`
	EmployeeCode string  `json:"employee_code"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

type QuotaUsageResponse struct {
	Allowance int `json:"allowance"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}

// LeaveQuotaResponse is informational only: exceeding an allowance is
// reported, never rejected.
type LeaveQuotaResponse struct {
	EmployeeCode string             `json:"employee_code"`
	AsOf         string             `json:"as_of"`
	Sick         QuotaUsageResponse `json:"sick"`
	Casual       QuotaUsageResponse `json:"casual"`
	Annual       QuotaUsageResponse `json:"annual"`
}
