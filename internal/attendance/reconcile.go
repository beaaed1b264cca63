package attendance

import (
	"time"

	attendanceerrors "hr-portal/internal/attendance/errors"
	"hr-portal/internal/employee"
	"hr-portal/internal/leave"
)

const (
	// Assumed working days per month. A policy constant, not configurable.
	workingDaysPerMonth = 22

	// A manual daily rate at or above this multiple of the monthly salary
	// is treated as a data-entry mistake (e.g. a monthly figure typed into
	// the daily field) and replaced by the fallback rate.
	dailyDeductionSanityFactor = 1.2

	minPeriodYear = 1900
)

const (
	WarningImplausibleDailyDeduction = "IMPLAUSIBLE_DAILY_DEDUCTION"
	WarningNegativeFinalSalary       = "NEGATIVE_FINAL_SALARY"
)

// Period is one accounting window: a (month, year) pair. Callers always pass
// it explicitly; nothing in this package reads the clock.
type Period struct {
	Month int
	Year  int
}

func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if !p.Valid() {
		return Period{}, attendanceerrors.ErrInvalidPeriod
	}
	return p, nil
}

func (p Period) Valid() bool {
	return p.Month >= 1 && p.Month <= 12 && p.Year >= minPeriodYear
}

// Start is the first calendar day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End is the last calendar day of the period.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Summary is the derived attendance/payroll view for one employee/period.
// It is never persisted: the override's raw fields are the only stored
// truth, everything here is recomputed on every read.
type Summary struct {
	EmployeeCode            string
	Month                   int
	Year                    int
	AbsentDays              int
	ApprovedLeaveDays       int
	UnapprovedAbsenceDays   int
	EffectiveDailyDeduction float64
	TotalDeduction          float64
	FinalSalary             float64

	// Warnings flag inconsistent but displayable results, e.g. a negative
	// final salary or a rejected manual rate. They never abort.
	Warnings []string
}

// Reconcile merges the roster record, the period override and the leave
// ledger into one summary. Pure: same inputs always produce the same
// output, full float precision, rounding only at presentation.
//
// A nil override means no absences were recorded and no manual rate exists.
func Reconcile(emp employee.Employee, p Period, override *AttendanceOverride, leaves []leave.Leave) (Summary, error) {
	if !p.Valid() {
		return Summary{}, attendanceerrors.ErrInvalidPeriod
	}

	absentDays := 0
	if override != nil {
		if override.AbsentDays < 0 {
			return Summary{}, attendanceerrors.ErrNegativeAbsentDays
		}
		if override.DailyDeduction != nil && *override.DailyDeduction < 0 {
			return Summary{}, attendanceerrors.ErrNegativeDailyDeduction
		}
		absentDays = override.AbsentDays
	}

	approvedLeaveDays := countApprovedLeaves(leaves, p)

	// Approved leave beyond recorded absences must never go negative.
	unapproved := absentDays - approvedLeaveDays
	if unapproved < 0 {
		unapproved = 0
	}

	var warnings []string
	effectiveRate, rejected := effectiveDailyDeduction(emp.MonthlySalary, override)
	if rejected {
		warnings = append(warnings, WarningImplausibleDailyDeduction)
	}

	totalDeduction := float64(unapproved) * effectiveRate

	// Not floored: a negative result signals a data or policy error the
	// caller should surface, not hide.
	finalSalary := emp.MonthlySalary - totalDeduction
	if finalSalary < 0 {
		warnings = append(warnings, WarningNegativeFinalSalary)
	}

	return Summary{
		EmployeeCode:            emp.EmployeeCode,
		Month:                   p.Month,
		Year:                    p.Year,
		AbsentDays:              absentDays,
		ApprovedLeaveDays:       approvedLeaveDays,
		UnapprovedAbsenceDays:   unapproved,
		EffectiveDailyDeduction: effectiveRate,
		TotalDeduction:          totalDeduction,
		FinalSalary:             finalSalary,
		Warnings:                warnings,
	}, nil
}

// countApprovedLeaves counts APPROVED requests whose date range overlaps
// the period, inclusive on both ends at calendar-day granularity. Pending
// and rejected requests never count.
func countApprovedLeaves(leaves []leave.Leave, p Period) int {
	periodStart := p.Start()
	periodEnd := p.End()

	count := 0
	for _, l := range leaves {
		if l.Status != leave.StatusApproved {
			continue
		}
		if !l.EndDate.Before(periodStart) && !l.StartDate.After(periodEnd) {
			count++
		}
	}
	return count
}

// effectiveDailyDeduction returns the rate to apply and whether a manual
// rate was present but rejected by the sanity bound.
func effectiveDailyDeduction(monthlySalary float64, override *AttendanceOverride) (float64, bool) {
	fallback := 0.0
	if monthlySalary > 0 {
		fallback = monthlySalary / workingDaysPerMonth
	}

	if override == nil || override.DailyDeduction == nil {
		return fallback, false
	}

	manual := *override.DailyDeduction
	if manual > 0 && manual < monthlySalary*dailyDeductionSanityFactor {
		return manual, false
	}

	// Zero means "use default"; only a positive out-of-bound value is a
	// rejected entry worth flagging.
	return fallback, manual > 0
}
