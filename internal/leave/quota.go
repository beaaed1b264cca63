package leave

import "time"

// Allowance policy. Sick and casual reset every calendar month, annual
// every calendar year. These are soft limits: quota is informational and
// a request beyond the allowance is still accepted.
const (
	SickMonthlyAllowance   = 2
	CasualMonthlyAllowance = 2
	AnnualYearlyAllowance  = 10
)

type QuotaUsage struct {
	Allowance int
	Used      int
	Remaining int
}

type Quota struct {
	Sick   QuotaUsage
	Casual QuotaUsage
	Annual QuotaUsage
}

// ComputeQuota derives per-type usage from the employee's ledger as of the
// given date. Only APPROVED requests count; a request counts against a
// window when its date range overlaps it, the same predicate the
// reconciliation engine uses for periods.
func ComputeQuota(requests []Leave, asOf time.Time) Quota {
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(asOf.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)

	var sickUsed, casualUsed, annualUsed int
	for _, l := range requests {
		if l.Status != StatusApproved {
			continue
		}
		switch l.LeaveType {
		case TypeSick:
			if overlapsRange(l, monthStart, monthEnd) {
				sickUsed++
			}
		case TypeCasual:
			if overlapsRange(l, monthStart, monthEnd) {
				casualUsed++
			}
		case TypeAnnual:
			if overlapsRange(l, yearStart, yearEnd) {
				annualUsed++
			}
		}
		// TypeUnpaidLegacy has no allowance window
	}

	return Quota{
		Sick:   newQuotaUsage(SickMonthlyAllowance, sickUsed),
		Casual: newQuotaUsage(CasualMonthlyAllowance, casualUsed),
		Annual: newQuotaUsage(AnnualYearlyAllowance, annualUsed),
	}
}

func newQuotaUsage(allowance, used int) QuotaUsage {
	remaining := allowance - used
	if remaining < 0 {
		remaining = 0
	}
	return QuotaUsage{
		Allowance: allowance,
		Used:      used,
		Remaining: remaining,
	}
}

// overlapsRange is inclusive on both ends, calendar-day granularity.
func overlapsRange(l Leave, start, end time.Time) bool {
	return !l.EndDate.Before(start) && !l.StartDate.After(end)
}
